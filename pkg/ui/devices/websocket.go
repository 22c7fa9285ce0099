package devices

import (
	"context"
	"time"

	"github.com/gorilla/websocket"

	"github.com/odvcencio/cadence/pkg/errors"
	"github.com/odvcencio/cadence/pkg/observability"
)

// WebSocketSource reads messages from a WebSocket endpoint. Every text or
// binary frame becomes one device event.
type WebSocketSource struct {
	url    string
	retry  time.Duration
	dialer *websocket.Dialer
	logger *observability.Logger
}

// NewWebSocketSource creates a source for url. When retry is positive a lost
// connection is redialed after that delay; otherwise Run returns the error.
func NewWebSocketSource(url string, retry time.Duration, logger *observability.Logger) *WebSocketSource {
	if logger == nil {
		logger = observability.Discard()
	}
	return &WebSocketSource{
		url:    url,
		retry:  retry,
		dialer: websocket.DefaultDialer,
		logger: logger.WithDevice(ID("ws", url), "ws"),
	}
}

// Kind returns "ws".
func (s *WebSocketSource) Kind() string { return "ws" }

// Run reads from the endpoint until ctx is done.
func (s *WebSocketSource) Run(ctx context.Context, sink Sink) error {
	for {
		err := s.session(ctx, sink)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if s.retry <= 0 {
			return err
		}
		s.logger.Warn("websocket device lost, reconnecting", "error", err, "retry", s.retry)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retry):
		}
	}
}

func (s *WebSocketSource) session(ctx context.Context, sink Sink) error {
	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDevice, "dial websocket device").
			WithContext("url", s.url)
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			_ = conn.Close()
		case <-stop:
		}
	}()

	device := ID("ws", s.url)
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return errors.Wrap(err, errors.ErrCodeDevice, "read websocket device").
				WithContext("url", s.url)
		}
		if kind != websocket.TextMessage && kind != websocket.BinaryMessage {
			continue
		}
		emit(sink, s.logger, device, data)
	}
}
