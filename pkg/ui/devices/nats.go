package devices

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/odvcencio/cadence/pkg/errors"
	"github.com/odvcencio/cadence/pkg/observability"
	"github.com/odvcencio/cadence/pkg/ui/compose"
	"github.com/odvcencio/cadence/pkg/ui/input"
)

// Bus is the subset of a NATS connection devices use.
type Bus interface {
	Subscribe(subject string, handler func(subject string, data []byte)) (unsubscribe func() error, err error)
	Publish(subject string, data []byte) error
}

// NATSConfig configures the NATS connection.
type NATSConfig struct {
	URL            string
	Name           string
	Token          string
	ConnectTimeout time.Duration
}

// NATSConn adapts a *nats.Conn to Bus.
type NATSConn struct {
	*nats.Conn
}

// ConnectNATS dials a NATS server. The connection keeps retrying in the
// background if the server is not up yet.
func ConnectNATS(cfg NATSConfig) (*NATSConn, error) {
	if cfg.URL == "" {
		cfg.URL = nats.DefaultURL
	}
	if cfg.Name == "" {
		cfg.Name = "cadence"
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 5 * time.Second
	}

	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.Timeout(cfg.ConnectTimeout),
		nats.RetryOnFailedConnect(true),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}
	if cfg.Token != "" {
		opts = append(opts, nats.Token(cfg.Token))
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDevice, "connect to NATS").
			WithContext("url", cfg.URL)
	}
	return &NATSConn{Conn: conn}, nil
}

// Subscribe registers handler for subject.
func (c *NATSConn) Subscribe(subject string, handler func(subject string, data []byte)) (func() error, error) {
	sub, err := c.Conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return nil, err
	}
	return sub.Unsubscribe, nil
}

// NATSSource turns messages on NATS subjects into device events, one device
// per subject.
type NATSSource struct {
	bus      Bus
	subjects []string
	logger   *observability.Logger
}

// NewNATSSource creates a source listening on subjects, which may contain
// NATS wildcards.
func NewNATSSource(bus Bus, logger *observability.Logger, subjects ...string) *NATSSource {
	if logger == nil {
		logger = observability.Discard()
	}
	return &NATSSource{bus: bus, subjects: subjects, logger: logger.WithDevice("nats", "nats")}
}

// Kind returns "nats".
func (s *NATSSource) Kind() string { return "nats" }

// Run subscribes to every subject and waits for ctx to be done.
func (s *NATSSource) Run(ctx context.Context, sink Sink) error {
	var unsubs []func() error
	defer func() {
		for _, u := range unsubs {
			_ = u()
		}
	}()

	for _, subject := range s.subjects {
		unsub, err := s.bus.Subscribe(subject, func(subj string, data []byte) {
			emit(sink, s.logger, ID("nats", subj), data)
		})
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeDevice, "subscribe to NATS subject").
				WithContext("subject", subject)
		}
		unsubs = append(unsubs, unsub)
	}

	<-ctx.Done()
	return ctx.Err()
}

// NATSOutput publishes device messages as sounds: the message goes out when
// the tick's audio runs.
type NATSOutput struct {
	bus     Bus
	subject string
}

// NewNATSOutput creates an output publishing on subject.
func NewNATSOutput(bus Bus, subject string) *NATSOutput {
	return &NATSOutput{bus: bus, subject: subject}
}

// Send returns the sound publishing msg.
func (o *NATSOutput) Send(msg []byte) compose.Sound {
	payload := append([]byte(nil), msg...)
	return compose.Play(func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := o.bus.Publish(o.subject, payload); err != nil {
			return errors.Wrap(err, errors.ErrCodeDevice, "publish device message").
				WithContext("subject", o.subject)
		}
		return nil
	})
}

// On returns a continuation for compose.Bind that publishes msg on the ticks
// the bound widget produces true.
//
//	compose.Bind(widgets.Button("send", "Send", th), out.On([]byte("ping")))
func (o *NATSOutput) On(msg []byte) func(bool) compose.Widget[compose.Unit] {
	return func(fire bool) compose.Widget[compose.Unit] {
		return compose.Leaf(compose.LayoutRequest{}, func(compose.Rect, input.Input, compose.RenderContext) (compose.Output[compose.Unit], error) {
			if !fire {
				return compose.Output[compose.Unit]{}, nil
			}
			return compose.Output[compose.Unit]{Action: compose.Sounds(o.Send(msg))}, nil
		})
	}
}
