package observability

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/odvcencio/cadence/pkg/errors"
)

// Server exposes /metrics and /healthz for a running driver.
type Server struct {
	httpServer *http.Server
	logger     *Logger
	started    time.Time
	ready      atomic.Bool
}

// NewServer creates a telemetry server listening on addr.
func NewServer(addr string, logger *Logger) *Server {
	s := &Server{logger: logger, started: time.Now()}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    1 << 20,
	}
	return s
}

// Router returns the HTTP routes.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Get("/metrics", promhttp.Handler().ServeHTTP)
	router.Get("/healthz", s.handleHealthz)
	return router
}

// SetReady marks the driver as running; /healthz reports 503 until then.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	status := "ok"
	if !s.ready.Load() {
		status = "starting"
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

// Start listens and serves in the background. Listen failures are returned
// immediately.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "telemetry listener").
			WithContext("addr", s.httpServer.Addr)
	}
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			s.logger.Error("telemetry server stopped", "error", err)
		}
	}()
	s.logger.Info("telemetry server listening", "addr", ln.Addr().String())
	return nil
}

// Shutdown stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
