// Package observability carries the logging, tracing and metrics shared by
// the driver, the devices and the CLI.
package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// Logger is a structured logger for cadence components
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger writing to stderr.
func NewLogger(component string, level slog.Level) *Logger {
	return NewLoggerTo(os.Stderr, component, level)
}

// NewLoggerTo creates a JSON logger writing to w. A terminal UI owns stdout,
// so interactive runs point this at a file.
func NewLoggerTo(w io.Writer, component string, level slog.Level) *Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(w, opts)

	logger := slog.New(handler).With(
		slog.String("component", component),
		slog.String("system", "cadence"),
	)

	return &Logger{Logger: logger}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(io.Discard, nil))}
}

// ParseLevel maps a config level name to a slog level. Unknown names are
// treated as info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithContext returns a logger carrying the trace and span ids of the span
// in ctx, if any.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return l
	}
	return &Logger{
		Logger: l.Logger.With(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		),
	}
}

// WithRun returns a logger with the run id attached
func (l *Logger) WithRun(runID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			slog.String("run_id", runID),
		),
	}
}

// WithTick returns a logger with the tick sequence number attached
func (l *Logger) WithTick(seq uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			slog.Uint64("tick", seq),
		),
	}
}

// WithDevice returns a logger with device fields
func (l *Logger) WithDevice(deviceID, kind string) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			slog.String("device_id", deviceID),
			slog.String("device_kind", kind),
		),
	}
}

// TickFailed logs a tick whose evaluation or effects failed
func (l *Logger) TickFailed(inputKind string, err error) {
	l.Error("tick failed",
		slog.String("input", inputKind),
		slog.String("error", err.Error()),
	)
}

// FocusDropped logs a focus request no widget claimed
func (l *Logger) FocusDropped(target int) {
	l.Debug("focus request dropped",
		slog.Int("target", target),
	)
}

// TaskStarted logs a background task start
func (l *Logger) TaskStarted(taskID, name string) {
	l.Info("task started",
		slog.String("task_id", taskID),
		slog.String("task", name),
	)
}

// TaskExited logs a background task exit
func (l *Logger) TaskExited(taskID, name string, err error) {
	if err != nil {
		l.Warn("task exited",
			slog.String("task_id", taskID),
			slog.String("task", name),
			slog.String("error", err.Error()),
		)
		return
	}
	l.Info("task exited",
		slog.String("task_id", taskID),
		slog.String("task", name),
	)
}

// DeviceEvent logs a message received from a device
func (l *Logger) DeviceEvent(deviceID string, size int) {
	l.Debug("device event",
		slog.String("device_id", deviceID),
		slog.Int("payload_size", size),
	)
}
