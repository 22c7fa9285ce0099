package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricTicks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cadence",
		Name:      "ticks_total",
		Help:      "Ticks evaluated, by input kind.",
	}, []string{"input"})

	metricTickErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cadence",
		Name:      "tick_errors_total",
		Help:      "Ticks dropped because evaluation or an effect failed.",
	}, []string{"code"})

	metricFramesPainted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cadence",
		Name:      "frames_painted_total",
		Help:      "Pictures materialized to the screen.",
	})

	metricTasksActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "cadence",
		Name:      "tasks_active",
		Help:      "Background tasks currently running.",
	})

	metricTickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "cadence",
		Name:      "tick_duration_seconds",
		Help:      "Time spent evaluating one tick.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12), // 100µs to ~200ms
	})

	metricDeviceEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cadence",
		Name:      "device_events_total",
		Help:      "Messages received from external devices.",
	}, []string{"device"})
)

// RecordTick counts an evaluated tick and its duration.
func RecordTick(inputKind string, took time.Duration) {
	metricTicks.WithLabelValues(inputKind).Inc()
	metricTickDuration.Observe(took.Seconds())
}

// RecordTickError counts a dropped tick by error code.
func RecordTickError(code string) {
	if code == "" {
		code = "unknown"
	}
	metricTickErrors.WithLabelValues(code).Inc()
}

// RecordFrame counts a painted frame.
func RecordFrame() {
	metricFramesPainted.Inc()
}

// SetTasksActive reports the number of running background tasks.
func SetTasksActive(n int) {
	metricTasksActive.Set(float64(n))
}

// RecordDeviceEvent counts a device message.
func RecordDeviceEvent(device string) {
	metricDeviceEvents.WithLabelValues(device).Inc()
}
