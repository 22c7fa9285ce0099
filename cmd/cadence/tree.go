package main

import (
	"path/filepath"
	"time"

	"github.com/odvcencio/cadence/pkg/config"
	"github.com/odvcencio/cadence/pkg/observability"
	"github.com/odvcencio/cadence/pkg/ui/compose"
	"github.com/odvcencio/cadence/pkg/ui/devices"
	"github.com/odvcencio/cadence/pkg/ui/theme"
	"github.com/odvcencio/cadence/pkg/ui/widgets"
)

const (
	monitorWidth = 24
	gaugeWidth   = 20
	gaugeSteps   = 20
)

// deviceSet holds the configured device sources and the optional NATS output.
type deviceSet struct {
	sources  []devices.Source
	monitors []string
	output   *devices.NATSOutput
	conn     *devices.NATSConn
}

// Close releases the NATS connection, if any.
func (d *deviceSet) Close() {
	if d.conn != nil {
		d.conn.Close()
	}
}

func openDevices(cfg config.DevicesConfig, logger *observability.Logger) (*deviceSet, error) {
	set := &deviceSet{}

	if cfg.NATS.Enabled {
		conn, err := devices.ConnectNATS(devices.NATSConfig{
			URL:   cfg.NATS.URL,
			Name:  "cadence",
			Token: cfg.NATS.Token,
		})
		if err != nil {
			return nil, err
		}
		set.conn = conn
		if len(cfg.NATS.Subjects) > 0 {
			set.sources = append(set.sources, devices.NewNATSSource(conn, logger, cfg.NATS.Subjects...))
			for _, subject := range cfg.NATS.Subjects {
				set.monitors = append(set.monitors, devices.ID("nats", subject))
			}
		}
		if cfg.NATS.OutputSubject != "" {
			set.output = devices.NewNATSOutput(conn, cfg.NATS.OutputSubject)
		}
	}

	if len(cfg.Watch.Paths) > 0 {
		src := devices.NewWatchSource(logger, cfg.Watch.Paths...)
		set.sources = append(set.sources, src)
		for _, p := range cfg.Watch.Paths {
			set.monitors = append(set.monitors, devices.ID("watch", filepath.Clean(p)))
		}
	}

	for _, url := range cfg.WebSocket.URLs {
		set.sources = append(set.sources, devices.NewWebSocketSource(url, 2*time.Second, logger))
		set.monitors = append(set.monitors, devices.ID("ws", url))
	}

	return set, nil
}

// buildTree assembles the demo screen: a counter, a bell button, a timer
// driven gauge and one monitor line per configured device.
func buildTree(th *theme.Theme, beeper widgets.Beeper, tick time.Duration, devs *deviceSet) compose.Widget[compose.Unit] {
	parts := []compose.Widget[compose.Unit]{
		widgets.AlignedLabel("cadence", widgets.AlignCenter, th.Title),
		compose.Discard(widgets.Block("Counter", th, widgets.Counter("count", 0, th))),
		compose.Bind(widgets.Button("bell", "Ring "+theme.Symbols.Bell, th), widgets.Bell(beeper)),
	}

	if tick > 0 {
		gauge := widgets.Gauge(gaugeWidth, widgets.DefaultGaugeStyle(th))
		parts = append(parts, compose.Row(
			widgets.Label("beat ", th.TextMuted),
			compose.Bind(widgets.Ticker("beat", tick, th), func(n int) compose.Widget[compose.Unit] {
				return gauge(float64(n%(gaugeSteps+1)) / gaugeSteps)
			}),
		))
	}

	if devs != nil {
		for _, id := range devs.monitors {
			parts = append(parts, compose.Discard(widgets.Monitor(id, monitorWidth, th)))
		}
		if devs.output != nil {
			parts = append(parts, compose.Bind(widgets.Button("send", "Send ping", th), devs.output.On([]byte("ping"))))
		}
		if len(devs.sources) > 0 {
			parts = append(parts, devices.Attach(devs.sources...))
		}
	}

	return compose.Column(parts...)
}
