// Package devices connects external message sources to the widget tree.
//
// A Source runs as a background task and turns whatever it receives into
// input.DeviceEvent values posted to the driver. Attach starts sources from
// inside the tree, so their tasks are adopted and joined by the driver like
// any other.
package devices

import (
	"context"

	"github.com/odvcencio/cadence/pkg/observability"
	"github.com/odvcencio/cadence/pkg/ui/compose"
	"github.com/odvcencio/cadence/pkg/ui/input"
	"github.com/odvcencio/cadence/pkg/ui/tasks"
)

// Sink receives inputs for later ticks. compose.RenderContext.Injector and
// runtime.App.Post both provide one.
type Sink func(input.Input)

// Source is an external device.
type Source interface {
	// Kind names the device family, e.g. "nats".
	Kind() string
	// Run delivers device events to sink until ctx is done.
	Run(ctx context.Context, sink Sink) error
}

// ID builds the device id carried by DeviceEvents: the kind, a slash, and
// the subject, path or URL the message came from.
func ID(kind, key string) string {
	return kind + "/" + key
}

// emit posts one device message and records it.
func emit(sink Sink, logger *observability.Logger, device string, msg []byte) {
	observability.RecordDeviceEvent(device)
	logger.DeviceEvent(device, len(msg))
	sink(input.DeviceEvent{Device: device, Message: msg})
}

// Attach returns a widget that starts every source as a background task on
// its first tick. It takes no space and draws nothing.
func Attach(sources ...Source) compose.Widget[compose.Unit] {
	handles := make([]*tasks.Handle, len(sources))
	return compose.Leaf(compose.LayoutRequest{}, func(_ compose.Rect, _ input.Input, ctx compose.RenderContext) (compose.Output[compose.Unit], error) {
		var out compose.Output[compose.Unit]
		sink := Sink(ctx.Injector())
		for i, src := range sources {
			h := handles[i]
			// A task dropped with its tick before it started is replaced.
			if h != nil && (h.State() != tasks.StateCancelled || h.Started()) {
				continue
			}
			h = tasks.New("device:"+src.Kind(), func(tctx context.Context) error {
				return src.Run(tctx, sink)
			})
			handles[i] = h
			out.Tasks = append(out.Tasks, h)
		}
		return out, nil
	})
}
