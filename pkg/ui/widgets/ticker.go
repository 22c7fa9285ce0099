package widgets

import (
	"context"
	"time"

	"github.com/odvcencio/cadence/pkg/ui/compose"
	"github.com/odvcencio/cadence/pkg/ui/input"
	"github.com/odvcencio/cadence/pkg/ui/tasks"
	"github.com/odvcencio/cadence/pkg/ui/theme"
)

// Ticker is a one-cell spinner that keeps the tree ticking. On its first tick
// it spawns a timer task that injects a TimerTick every interval; each
// TimerTick advances the spinner. It produces the number of timer ticks seen.
func Ticker(name string, every time.Duration, th *theme.Theme) compose.Widget[int] {
	t := &ticker{name: name, every: every}
	return compose.Leaf(compose.Fixed(1, 1), func(r compose.Rect, in input.Input, ctx compose.RenderContext) (compose.Output[int], error) {
		var out compose.Output[int]
		if h := t.spawn(ctx.Injector()); h != nil {
			out.Tasks = []*tasks.Handle{h}
		}
		if _, ok := in.(input.TimerTick); ok {
			t.count++
			out.Dirty = true
		}
		frames := theme.Symbols.Spinner
		out.Action = compose.Show(compose.Text(r, frames[t.count%len(frames)], th.Accent))
		out.Value = t.count
		return out, nil
	})
}

type ticker struct {
	name   string
	every  time.Duration
	handle *tasks.Handle
	count  int
}

// spawn returns a new timer task unless one is already pending or running.
// A task cancelled before it started, e.g. because its tick was dropped, is
// replaced.
func (t *ticker) spawn(inject func(input.Input)) *tasks.Handle {
	if t.handle != nil && (t.handle.State() != tasks.StateCancelled || t.handle.Started()) {
		return nil
	}
	every := t.every
	t.handle = tasks.New(t.name, func(ctx context.Context) error {
		tick := time.NewTicker(every)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case now := <-tick.C:
				inject(input.TimerTick{Time: now})
			}
		}
	})
	return t.handle
}
