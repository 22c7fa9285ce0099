package widgets

import (
	"context"

	"github.com/odvcencio/cadence/pkg/ui/compose"
	"github.com/odvcencio/cadence/pkg/ui/input"
)

//go:generate mockgen -package=widgets -destination=mock_beeper_test.go github.com/odvcencio/cadence/pkg/ui/widgets Beeper

// Beeper rings the terminal bell. Every backend.Backend satisfies it.
type Beeper interface {
	Beep()
}

// Bell returns a continuation for compose.Bind: bound after a widget that
// produces true when something happened, it rings the bell on those ticks.
// It takes no space and draws nothing.
//
//	compose.Bind(widgets.Button("ok", "OK", th), widgets.Bell(backend))
func Bell(b Beeper) func(bool) compose.Widget[compose.Unit] {
	return func(ring bool) compose.Widget[compose.Unit] {
		return compose.Leaf(compose.LayoutRequest{}, func(compose.Rect, input.Input, compose.RenderContext) (compose.Output[compose.Unit], error) {
			if !ring {
				return compose.Output[compose.Unit]{}, nil
			}
			return compose.Output[compose.Unit]{Action: compose.Sounds(compose.Play(func(context.Context) error {
				b.Beep()
				return nil
			}))}, nil
		})
	}
}
