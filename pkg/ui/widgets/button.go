package widgets

import (
	"github.com/odvcencio/cadence/pkg/ui/compose"
	"github.com/odvcencio/cadence/pkg/ui/input"
	"github.com/odvcencio/cadence/pkg/ui/theme"
)

// Button is a focusable push button drawn as "[ label ]". It produces true on
// the tick it is pressed: by a mouse press inside it, or by Enter or Space
// while it has focus.
func Button(name, label string, th *theme.Theme) compose.Widget[bool] {
	text := "[ " + label + " ]"
	return compose.FocusableLeaf(name, compose.Fixed(textWidth(text), 1), func(r compose.Rect, claim compose.Claim, in input.Input, _ compose.RenderContext) (compose.Output[bool], error) {
		pressed := clicked(in, r) || (claim.Focused() && activated(in))
		style := th.Button
		if claim.Focused() {
			style = th.ButtonFocus
		}
		return compose.Output[bool]{
			Dirty:  pressed,
			Action: compose.Show(compose.Text(r, text, style)),
			Value:  pressed,
		}, nil
	})
}
