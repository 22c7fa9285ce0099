package widgets

import (
	"fmt"

	"github.com/odvcencio/cadence/pkg/ui/compose"
	"github.com/odvcencio/cadence/pkg/ui/theme"
)

// counterDigits is the width of the counter display, separator included.
const counterDigits = 6

// Counter shows a count left of a "+" button. The display is drawn before
// the button is evaluated yet shows the count the button produces in the
// same tick.
func Counter(name string, start int, th *theme.Theme) compose.Widget[int] {
	count := start
	return compose.Fix(func(d *compose.Deferred[int]) compose.Widget[int] {
		display := Text(d, counterDigits, func(n int) string {
			return fmt.Sprintf("%*d ", counterDigits-1, n)
		}, th.Text)
		inc := compose.Map(Button(name, "+", th), func(pressed bool) int {
			if pressed {
				count++
			}
			return count
		})
		return compose.Pack(compose.LeftRight, compose.Then(display, inc))
	})
}
