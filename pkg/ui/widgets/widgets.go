// Package widgets provides concrete widgets built on the compose core.
//
// Every widget here is a value: constructing one computes its shape, and
// running it for a tick produces a picture, sounds and a value. Widgets never
// start goroutines; background work is returned as pending task handles for
// the driver to adopt.
package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/cadence/pkg/ui/compose"
	"github.com/odvcencio/cadence/pkg/ui/input"
)

// textWidth returns the number of cells s occupies.
func textWidth(s string) int {
	return runewidth.StringWidth(s)
}

// truncate cuts s to fit within width cells, ending in "..." when cut.
func truncate(s string, width int) string {
	if textWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// padRight pads s with spaces to width cells.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// clicked reports whether in is a mouse press inside r.
func clicked(in input.Input, r compose.Rect) bool {
	m, ok := input.Mouse(in)
	return ok && m.Action == input.MousePress && r.Contains(m.X, m.Y)
}

// activated reports whether in is Enter or Space.
func activated(in input.Input) bool {
	k, ok := input.KeyOf(in)
	if !ok {
		return false
	}
	return k.Key == input.KeyEnter || (k.Key == input.KeyRune && k.Rune == ' ')
}
