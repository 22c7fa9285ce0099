package widgets

import (
	"github.com/odvcencio/cadence/pkg/ui/backend"
	"github.com/odvcencio/cadence/pkg/ui/compose"
	"github.com/odvcencio/cadence/pkg/ui/input"
)

// Alignment specifies text alignment within a label's width.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Label is a single line of static text, exactly as wide as the text.
func Label(text string, style backend.Style) compose.Widget[compose.Unit] {
	return compose.Leaf(compose.Fixed(textWidth(text), 1), func(r compose.Rect, _ input.Input, _ compose.RenderContext) (compose.Output[compose.Unit], error) {
		return compose.Output[compose.Unit]{Action: compose.Show(compose.Text(r, text, style))}, nil
	})
}

// AlignedLabel is a single line of text that stretches along the width and is
// aligned inside whatever width it is given.
func AlignedLabel(text string, align Alignment, style backend.Style) compose.Widget[compose.Unit] {
	w := textWidth(text)
	return compose.Leaf(compose.StretchWidth(w, 1), func(r compose.Rect, _ input.Input, _ compose.RenderContext) (compose.Output[compose.Unit], error) {
		x := r.X
		switch align {
		case AlignCenter:
			x += max(r.Width-w, 0) / 2
		case AlignRight:
			x += max(r.Width-w, 0)
		}
		at := compose.NewRect(x, r.Y, r.Width-(x-r.X), 1)
		return compose.Output[compose.Unit]{Action: compose.Show(compose.Text(at, truncate(text, r.Width), style))}, nil
	})
}

// Text shows a value produced later in the same tick, typically the cell of a
// compose.Fix. The text is formatted when the frame is painted and clipped to
// width cells.
func Text[T any](d *compose.Deferred[T], width int, format func(T) string, style backend.Style) compose.Widget[compose.Unit] {
	return compose.Leaf(compose.Fixed(width, 1), func(r compose.Rect, _ input.Input, _ compose.RenderContext) (compose.Output[compose.Unit], error) {
		return compose.Output[compose.Unit]{Action: compose.Show(compose.DeferredText(r, d, format, style))}, nil
	})
}
