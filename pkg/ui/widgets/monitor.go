package widgets

import (
	"strings"

	"github.com/odvcencio/cadence/pkg/ui/compose"
	"github.com/odvcencio/cadence/pkg/ui/input"
	"github.com/odvcencio/cadence/pkg/ui/theme"
)

// Monitor shows the latest message received from device on one line of the
// given width. It produces that message, or "" until one arrives.
func Monitor(device string, width int, th *theme.Theme) compose.Widget[string] {
	var last string
	var seen int
	return compose.Leaf(compose.StretchWidth(width, 1), func(r compose.Rect, in input.Input, _ compose.RenderContext) (compose.Output[string], error) {
		ev, ok := in.(input.DeviceEvent)
		fresh := ok && ev.Device == device
		if fresh {
			last = strings.TrimSpace(strings.ReplaceAll(string(ev.Message), "\n", " "))
			seen++
		}

		prefix := device + " " + theme.Symbols.Bullet + " "
		style := th.TextMuted
		body := "waiting"
		if seen > 0 {
			style = th.Text
			body = last
		}
		pic := compose.Draw(
			compose.TextOp{Rect: r, Text: truncate(prefix, r.Width), Style: th.Accent},
			compose.TextOp{
				Rect:  compose.NewRect(r.X+textWidth(prefix), r.Y, max(r.Width-textWidth(prefix), 0), 1),
				Text:  truncate(body, max(r.Width-textWidth(prefix), 0)),
				Style: style,
			},
		)
		return compose.Output[string]{Dirty: fresh, Action: compose.Show(pic), Value: last}, nil
	})
}
