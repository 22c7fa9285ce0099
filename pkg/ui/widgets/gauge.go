package widgets

import (
	"github.com/odvcencio/cadence/pkg/ui/backend"
	"github.com/odvcencio/cadence/pkg/ui/compose"
	"github.com/odvcencio/cadence/pkg/ui/input"
	"github.com/odvcencio/cadence/pkg/ui/theme"
)

// GaugeStyle defines the visual appearance of a gauge.
type GaugeStyle struct {
	FillChar  rune // default '█'
	EmptyChar rune // default '░'

	// Thresholds in ascending order; each starts a new fill style at its
	// ratio.
	Thresholds []GaugeThreshold

	EmptyStyle backend.Style
}

// GaugeThreshold defines a color breakpoint in the gradient.
type GaugeThreshold struct {
	Ratio float64
	Style backend.Style
}

// DefaultGaugeStyle returns a success→warning→error gradient from th.
func DefaultGaugeStyle(th *theme.Theme) GaugeStyle {
	return GaugeStyle{
		FillChar:  '█',
		EmptyChar: '░',
		Thresholds: []GaugeThreshold{
			{Ratio: 0.0, Style: th.Success},
			{Ratio: 0.6, Style: th.Warning},
			{Ratio: 0.85, Style: th.Error},
		},
		EmptyStyle: th.TextMuted,
	}
}

// Gauge returns a continuation for compose.Bind that draws a horizontal bar
// width cells wide, filled to the bound ratio.
//
//	compose.Bind(load, widgets.Gauge(20, widgets.DefaultGaugeStyle(th)))
func Gauge(width int, style GaugeStyle) func(float64) compose.Widget[compose.Unit] {
	return func(ratio float64) compose.Widget[compose.Unit] {
		return compose.Leaf(compose.Fixed(width, 1), func(r compose.Rect, _ input.Input, _ compose.RenderContext) (compose.Output[compose.Unit], error) {
			return compose.Output[compose.Unit]{Action: compose.Show(GaugePicture(r, ratio, style))}, nil
		})
	}
}

// GaugePicture draws a gauge along the first row of r.
func GaugePicture(r compose.Rect, ratio float64, style GaugeStyle) compose.Picture {
	if r.Width <= 0 || r.Height <= 0 {
		return compose.Picture{}
	}
	fill := gaugeFill(r.Width, ratio)
	fillChar, emptyChar := gaugeChars(style)

	var ops []compose.DrawOp
	for i := 0; i < fill; i++ {
		ops = append(ops, compose.FillOp{
			Rect:  compose.NewRect(r.X+i, r.Y, 1, 1),
			Rune:  fillChar,
			Style: styleForRatio(float64(i)/float64(r.Width), style.Thresholds),
		})
	}
	if fill < r.Width {
		ops = append(ops, compose.FillOp{
			Rect:  compose.NewRect(r.X+fill, r.Y, r.Width-fill, 1),
			Rune:  emptyChar,
			Style: style.EmptyStyle,
		})
	}
	return compose.Draw(ops...)
}

// GaugeString renders a gauge as plain text.
func GaugeString(width int, ratio float64, style GaugeStyle) string {
	if width <= 0 {
		return ""
	}
	fill := gaugeFill(width, ratio)
	fillChar, emptyChar := gaugeChars(style)
	runes := make([]rune, width)
	for i := range runes {
		if i < fill {
			runes[i] = fillChar
		} else {
			runes[i] = emptyChar
		}
	}
	return string(runes)
}

// gaugeFill returns how many of width cells a ratio fills, rounding half up.
func gaugeFill(width int, ratio float64) int {
	ratio = min(max(ratio, 0), 1)
	return min(int(float64(width)*ratio+0.5), width)
}

func gaugeChars(style GaugeStyle) (fill, empty rune) {
	fill, empty = style.FillChar, style.EmptyChar
	if fill == 0 {
		fill = '█'
	}
	if empty == 0 {
		empty = '░'
	}
	return fill, empty
}

// styleForRatio returns the style of the highest threshold ratio reaches.
func styleForRatio(ratio float64, thresholds []GaugeThreshold) backend.Style {
	if len(thresholds) == 0 {
		return backend.DefaultStyle()
	}
	result := thresholds[0].Style
	for _, t := range thresholds {
		if ratio >= t.Ratio {
			result = t.Style
		}
	}
	return result
}
