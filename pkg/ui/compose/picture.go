package compose

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/cadence/pkg/ui/backend"
)

// Picture is a deferred drawing command: an ordered list of operations that
// are painted later, once per screen refresh. Later operations occlude
// earlier ones. The zero value draws nothing.
type Picture struct {
	ops []DrawOp
}

// DrawOp is one drawing operation. The variants are FillOp, TextOp and
// DeferredTextOp.
type DrawOp interface {
	isDrawOp()
}

// FillOp paints every cell of Rect with Rune in Style.
type FillOp struct {
	Rect  Rect
	Rune  rune
	Style backend.Style
}

func (FillOp) isDrawOp() {}

// TextOp writes Text starting at the top-left corner of Rect, clipped to it.
type TextOp struct {
	Rect  Rect
	Text  string
	Style backend.Style
}

func (TextOp) isDrawOp() {}

// DeferredTextOp is a TextOp whose text is only known at paint time, e.g. a
// value produced later in the same tick by a fixed-point widget.
type DeferredTextOp struct {
	Rect  Rect
	Text  func() (string, error)
	Style backend.Style
}

func (DeferredTextOp) isDrawOp() {}

// Draw builds a picture from operations, painted in the given order.
func Draw(ops ...DrawOp) Picture {
	if len(ops) == 0 {
		return Picture{}
	}
	return Picture{ops: append([]DrawOp(nil), ops...)}
}

// Fill is shorthand for a single FillOp picture.
func Fill(r Rect, ch rune, style backend.Style) Picture {
	return Draw(FillOp{Rect: r, Rune: ch, Style: style})
}

// Text is shorthand for a single TextOp picture.
func Text(r Rect, text string, style backend.Style) Picture {
	return Draw(TextOp{Rect: r, Text: text, Style: style})
}

// Overlay paints top over bottom.
func Overlay(bottom, top Picture) Picture {
	switch {
	case len(top.ops) == 0:
		return bottom
	case len(bottom.ops) == 0:
		return top
	}
	ops := make([]DrawOp, 0, len(bottom.ops)+len(top.ops))
	ops = append(ops, bottom.ops...)
	ops = append(ops, top.ops...)
	return Picture{ops: ops}
}

// Empty reports whether the picture draws nothing.
func (p Picture) Empty() bool {
	return len(p.ops) == 0
}

// Ops returns the operations in paint order.
func (p Picture) Ops() []DrawOp {
	return p.ops
}

// Paint materializes the picture into target. A deferred text that cannot be
// resolved aborts painting with its error.
func (p Picture) Paint(target backend.RenderTarget) error {
	for _, op := range p.ops {
		switch o := op.(type) {
		case FillOp:
			paintFill(target, o)
		case TextOp:
			paintText(target, o.Rect, o.Text, o.Style)
		case DeferredTextOp:
			text, err := o.Text()
			if err != nil {
				return err
			}
			paintText(target, o.Rect, text, o.Style)
		default:
			panic(fmt.Sprintf("compose: unknown draw op %T", op))
		}
	}
	return nil
}

func paintFill(target backend.RenderTarget, o FillOp) {
	clip := backend.Clip(target, o.Rect.X, o.Rect.Y, o.Rect.Width, o.Rect.Height)
	for y := o.Rect.Y; y < o.Rect.Y+o.Rect.Height; y++ {
		for x := o.Rect.X; x < o.Rect.X+o.Rect.Width; x++ {
			clip.SetContent(x, y, o.Rune, nil, o.Style)
		}
	}
}

// paintText writes one line of text, advancing by display width so wide
// runes take two cells. A wide rune that would straddle the clip edge is
// dropped.
func paintText(target backend.RenderTarget, r Rect, text string, style backend.Style) {
	if r.Empty() {
		return
	}
	clip := backend.Clip(target, r.X, r.Y, r.Width, r.Height)
	x := r.X
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > r.X+r.Width {
			break
		}
		clip.SetContent(x, r.Y, ch, nil, style)
		x += w
	}
}
