package widgets

import (
	"github.com/odvcencio/cadence/pkg/ui/backend"
	"github.com/odvcencio/cadence/pkg/ui/compose"
	"github.com/odvcencio/cadence/pkg/ui/input"
	"github.com/odvcencio/cadence/pkg/ui/theme"
)

// Block draws a rounded border with an optional title around inner. The
// border takes one cell on every side; inner sees the area inside it.
func Block[T any](title string, th *theme.Theme, inner compose.Widget[T]) compose.Widget[T] {
	b := &block[T]{title: title, th: th, inner: inner}
	for _, flow := range compose.Flows {
		sh := inner.Shape(flow)
		b.shapes[flow] = compose.Shape{Request: grow(sh.Request, 2), Focus: sh.Focus}
	}
	return b
}

type block[T any] struct {
	title  string
	th     *theme.Theme
	inner  compose.Widget[T]
	shapes [len(compose.Flows)]compose.Shape
}

// grow adds n cells to both axes of a request.
func grow(req compose.LayoutRequest, n int) compose.LayoutRequest {
	req.MinW += n
	req.MinH += n
	if req.HFill == 0 {
		req.HFixed += n
	}
	if req.VFill == 0 {
		req.VFixed += n
	}
	return req
}

func (b *block[T]) Shape(flow compose.Flow) compose.Shape { return b.shapes[flow] }

func (b *block[T]) Run(ctx compose.RenderContext, tok compose.Token, in input.Input) (compose.Result[T], error) {
	req := b.shapes[ctx.Flow].Request
	r := ctx.FinalRect(req)

	innerCtx := ctx.WithFlow(ctx.Flow)
	innerCtx.Bounds = compose.NewRect(r.X+1, r.Y+1, max(r.Width-2, 0), max(r.Height-2, 0))
	res, err := b.inner.Run(innerCtx, tok, in)
	if err != nil {
		return compose.Result[T]{Tasks: res.Tasks}, err
	}

	border := b.th.Border
	if tok.Signal == (compose.HasFocus{}) {
		border = b.th.BorderFocus
	}
	res.Request = req
	res.Action.Visual = compose.Overlay(borderPicture(r, b.title, border, b.th.Title), res.Action.Visual)
	return res, nil
}

// borderPicture draws a rounded box along the edge of r with title inset in
// the top edge.
func borderPicture(r compose.Rect, title string, style, titleStyle backend.Style) compose.Picture {
	if r.Width < 2 || r.Height < 2 {
		return compose.Picture{}
	}
	sym := theme.Symbols
	right, bottom := r.X+r.Width-1, r.Y+r.Height-1
	ops := []compose.DrawOp{
		compose.FillOp{Rect: compose.NewRect(r.X+1, r.Y, r.Width-2, 1), Rune: first(sym.BorderHorizontal), Style: style},
		compose.FillOp{Rect: compose.NewRect(r.X+1, bottom, r.Width-2, 1), Rune: first(sym.BorderHorizontal), Style: style},
		compose.FillOp{Rect: compose.NewRect(r.X, r.Y+1, 1, r.Height-2), Rune: first(sym.BorderVertical), Style: style},
		compose.FillOp{Rect: compose.NewRect(right, r.Y+1, 1, r.Height-2), Rune: first(sym.BorderVertical), Style: style},
		compose.FillOp{Rect: compose.NewRect(r.X, r.Y, 1, 1), Rune: first(sym.BorderTopLeft), Style: style},
		compose.FillOp{Rect: compose.NewRect(right, r.Y, 1, 1), Rune: first(sym.BorderTopRight), Style: style},
		compose.FillOp{Rect: compose.NewRect(r.X, bottom, 1, 1), Rune: first(sym.BorderBottomLeft), Style: style},
		compose.FillOp{Rect: compose.NewRect(right, bottom, 1, 1), Rune: first(sym.BorderBottomRight), Style: style},
	}
	if title != "" && r.Width > 4 {
		ops = append(ops, compose.TextOp{
			Rect:  compose.NewRect(r.X+2, r.Y, r.Width-4, 1),
			Text:  truncate(" "+title+" ", r.Width-4),
			Style: titleStyle,
		})
	}
	return compose.Draw(ops...)
}

func first(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}
