package compose

import (
	"strings"

	"github.com/odvcencio/cadence/pkg/ui/backend"
	"github.com/odvcencio/cadence/pkg/ui/input"
)

// grid is an in-memory render target.
type grid struct {
	w, h  int
	cells []rune
}

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h, cells: make([]rune, w*h)}
	for i := range g.cells {
		g.cells[i] = ' '
	}
	return g
}

func (g *grid) Size() (int, int) { return g.w, g.h }

func (g *grid) SetContent(x, y int, r rune, _ []rune, _ backend.Style) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.cells[y*g.w+x] = r
}

func (g *grid) row(y int) string {
	return strings.TrimRight(string(g.cells[y*g.w:(y+1)*g.w]), " ")
}

// spy is a leaf that records the rectangle and token it ran with.
type spy struct {
	req    LayoutRequest
	name   string
	dirty  bool
	action Action

	bounds Rect
	rect   Rect
	claim  Claim
	in     input.Input
	runs   int
}

func (p *spy) Shape(Flow) Shape {
	if p.name == "" {
		return Shape{Request: p.req}
	}
	return Shape{Request: p.req, Focus: []string{p.name}}
}

func (p *spy) Run(ctx RenderContext, tok Token, in input.Input) (Result[Unit], error) {
	p.runs++
	p.bounds = ctx.Bounds
	p.rect = ctx.FinalRect(p.req)
	p.in = in
	out := tok
	p.claim = ClaimNone
	if p.name != "" {
		p.claim, out = StepFocus(tok, ctx.FocusBase)
	}
	return Result[Unit]{Request: p.req, Dirty: p.dirty, Focus: out, Action: p.action}, nil
}

func rootContext(flow Flow, w, h int) RenderContext {
	return NewContext(flow, NewRect(0, 0, w, h), nil)
}
