package compose

import "github.com/odvcencio/cadence/pkg/ui/input"

// Pack evaluates w in a fresh partitioned context packing along dir. The
// outer request is w's request when packed along dir, so a Pack nested in a
// container of another direction reports its true footprint.
func Pack[T any](dir Flow, w Widget[T]) Widget[T] {
	return &packed[T]{dir: dir, w: w}
}

type packed[T any] struct {
	dir Flow
	w   Widget[T]
}

func (p *packed[T]) Shape(Flow) Shape { return p.w.Shape(p.dir) }

func (p *packed[T]) Run(ctx RenderContext, tok Token, in input.Input) (Result[T], error) {
	return p.w.Run(ctx.WithFlow(p.dir), tok, in)
}

// Row lays widgets out left to right.
func Row(ws ...Widget[Unit]) Widget[Unit] {
	return Pack(LeftRight, Seq(ws...))
}

// Column lays widgets out top to bottom.
func Column(ws ...Widget[Unit]) Widget[Unit] {
	return Pack(TopDown, Seq(ws...))
}

// Conjoin makes w's children share its area instead of partitioning it,
// e.g. a background fill under a label. The request is unchanged; the
// merged request still adds along the flow.
func Conjoin[T any](w Widget[T]) Widget[T] {
	return &conjoined[T]{w: w}
}

type conjoined[T any] struct{ w Widget[T] }

func (c *conjoined[T]) Shape(flow Flow) Shape { return c.w.Shape(flow) }

func (c *conjoined[T]) Run(ctx RenderContext, tok Token, in input.Input) (Result[T], error) {
	return c.w.Run(ctx.WithConjoined(), tok, in)
}

// Layer stacks widgets in the same area: later ones paint over earlier ones.
func Layer(ws ...Widget[Unit]) Widget[Unit] {
	return Conjoin(Seq(ws...))
}

// Seq evaluates widgets in order and produces nothing. An empty Seq is the
// identity of composition.
func Seq(ws ...Widget[Unit]) Widget[Unit] {
	if len(ws) == 0 {
		return Pure(Unit{})
	}
	w := ws[len(ws)-1]
	for i := len(ws) - 2; i >= 0; i-- {
		w = Then(ws[i], w)
	}
	return w
}

// FocusScope makes w focusable as a whole under name. While the scope holds
// focus its children run with HasFocus, so they all render as focused. When
// it does not, the token threads through the children as usual and a
// request targeting one of them is still honored.
//
// The scope takes the id before its children.
func FocusScope[T any](name string, w Widget[T]) Widget[T] {
	s := &scope[T]{w: w}
	for _, f := range Flows {
		inner := w.Shape(f)
		focus := make([]string, 0, len(inner.Focus)+1)
		focus = append(focus, name)
		focus = append(focus, inner.Focus...)
		s.shapes[f] = Shape{Request: inner.Request, Focus: focus}
	}
	return s
}

type scope[T any] struct {
	w      Widget[T]
	shapes [len(Flows)]Shape
}

func (s *scope[T]) Shape(flow Flow) Shape { return s.shapes[flow] }

func (s *scope[T]) Run(ctx RenderContext, tok Token, in input.Input) (Result[T], error) {
	claim, out := StepFocus(tok, ctx.FocusBase)
	inner := ctx.offsetFocus(1)
	if !claim.Focused() {
		return s.w.Run(inner, out, in)
	}
	r, err := s.w.Run(inner, Focused(), in)
	if err != nil {
		return Result[T]{Tasks: r.Tasks}, err
	}
	r.Focus = out
	return r, nil
}
