package compose

import (
	"fmt"
	"slices"

	cerrors "github.com/odvcencio/cadence/pkg/errors"
	"github.com/odvcencio/cadence/pkg/ui/input"
	"github.com/odvcencio/cadence/pkg/ui/tasks"
)

// Unit is the value of widgets that produce nothing.
type Unit = struct{}

// Shape is the static part of a widget: what it can tell about itself
// without running. It never depends on the input or on produced values.
type Shape struct {
	// Request is the layout request when packed along a given flow.
	Request LayoutRequest
	// Focus names the focusable widgets inside, in evaluation order. The
	// i-th entry gets id FocusBase+i.
	Focus []string
}

func sameShape(a, b Shape) bool {
	return a.Request == b.Request && slices.Equal(a.Focus, b.Focus)
}

// Result is everything a widget produces in one tick.
type Result[T any] struct {
	Request LayoutRequest
	Dirty   bool
	Focus   Token
	Action  Action
	Tasks   []*tasks.Handle
	Value   T
}

// Widget is a composable piece of UI producing a value of type T each tick.
type Widget[T any] interface {
	// Shape returns the static description of the widget when packed along
	// flow. It must be cheap and free of effects.
	Shape(flow Flow) Shape

	// Run evaluates the widget for one tick. Errors are collaborator
	// failures or contract violations and abort the whole tick. A failed Run
	// still returns the task handles spawned before the failure in
	// Result.Tasks so the caller can cancel them.
	Run(ctx RenderContext, tok Token, in input.Input) (Result[T], error)
}

// Output is what a leaf widget computes; composition fills in the request
// and the focus token.
type Output[T any] struct {
	Dirty  bool
	Action Action
	Tasks  []*tasks.Handle
	Value  T
}

// Leaf builds a widget that is not focusable and has a fixed request.
// run receives the rectangle the widget occupies.
func Leaf[T any](req LayoutRequest, run func(r Rect, in input.Input, ctx RenderContext) (Output[T], error)) Widget[T] {
	return &leaf[T]{shape: Shape{Request: req}, run: func(ctx RenderContext, _ Claim, in input.Input) (Output[T], error) {
		return run(ctx.FinalRect(req), in, ctx)
	}}
}

// FocusableLeaf builds a focusable widget with a fixed request. It takes the
// next focus id in evaluation order and run learns whether it is focused.
func FocusableLeaf[T any](name string, req LayoutRequest, run func(r Rect, claim Claim, in input.Input, ctx RenderContext) (Output[T], error)) Widget[T] {
	return &leaf[T]{
		shape:     Shape{Request: req, Focus: []string{name}},
		focusable: true,
		run: func(ctx RenderContext, claim Claim, in input.Input) (Output[T], error) {
			return run(ctx.FinalRect(req), claim, in, ctx)
		},
	}
}

type leaf[T any] struct {
	shape     Shape
	focusable bool
	run       func(ctx RenderContext, claim Claim, in input.Input) (Output[T], error)
}

func (l *leaf[T]) Shape(Flow) Shape { return l.shape }

func (l *leaf[T]) Run(ctx RenderContext, tok Token, in input.Input) (Result[T], error) {
	claim, out := ClaimNone, tok
	if l.focusable {
		claim, out = StepFocus(tok, ctx.FocusBase)
	}
	o, err := l.run(ctx, claim, in)
	if err != nil {
		return Result[T]{Tasks: o.Tasks}, err
	}
	return Result[T]{
		Request: l.shape.Request,
		Dirty:   o.Dirty,
		Focus:   out,
		Action:  o.Action,
		Tasks:   o.Tasks,
		Value:   o.Value,
	}, nil
}

// Pure produces v without taking space, drawing, or touching focus.
func Pure[T any](v T) Widget[T] {
	return pure[T]{v: v}
}

type pure[T any] struct{ v T }

func (pure[T]) Shape(Flow) Shape { return Shape{} }

func (p pure[T]) Run(_ RenderContext, tok Token, _ input.Input) (Result[T], error) {
	return Result[T]{Focus: tok, Value: p.v}, nil
}

// Map transforms the value a widget produces.
func Map[A, B any](w Widget[A], f func(A) B) Widget[B] {
	return &mapped[A, B]{w: w, f: f}
}

// Discard drops the value a widget produces.
func Discard[T any](w Widget[T]) Widget[Unit] {
	return Map(w, func(T) Unit { return Unit{} })
}

type mapped[A, B any] struct {
	w Widget[A]
	f func(A) B
}

func (m *mapped[A, B]) Shape(flow Flow) Shape { return m.w.Shape(flow) }

func (m *mapped[A, B]) Run(ctx RenderContext, tok Token, in input.Input) (Result[B], error) {
	r, err := m.w.Run(ctx, tok, in)
	if err != nil {
		return Result[B]{Tasks: r.Tasks}, err
	}
	return Result[B]{
		Request: r.Request,
		Dirty:   r.Dirty,
		Focus:   r.Focus,
		Action:  r.Action,
		Tasks:   r.Tasks,
		Value:   m.f(r.Value),
	}, nil
}

// Bind sequences first with the widget next builds from first's value.
//
// The layout of what next builds must not depend on the value: Bind learns
// it once, at construction, by calling next with the zero value of A, and
// every tick it checks that the widget actually built has the same shape.
// A mismatch is reported as a contract violation.
//
// Per tick Bind splits its context using first's request and the combined
// request, runs first, builds and runs the second widget with first's output
// focus token, and merges both results.
//
// next runs on every tick, so it should return widgets built once outside it
// where it can. A value-dependent Bind constructed inside next is rebuilt,
// zero-value call included, each tick: a chain of d such Binds costs O(d²)
// constructions per tick.
func Bind[A, B any](first Widget[A], next func(A) Widget[B]) Widget[B] {
	var zero A
	return newBind(first, next, next(zero), true)
}

// Then sequences two widgets; second does not depend on first's value.
func Then[A, B any](first Widget[A], second Widget[B]) Widget[B] {
	return newBind(first, func(A) Widget[B] { return second }, second, false)
}

type bind[A, B any] struct {
	first Widget[A]
	next  func(A) Widget[B]
	check bool

	focusA   int
	shapes   [len(Flows)]Shape
	firstReq [len(Flows)]LayoutRequest
	nextSh   [len(Flows)]Shape
}

func newBind[A, B any](first Widget[A], next func(A) Widget[B], sample Widget[B], check bool) *bind[A, B] {
	b := &bind[A, B]{first: first, next: next, check: check}

	b.focusA = len(first.Shape(Flows[0]).Focus)
	focus := concatNames(first.Shape(Flows[0]).Focus, sample.Shape(Flows[0]).Focus)
	for _, f := range Flows {
		fs := first.Shape(f)
		ns := sample.Shape(f)
		b.firstReq[f] = fs.Request
		b.nextSh[f] = ns
		b.shapes[f] = Shape{
			Request: MergeRequest(f, fs.Request, ns.Request),
			Focus:   focus,
		}
	}
	return b
}

func concatNames(a, b []string) []string {
	switch {
	case len(a) == 0:
		return b
	case len(b) == 0:
		return a
	}
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func (b *bind[A, B]) Shape(flow Flow) Shape { return b.shapes[flow] }

func (b *bind[A, B]) Run(ctx RenderContext, tok Token, in input.Input) (Result[B], error) {
	combined := b.shapes[ctx.Flow].Request
	ctxA, ctxB := ctx.Split(b.firstReq[ctx.Flow], combined)
	ctxB = ctxB.offsetFocus(b.focusA)

	ra, err := b.first.Run(ctxA, tok, in)
	if err != nil {
		return Result[B]{Tasks: ra.Tasks}, err
	}

	second := b.next(ra.Value)
	if b.check {
		if got := second.Shape(ctx.Flow); !sameShape(got, b.nextSh[ctx.Flow]) {
			return Result[B]{Tasks: ra.Tasks}, shapeChanged(ctx.Flow, b.nextSh[ctx.Flow], got)
		}
	}

	rb, err := second.Run(ctxB, ra.Focus, in)
	if err != nil {
		return Result[B]{Tasks: concatTasks(ra.Tasks, rb.Tasks)}, err
	}

	return Result[B]{
		Request: combined,
		Dirty:   ra.Dirty || rb.Dirty,
		Focus:   rb.Focus,
		Action:  MergeAction(ra.Action, rb.Action),
		Tasks:   concatTasks(ra.Tasks, rb.Tasks),
		Value:   rb.Value,
	}, nil
}

func concatTasks(a, b []*tasks.Handle) []*tasks.Handle {
	switch {
	case len(b) == 0:
		return a
	case len(a) == 0:
		return b
	}
	out := make([]*tasks.Handle, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func shapeChanged(flow Flow, want, got Shape) error {
	return cerrors.New(cerrors.ErrCodeContract, "bound widget shape depends on a produced value").
		WithContext("flow", flow.String()).
		WithContext("declared", fmt.Sprintf("%+v", want)).
		WithContext("built", fmt.Sprintf("%+v", got))
}
