package compose

import (
	"sync"

	cerrors "github.com/odvcencio/cadence/pkg/errors"
	"github.com/odvcencio/cadence/pkg/ui/backend"
	"github.com/odvcencio/cadence/pkg/ui/input"
)

// ErrReadBeforeWrite is returned when a deferred value is read before the
// widget producing it has finished its tick.
var ErrReadBeforeWrite = &cerrors.Error{
	Code:    cerrors.ErrCodeContract,
	Message: "deferred value read before it was written",
}

// Deferred is a single-assignment cell holding a value produced later in the
// same tick. Widgets inside Fix may capture it and read it from deferred
// draw operations or sounds, which only run after the tick is complete.
type Deferred[T any] struct {
	mu    sync.Mutex
	set   bool
	value T
}

// Get returns the value, or ErrReadBeforeWrite if it has not been set yet.
func (d *Deferred[T]) Get() (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.set {
		var zero T
		return zero, cerrors.New(cerrors.ErrCodeContract, ErrReadBeforeWrite.Message)
	}
	return d.value, nil
}

// Ready reports whether the value has been written.
func (d *Deferred[T]) Ready() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.set
}

func (d *Deferred[T]) put(v T) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.set {
		return cerrors.New(cerrors.ErrCodeContract, "deferred value written twice")
	}
	d.value = v
	d.set = true
	return nil
}

// Fix ties a knot: f receives a cell that will hold the value the widget it
// builds produces in the current tick. The value is only available once the
// tick is complete, so it may be used by deferred text and sounds but not to
// choose layout or draw eagerly.
//
// f is called once at construction with an unset cell to learn the shape,
// and once per tick with a fresh cell.
func Fix[T any](f func(*Deferred[T]) Widget[T]) Widget[T] {
	sample := f(&Deferred[T]{})
	fx := &fixed[T]{f: f}
	for _, fl := range Flows {
		fx.shapes[fl] = sample.Shape(fl)
	}
	return fx
}

type fixed[T any] struct {
	f      func(*Deferred[T]) Widget[T]
	shapes [len(Flows)]Shape
}

func (x *fixed[T]) Shape(flow Flow) Shape { return x.shapes[flow] }

func (x *fixed[T]) Run(ctx RenderContext, tok Token, in input.Input) (Result[T], error) {
	cell := &Deferred[T]{}
	w := x.f(cell)
	if got := w.Shape(ctx.Flow); !sameShape(got, x.shapes[ctx.Flow]) {
		return Result[T]{}, shapeChanged(ctx.Flow, x.shapes[ctx.Flow], got)
	}
	r, err := w.Run(ctx, tok, in)
	if err != nil {
		return Result[T]{Tasks: r.Tasks}, err
	}
	if err := cell.put(r.Value); err != nil {
		return Result[T]{Tasks: r.Tasks}, err
	}
	return r, nil
}

// DeferredText draws the text computed from a deferred value at paint time.
func DeferredText[T any](r Rect, d *Deferred[T], format func(T) string, style backend.Style) Picture {
	return Draw(DeferredTextOp{
		Rect: r,
		Text: func() (string, error) {
			v, err := d.Get()
			if err != nil {
				return "", err
			}
			return format(v), nil
		},
		Style: style,
	})
}
