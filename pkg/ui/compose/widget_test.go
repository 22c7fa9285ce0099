package compose

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/odvcencio/cadence/pkg/errors"
	"github.com/odvcencio/cadence/pkg/ui/backend"
	"github.com/odvcencio/cadence/pkg/ui/input"
	"github.com/odvcencio/cadence/pkg/ui/tasks"
)

func TestThenSplitsFixedAndStretchy(t *testing.T) {
	a := &spy{req: Fixed(80, 50)}
	b := &spy{req: StretchWidth(0, 50)}
	w := Then[Unit, Unit](a, b)

	assert.Equal(t, LayoutRequest{HFill: 1, HFixed: 80, VFixed: 50, MinW: 80, MinH: 50}, w.Shape(LeftRight).Request)

	r, err := w.Run(rootContext(LeftRight, 200, 50), Unfocused(), input.NoEvent{})
	require.NoError(t, err)
	assert.Equal(t, NewRect(0, 0, 80, 50), a.bounds)
	assert.Equal(t, NewRect(80, 0, 120, 50), b.bounds)
	assert.Equal(t, NewRect(80, 0, 120, 50), b.rect)
	assert.Equal(t, w.Shape(LeftRight).Request, r.Request)
}

func TestThenMergesDirtyAndAction(t *testing.T) {
	rec := &recorder{}
	style := backend.DefaultStyle()
	w1 := &spy{dirty: true, action: Action{Visual: Fill(NewRect(0, 0, 2, 1), '1', style), Audio: rec.note("s1")}}
	w2 := &spy{dirty: false, action: Action{Visual: Fill(NewRect(0, 0, 2, 1), '2', style), Audio: rec.note("s2")}}

	r, err := Then[Unit, Unit](w1, w2).Run(rootContext(TopDown, 2, 1).WithConjoined(), Unfocused(), input.NoEvent{})
	require.NoError(t, err)

	assert.True(t, r.Dirty)
	assert.Equal(t, "22", paintRow(t, r.Action.Visual, 2))
	require.NoError(t, r.Action.Audio.Run(context.Background()))
	assert.Equal(t, []string{"s1", "s2"}, rec.log)
}

func TestDirtyIsOr(t *testing.T) {
	for _, tc := range []struct{ a, b, want bool }{
		{false, false, false},
		{true, false, true},
		{false, true, true},
		{true, true, true},
	} {
		r, err := Then[Unit, Unit](&spy{dirty: tc.a}, &spy{dirty: tc.b}).
			Run(rootContext(TopDown, 1, 1), Unfocused(), input.NoEvent{})
		require.NoError(t, err)
		assert.Equal(t, tc.want, r.Dirty, "%v || %v", tc.a, tc.b)
	}
}

func TestFocusIdsFollowEvaluationOrder(t *testing.T) {
	a := &spy{name: "a"}
	plain := &spy{}
	b := &spy{name: "b"}
	c := &spy{name: "c"}
	w := Seq(a, plain, Row(b, c))

	plan := Analyze(w, TopDown)
	require.Equal(t, 3, plan.Focus.Len())
	id, ok := plan.Focus.Lookup("c")
	require.True(t, ok)
	assert.Equal(t, ID(2), id)

	r, err := w.Run(rootContext(TopDown, 10, 10), Request(id), input.NoEvent{})
	require.NoError(t, err)
	assert.Equal(t, ClaimNone, a.claim)
	assert.Equal(t, ClaimNone, b.claim)
	assert.Equal(t, ClaimTaken, c.claim)
	assert.Equal(t, NoFocus{}, r.Focus.Signal)
}

func TestUnclaimedRequestFallsOff(t *testing.T) {
	a, b := &spy{name: "a"}, &spy{name: "b"}
	r, err := Seq(a, b).Run(rootContext(TopDown, 10, 10), Request(7), input.NoEvent{})
	require.NoError(t, err)
	assert.False(t, a.claim.Focused())
	assert.False(t, b.claim.Focused())

	settled, dropped := Settle(r.Focus)
	assert.True(t, dropped)
	assert.Equal(t, NoFocus{}, settled.Signal)
}

func TestInputIsBroadcast(t *testing.T) {
	a, b, c := &spy{}, &spy{}, &spy{}
	ev := input.Type('x')
	_, err := Seq(a, Column(b, c)).Run(rootContext(TopDown, 4, 4), Unfocused(), ev)
	require.NoError(t, err)
	for _, p := range []*spy{a, b, c} {
		assert.Equal(t, input.Input(ev), p.in)
	}
}

func TestBindPassesValue(t *testing.T) {
	five := Leaf(Fixed(1, 1), func(Rect, input.Input, RenderContext) (Output[int], error) {
		return Output[int]{Value: 5}, nil
	})
	w := Bind(five, func(v int) Widget[int] { return Pure(v * 2) })

	r, err := w.Run(rootContext(TopDown, 1, 1), Unfocused(), input.NoEvent{})
	require.NoError(t, err)
	assert.Equal(t, 10, r.Value)
	assert.Equal(t, Fixed(1, 1), r.Request)
}

func TestBindCallsContinuationOncePerTick(t *testing.T) {
	calls := 0
	inner := Pure(Unit{})
	w := Bind(Pure(1), func(int) Widget[Unit] {
		calls++
		return inner
	})
	assert.Equal(t, 1, calls, "zero-value call at construction")

	for i := 0; i < 3; i++ {
		_, err := w.Run(rootContext(TopDown, 1, 1), Unfocused(), input.NoEvent{})
		require.NoError(t, err)
	}
	assert.Equal(t, 4, calls)
}

func TestBindRejectsValueDependentShape(t *testing.T) {
	one := Leaf(Fixed(1, 1), func(Rect, input.Input, RenderContext) (Output[int], error) {
		return Output[int]{Value: 1}, nil
	})
	w := Bind(one, func(v int) Widget[Unit] {
		return &spy{req: Fixed(v+1, 1)}
	})

	_, err := w.Run(rootContext(TopDown, 4, 4), Unfocused(), input.NoEvent{})
	require.Error(t, err)
	assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeContract))
}

func TestErrorAbortsTick(t *testing.T) {
	boom := errors.New("render failed")
	failing := Leaf(Fixed(1, 1), func(Rect, input.Input, RenderContext) (Output[Unit], error) {
		return Output[Unit]{}, boom
	})
	after := &spy{}

	_, err := Seq(failing, after).Run(rootContext(TopDown, 2, 2), Unfocused(), input.NoEvent{})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, after.runs)
}

func TestTasksAreCollectedInOrder(t *testing.T) {
	spawn := func(name string) Widget[Unit] {
		return Leaf(LayoutRequest{}, func(Rect, input.Input, RenderContext) (Output[Unit], error) {
			return Output[Unit]{Tasks: []*tasks.Handle{tasks.New(name, nil)}}, nil
		})
	}
	r, err := Seq(spawn("a"), &spy{}, spawn("b"), spawn("c")).
		Run(rootContext(TopDown, 1, 1), Unfocused(), input.NoEvent{})
	require.NoError(t, err)

	var names []string
	for _, h := range r.Tasks {
		names = append(names, h.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestSeqEmptyIsIdentity(t *testing.T) {
	a := &spy{req: Fixed(3, 2)}
	assert.Equal(t, a.Shape(TopDown), Seq(a, Seq()).Shape(TopDown))
	assert.Equal(t, a.Shape(TopDown), Seq(Seq(), a).Shape(TopDown))
}

func TestPackReportsFootprintOfItsFlow(t *testing.T) {
	row := Row(&spy{req: Fixed(3, 1)}, &spy{req: Fixed(4, 2)})
	assert.Equal(t, LayoutRequest{HFixed: 7, VFixed: 2, MinW: 7, MinH: 2}, row.Shape(TopDown).Request)

	below := &spy{req: StretchWidth(0, 1)}
	col := Column(row, below)
	assert.Equal(t, LayoutRequest{HFill: 1, HFixed: 7, VFixed: 3, MinW: 7, MinH: 3}, col.Shape(LeftRight).Request)

	_, err := col.Run(rootContext(LeftRight, 20, 10), Unfocused(), input.NoEvent{})
	require.NoError(t, err)
	assert.Equal(t, NewRect(0, 2, 20, 8), below.bounds)
}

func TestNestedColumnTakesOneCrossShare(t *testing.T) {
	wide := LayoutRequest{HFill: 3, VFixed: 1, MinH: 1}
	top, bottom := &spy{req: wide}, &spy{req: wide}
	col := Column(top, bottom)
	assert.Equal(t, 1, col.Shape(LeftRight).Request.HFill)

	other := &spy{req: StretchWidth(0, 1)}
	_, err := Row(col, other).Run(rootContext(TopDown, 100, 2), Unfocused(), input.NoEvent{})
	require.NoError(t, err)
	assert.Equal(t, NewRect(0, 0, 50, 1), top.bounds)
	assert.Equal(t, NewRect(0, 1, 50, 1), bottom.bounds)
	assert.Equal(t, NewRect(50, 0, 50, 2), other.bounds)
}

func TestConjoinSharesBounds(t *testing.T) {
	bg := &spy{req: Stretch(1, 1, 0, 0)}
	fg := &spy{req: Fixed(3, 1)}
	_, err := Layer(bg, fg).Run(rootContext(TopDown, 8, 4), Unfocused(), input.NoEvent{})
	require.NoError(t, err)
	assert.Equal(t, NewRect(0, 0, 8, 4), bg.bounds)
	assert.Equal(t, NewRect(0, 0, 8, 4), fg.bounds)

	// A nested container partitions again.
	x, y := &spy{req: Fixed(2, 1)}, &spy{req: Fixed(2, 1)}
	_, err = Layer(bg, Row(x, y)).Run(rootContext(TopDown, 8, 4), Unfocused(), input.NoEvent{})
	require.NoError(t, err)
	assert.Equal(t, 0, x.bounds.X)
	assert.Equal(t, 2, y.bounds.X)
}

func TestFocusScope(t *testing.T) {
	inner1, inner2 := &spy{name: "x"}, &spy{name: "y"}
	after := &spy{name: "z"}
	w := Seq(FocusScope("panel", Seq(inner1, inner2)), after)

	plan := Analyze(w, TopDown)
	assert.Equal(t, []string{"panel", "x", "y", "z"}, plan.Focus.Names())

	r, err := w.Run(rootContext(TopDown, 4, 4), Request(0), input.NoEvent{})
	require.NoError(t, err)
	assert.Equal(t, ClaimInherited, inner1.claim)
	assert.Equal(t, ClaimInherited, inner2.claim)
	assert.Equal(t, ClaimNone, after.claim)
	assert.Equal(t, NoFocus{}, r.Focus.Signal)

	// A request for a child still reaches it through an unfocused scope.
	_, err = w.Run(rootContext(TopDown, 4, 4), Request(2), input.NoEvent{})
	require.NoError(t, err)
	assert.Equal(t, ClaimNone, inner1.claim)
	assert.Equal(t, ClaimTaken, inner2.claim)
}

func TestAnalyzeFirstNameWins(t *testing.T) {
	plan := Analyze(Seq(&spy{name: "dup"}, &spy{name: "dup"}), TopDown)
	id, ok := plan.Focus.Lookup("dup")
	require.True(t, ok)
	assert.Equal(t, ID(0), id)
	assert.Equal(t, "dup", plan.Focus.Name(1))
	assert.Equal(t, "", plan.Focus.Name(2))
	_, ok = plan.Focus.Lookup("missing")
	assert.False(t, ok)
}

func TestInjectorReachesDriver(t *testing.T) {
	var got []input.Input
	ctx := NewContext(TopDown, NewRect(0, 0, 1, 1), func(in input.Input) { got = append(got, in) })
	clicker := Leaf(LayoutRequest{}, func(_ Rect, _ input.Input, ctx RenderContext) (Output[Unit], error) {
		ctx.Inject(input.Click(0, 0))
		return Output[Unit]{}, nil
	})
	_, err := Seq(&spy{}, clicker).Run(ctx, Unfocused(), input.NoEvent{})
	require.NoError(t, err)
	assert.Equal(t, []input.Input{input.Click(0, 0)}, got)

	// A context without a sink swallows injected inputs.
	assert.NotPanics(t, func() { rootContext(TopDown, 1, 1).Injector()(input.NoEvent{}) })
}
