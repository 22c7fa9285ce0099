package compose

import "github.com/odvcencio/cadence/pkg/ui/input"

// RenderContext is what a widget is evaluated in for one tick. Contexts are
// values: composition derives new ones for each child and never mutates the
// parent.
type RenderContext struct {
	// Flow is the direction siblings are packed in.
	Flow Flow
	// Bounds is the rectangle available to the widget.
	Bounds Rect
	// Conjoined contexts are shared, not partitioned, between siblings.
	Conjoined bool
	// FocusBase is the id of the first focusable widget evaluated in this
	// context. Ids of later focusables follow in evaluation order.
	FocusBase ID

	inject func(input.Input)
}

// NewContext creates the root context for one tick. inject enqueues a
// synthetic input for a later tick; nil discards injected inputs.
func NewContext(flow Flow, bounds Rect, inject func(input.Input)) RenderContext {
	return RenderContext{Flow: flow, Bounds: bounds, inject: inject}
}

// Inject enqueues a synthetic input, e.g. a simulated click or a timer tick
// from a background task. Injected inputs are delivered on later ticks,
// never the current one.
func (c RenderContext) Inject(in input.Input) {
	if c.inject != nil {
		c.inject(in)
	}
}

// Injector returns the injection capability so background tasks can keep it
// beyond the tick that spawned them.
func (c RenderContext) Injector() func(input.Input) {
	if c.inject == nil {
		return func(input.Input) {}
	}
	return c.inject
}

// Split derives the contexts of widget A and of everything after it. reqA is
// A's own request and reqCombined the merged request of A and its
// successors. A conjoined context is handed unchanged to both sides.
func (c RenderContext) Split(reqA, reqCombined LayoutRequest) (RenderContext, RenderContext) {
	if c.Conjoined {
		return c, c
	}
	ra, rb := SplitRect(c.Flow, c.Bounds, reqA, reqCombined)
	a, b := c, c
	a.Bounds = ra
	b.Bounds = rb
	return a, b
}

// FinalRect resolves the rectangle a widget with request req occupies.
func (c RenderContext) FinalRect(req LayoutRequest) Rect {
	return FinalRect(c.Flow, c.Bounds, req)
}

// WithFlow returns a fresh partitioned context packing along flow.
func (c RenderContext) WithFlow(flow Flow) RenderContext {
	c.Flow = flow
	c.Conjoined = false
	return c
}

// WithConjoined returns a context whose area is shared by its children.
func (c RenderContext) WithConjoined() RenderContext {
	c.Conjoined = true
	return c
}

// offsetFocus moves the focus base past n focusable widgets.
func (c RenderContext) offsetFocus(n int) RenderContext {
	c.FocusBase += ID(n)
	return c
}
