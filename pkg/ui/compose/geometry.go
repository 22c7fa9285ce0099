// Package compose is the composition core of the widget toolkit.
//
// A widget declares a static LayoutRequest and, per tick, runs against a
// RenderContext, a focus Token and an input.Input to produce a Result. The
// sequential composition operator (Bind) splits the context between two
// widgets, runs them left to right and merges their five output channels:
// geometry, redraw flag, focus token, action, and task handles.
//
// Layout requests are computed in a static pass, when widget descriptions are
// constructed, so a composed widget knows how to split its rectangle before
// any of its children run.
package compose

import "fmt"

// Flow is the axis and anchor edge along which sibling widgets are packed.
type Flow int

const (
	TopDown Flow = iota
	BottomUp
	LeftRight
	RightLeft
)

// Flows lists every flow direction, in declaration order.
var Flows = [...]Flow{TopDown, BottomUp, LeftRight, RightLeft}

// String returns the flow name.
func (f Flow) String() string {
	switch f {
	case TopDown:
		return "top-down"
	case BottomUp:
		return "bottom-up"
	case LeftRight:
		return "left-right"
	case RightLeft:
		return "right-left"
	default:
		return fmt.Sprintf("Flow(%d)", int(f))
	}
}

// ParseFlow parses the names produced by Flow.String.
func ParseFlow(s string) (Flow, error) {
	for _, f := range Flows {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown flow %q", s)
}

// Horizontal reports whether siblings are packed along the x axis.
func (f Flow) Horizontal() bool {
	return f == LeftRight || f == RightLeft
}

// farAnchored reports whether the first sibling sits at the far edge
// (bottom or right) of the flow axis.
func (f Flow) farAnchored() bool {
	return f == BottomUp || f == RightLeft
}

// LayoutRequest is a widget's space demand, independent of any context.
//
// Each dimension is either stretchy (fill weight > 0, minimum given) or fixed
// (fill weight 0, fixed size given, minimum equal to the fixed size). The zero
// value is the identity for MergeRequest.
type LayoutRequest struct {
	HFill, VFill   int
	HFixed, VFixed int
	MinW, MinH     int
}

// Fixed requests exactly w by h cells.
func Fixed(w, h int) LayoutRequest {
	return LayoutRequest{HFixed: w, VFixed: h, MinW: w, MinH: h}
}

// Stretch requests a share of the free space on both axes.
func Stretch(hFill, vFill, minW, minH int) LayoutRequest {
	return LayoutRequest{HFill: hFill, VFill: vFill, MinW: minW, MinH: minH}
}

// StretchWidth requests a single share of free width and a fixed height.
func StretchWidth(minW, h int) LayoutRequest {
	return LayoutRequest{HFill: 1, VFixed: h, MinW: minW, MinH: h}
}

// StretchHeight requests a fixed width and a single share of free height.
func StretchHeight(w, minH int) LayoutRequest {
	return LayoutRequest{VFill: 1, HFixed: w, MinW: w, MinH: minH}
}

// Zero reports whether r is the identity request.
func (r LayoutRequest) Zero() bool {
	return r == LayoutRequest{}
}

// axis is a one-dimensional view of a request.
type axis struct {
	fill, fixed, min int
}

func (r LayoutRequest) horizontal() axis { return axis{r.HFill, r.HFixed, r.MinW} }
func (r LayoutRequest) vertical() axis   { return axis{r.VFill, r.VFixed, r.MinH} }

func fromAxes(h, v axis) LayoutRequest {
	return LayoutRequest{
		HFill: h.fill, VFill: v.fill,
		HFixed: h.fixed, VFixed: v.fixed,
		MinW: h.min, MinH: v.min,
	}
}

// along splits r into its flow-axis and cross-axis components.
func (r LayoutRequest) along(flow Flow) (main, cross axis) {
	if flow.Horizontal() {
		return r.horizontal(), r.vertical()
	}
	return r.vertical(), r.horizontal()
}

func joinAlong(flow Flow, main, cross axis) LayoutRequest {
	if flow.Horizontal() {
		return fromAxes(main, cross)
	}
	return fromAxes(cross, main)
}

// MergeRequest combines the requests of two siblings packed along flow.
//
// Along the flow axis weights, fixed sizes and minimums add. Across it the
// fixed size and minimum take the larger operand and the fill weight is a
// saturating join: nonzero exactly when either operand is nonzero. The
// operation is commutative and associative with the zero request as identity.
func MergeRequest(flow Flow, a, b LayoutRequest) LayoutRequest {
	am, ac := a.along(flow)
	bm, bc := b.along(flow)

	main := axis{
		fill:  am.fill + bm.fill,
		fixed: am.fixed + bm.fixed,
		min:   am.min + bm.min,
	}
	cross := axis{
		fill:  join(ac.fill, bc.fill),
		fixed: max(ac.fixed, bc.fixed),
		min:   max(ac.min, bc.min),
	}
	return joinAlong(flow, main, cross)
}

// join is the saturating OR of two cross-axis fill weights: a lone weight
// passes through unchanged and two stretchy operands collapse to one share,
// so siblings never carry their weights into the parent.
func join(a, b int) int {
	switch {
	case a == 0:
		return b
	case b == 0:
		return a
	default:
		return 1
	}
}

// Rect is a positioned rectangle.
type Rect struct {
	X, Y, Width, Height int
}

// NewRect creates a rect from position and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Contains returns true if the point is inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// extent returns the position and size of r along the flow axis.
func (r Rect) extent(flow Flow) (pos, size int) {
	if flow.Horizontal() {
		return r.X, r.Width
	}
	return r.Y, r.Height
}

// withExtent replaces the flow-axis position and size of r.
func (r Rect) withExtent(flow Flow, pos, size int) Rect {
	if flow.Horizontal() {
		r.X, r.Width = pos, size
	} else {
		r.Y, r.Height = pos, size
	}
	return r
}

// SplitRect divides bounds along flow between widget A, whose own request is
// reqA, and everything composed after it. reqCombined is the already merged
// request of A and its successors.
//
// The space reserved for A is its fixed size when A does not stretch, or its
// share of the free space otherwise, kept between A's minimum and the largest
// size that still leaves the successors their minimums. Bounds too small for
// the combined minimum give unspecified (possibly negative) sizes.
func SplitRect(flow Flow, bounds Rect, reqA, reqCombined LayoutRequest) (Rect, Rect) {
	a, _ := reqA.along(flow)
	c, _ := reqCombined.along(flow)
	pos, avail := bounds.extent(flow)

	want := a.fixed
	if a.fill != 0 {
		want = max(a.min, a.fill*floorDiv(avail-c.fixed, c.fill)+a.fixed)
	}
	reserved := clamp(want, a.min, avail-(c.min-a.min))
	rest := avail - reserved

	if flow.farAnchored() {
		return bounds.withExtent(flow, pos+rest, reserved), bounds.withExtent(flow, pos, rest)
	}
	return bounds.withExtent(flow, pos, reserved), bounds.withExtent(flow, pos+reserved, rest)
}

// FinalRect resolves a widget's own rectangle inside the bounds it was given.
// On each axis a fixed dimension takes its fixed size and a stretchy one the
// full extent, never less than the minimum. The flow axis is anchored like
// SplitRect; the cross axis at the near edge.
func FinalRect(flow Flow, bounds Rect, req LayoutRequest) Rect {
	resolve := func(ax axis, extent int) int {
		size := ax.fixed
		if ax.fill != 0 {
			size = extent
		}
		return max(size, ax.min)
	}

	r := Rect{
		X:      bounds.X,
		Y:      bounds.Y,
		Width:  resolve(req.horizontal(), bounds.Width),
		Height: resolve(req.vertical(), bounds.Height),
	}
	if flow.farAnchored() {
		pos, avail := bounds.extent(flow)
		_, size := r.extent(flow)
		r = r.withExtent(flow, pos+avail-size, size)
	}
	return r
}

// floorDiv divides rounding toward negative infinity; a zero divisor yields 0.
func floorDiv(x, y int) int {
	if y == 0 {
		return 0
	}
	q := x / y
	if (x%y != 0) && ((x < 0) != (y < 0)) {
		q--
	}
	return q
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
