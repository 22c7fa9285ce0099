package compose

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequests(n int) []LayoutRequest {
	rng := rand.New(rand.NewSource(7))
	reqs := []LayoutRequest{{}, Fixed(80, 50), StretchWidth(0, 50), StretchHeight(12, 3), Stretch(2, 1, 4, 4)}
	for len(reqs) < n {
		reqs = append(reqs, LayoutRequest{
			HFill:  rng.Intn(3),
			VFill:  rng.Intn(3),
			HFixed: rng.Intn(40),
			VFixed: rng.Intn(40),
			MinW:   rng.Intn(40),
			MinH:   rng.Intn(40),
		})
	}
	return reqs
}

func TestMergeRequestMonoid(t *testing.T) {
	reqs := sampleRequests(12)
	for _, flow := range Flows {
		t.Run(flow.String(), func(t *testing.T) {
			for _, a := range reqs {
				assert.Equal(t, a, MergeRequest(flow, a, LayoutRequest{}), "right identity")
				assert.Equal(t, a, MergeRequest(flow, LayoutRequest{}, a), "left identity")
				for _, b := range reqs {
					assert.Equal(t, MergeRequest(flow, a, b), MergeRequest(flow, b, a), "commutative")
					for _, c := range reqs {
						left := MergeRequest(flow, MergeRequest(flow, a, b), c)
						right := MergeRequest(flow, a, MergeRequest(flow, b, c))
						require.Equal(t, left, right, "associative")
					}
				}
			}
		})
	}
}

func TestMergeRequestAxes(t *testing.T) {
	a := Fixed(80, 50)
	b := StretchWidth(0, 50)

	assert.Equal(t, LayoutRequest{HFill: 1, HFixed: 80, VFixed: 50, MinW: 80, MinH: 50}, MergeRequest(LeftRight, a, b))
	assert.Equal(t, LayoutRequest{HFill: 1, HFixed: 80, VFixed: 100, MinW: 80, MinH: 100}, MergeRequest(TopDown, a, b))

	// Cross-axis fill is nonzero iff either side stretches.
	cross := MergeRequest(TopDown, Stretch(3, 0, 0, 0), Stretch(1, 0, 0, 0))
	assert.Equal(t, 1, cross.HFill)
	assert.Equal(t, 1, MergeRequest(TopDown, Stretch(3, 0, 0, 0), Stretch(3, 0, 0, 0)).HFill)
	assert.Zero(t, MergeRequest(TopDown, Fixed(1, 1), Fixed(2, 2)).HFill)
}

func TestSplitRectFixedThenStretchy(t *testing.T) {
	bounds := NewRect(0, 0, 200, 50)
	a := Fixed(80, 50)
	b := StretchWidth(0, 50)
	combined := MergeRequest(LeftRight, a, b)
	require.Equal(t, LayoutRequest{HFill: 1, VFill: 0, HFixed: 80, VFixed: 50, MinW: 80, MinH: 50}, combined)

	ra, rb := SplitRect(LeftRight, bounds, a, combined)
	assert.Equal(t, NewRect(0, 0, 80, 50), ra)
	assert.Equal(t, NewRect(80, 0, 120, 50), rb)
}

func TestSplitRectFarAnchored(t *testing.T) {
	a := Fixed(80, 50)
	combined := MergeRequest(RightLeft, a, StretchWidth(0, 50))
	ra, rb := SplitRect(RightLeft, NewRect(0, 0, 200, 50), a, combined)
	assert.Equal(t, NewRect(120, 0, 80, 50), ra)
	assert.Equal(t, NewRect(0, 0, 120, 50), rb)

	a = Fixed(10, 4)
	combined = MergeRequest(BottomUp, a, StretchHeight(10, 0))
	ra, rb = SplitRect(BottomUp, NewRect(5, 10, 10, 20), a, combined)
	assert.Equal(t, NewRect(5, 26, 10, 4), ra)
	assert.Equal(t, NewRect(5, 10, 10, 16), rb)
}

func TestSplitRectSharesFreeSpace(t *testing.T) {
	one := StretchHeight(10, 0)
	two := MergeRequest(TopDown, one, one)
	three := MergeRequest(TopDown, one, two)
	bounds := NewRect(0, 0, 10, 10)

	ra, rest := SplitRect(TopDown, bounds, one, three)
	assert.Equal(t, 3, ra.Height)
	rb, rc := SplitRect(TopDown, rest, one, two)
	assert.Equal(t, NewRect(0, 3, 10, 3), rb)
	assert.Equal(t, NewRect(0, 6, 10, 4), rc)
}

func TestSplitRectHonorsMinimums(t *testing.T) {
	a := Stretch(0, 1, 0, 7)
	b := Stretch(0, 1, 0, 0)
	ra, rb := SplitRect(TopDown, NewRect(0, 0, 10, 10), a, MergeRequest(TopDown, a, b))
	assert.Equal(t, 7, ra.Height)
	assert.Equal(t, 3, rb.Height)

	// A may not starve the successors below their minimum.
	a = Stretch(0, 5, 0, 0)
	b = Stretch(0, 1, 0, 8)
	ra, rb = SplitRect(TopDown, NewRect(0, 0, 10, 10), a, MergeRequest(TopDown, a, b))
	assert.Equal(t, 2, ra.Height)
	assert.Equal(t, 8, rb.Height)
}

func TestFinalRect(t *testing.T) {
	bounds := NewRect(10, 5, 50, 20)

	assert.Equal(t, NewRect(10, 5, 8, 3), FinalRect(LeftRight, bounds, Fixed(8, 3)))
	assert.Equal(t, NewRect(52, 5, 8, 3), FinalRect(RightLeft, bounds, Fixed(8, 3)))
	assert.Equal(t, NewRect(10, 22, 8, 3), FinalRect(BottomUp, bounds, Fixed(8, 3)))
	assert.Equal(t, bounds, FinalRect(TopDown, bounds, Stretch(1, 1, 0, 0)))
	assert.Equal(t, NewRect(10, 5, 50, 30), FinalRect(TopDown, bounds, Stretch(1, 1, 0, 30)))
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 3, floorDiv(7, 2))
	assert.Equal(t, -4, floorDiv(-7, 2))
	assert.Equal(t, -4, floorDiv(7, -2))
	assert.Equal(t, 3, floorDiv(-7, -2))
	assert.Equal(t, 0, floorDiv(7, 0))
}

func TestParseFlow(t *testing.T) {
	for _, f := range Flows {
		got, err := ParseFlow(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseFlow("diagonal")
	assert.Error(t, err)
}
