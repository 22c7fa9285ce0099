package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorRGB_RoundTrip(t *testing.T) {
	c := ColorRGB(0x12, 0x34, 0x56)
	assert.True(t, c.IsRGB())

	r, g, b := c.RGB()
	assert.Equal(t, []uint8{0x12, 0x34, 0x56}, []uint8{r, g, b})

	assert.False(t, ColorRed.IsRGB())
	r, g, b = ColorRed.RGB()
	assert.Zero(t, r+g+b)
}

func TestStyle_Attributes(t *testing.T) {
	s := DefaultStyle().Bold(true).Underline(true).Foreground(ColorCyan)

	fg, bg, attrs := s.Decompose()
	assert.Equal(t, ColorCyan, fg)
	assert.Equal(t, ColorDefault, bg)
	assert.Equal(t, AttrBold|AttrUnderline, attrs)

	_, _, attrs = s.Bold(false).Decompose()
	assert.Equal(t, AttrUnderline, attrs)
}

type recordTarget struct {
	w, h  int
	cells map[[2]int]rune
}

func (r *recordTarget) Size() (int, int) { return r.w, r.h }

func (r *recordTarget) SetContent(x, y int, mainc rune, comb []rune, style Style) {
	r.cells[[2]int{x, y}] = mainc
}

func TestClip_DropsOutsideWrites(t *testing.T) {
	target := &recordTarget{w: 10, h: 10, cells: map[[2]int]rune{}}
	clip := Clip(target, 2, 2, 3, 1)

	clip.SetContent(1, 2, 'a', nil, DefaultStyle())
	clip.SetContent(2, 2, 'b', nil, DefaultStyle())
	clip.SetContent(4, 2, 'c', nil, DefaultStyle())
	clip.SetContent(5, 2, 'd', nil, DefaultStyle())
	clip.SetContent(3, 3, 'e', nil, DefaultStyle())

	assert.Equal(t, map[[2]int]rune{{2, 2}: 'b', {4, 2}: 'c'}, target.cells)

	w, h := clip.Size()
	assert.Equal(t, 10, w)
	assert.Equal(t, 10, h)
}
