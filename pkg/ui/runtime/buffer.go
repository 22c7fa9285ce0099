package runtime

import (
	"strings"

	"github.com/odvcencio/cadence/pkg/ui/backend"
	"github.com/odvcencio/cadence/pkg/ui/compose"
)

// Cell represents a single character cell in the frame.
type Cell struct {
	Rune  rune
	Style backend.Style
}

var blank = Cell{Rune: ' ', Style: backend.DefaultStyle()}

// Buffer is the frame pictures are painted into before they reach the
// terminal. It tracks which cells changed since the last flush so only those
// are written to the backend.
type Buffer struct {
	cells  []Cell
	width  int
	height int

	dirty      []bool
	dirtyCount int
}

// NewBuffer creates a blank buffer with the given dimensions.
func NewBuffer(w, h int) *Buffer {
	b := &Buffer{}
	b.Resize(w, h)
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Bounds returns the whole buffer as a rectangle.
func (b *Buffer) Bounds() compose.Rect {
	return compose.NewRect(0, 0, b.width, b.height)
}

// Resize changes the dimensions. Content is discarded and every cell is
// marked dirty.
func (b *Buffer) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	b.width, b.height = w, h
	b.cells = make([]Cell, w*h)
	b.dirty = make([]bool, w*h)
	for i := range b.cells {
		b.cells[i] = blank
	}
	b.MarkAllDirty()
}

// Get returns the cell at (x, y), or a blank cell out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return blank
	}
	return b.cells[y*b.width+x]
}

// SetContent writes a rune with style at (x, y). Combining runes are
// ignored. Out of bounds writes are dropped.
func (b *Buffer) SetContent(x, y int, mainc rune, _ []rune, style backend.Style) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	idx := y*b.width + x
	cell := Cell{Rune: mainc, Style: style}
	if b.cells[idx] != cell {
		b.cells[idx] = cell
		b.markDirty(idx)
	}
}

// Clear blanks every cell, marking the ones that change.
func (b *Buffer) Clear() {
	for i, c := range b.cells {
		if c != blank {
			b.cells[i] = blank
			b.markDirty(i)
		}
	}
}

// Paint repaints the buffer from a picture: the previous frame is blanked
// and p is painted over it. Cells that end up unchanged stay clean.
func (b *Buffer) Paint(p compose.Picture) error {
	prev := make([]Cell, len(b.cells))
	copy(prev, b.cells)
	wasDirty := make([]bool, len(b.dirty))
	copy(wasDirty, b.dirty)

	for i := range b.cells {
		b.cells[i] = blank
	}
	err := p.Paint(b)

	b.dirtyCount = 0
	for i := range b.cells {
		b.dirty[i] = wasDirty[i] || b.cells[i] != prev[i]
		if b.dirty[i] {
			b.dirtyCount++
		}
	}
	return err
}

func (b *Buffer) markDirty(idx int) {
	if !b.dirty[idx] {
		b.dirty[idx] = true
		b.dirtyCount++
	}
}

// MarkAllDirty marks the entire buffer as dirty.
func (b *Buffer) MarkAllDirty() {
	for i := range b.dirty {
		b.dirty[i] = true
	}
	b.dirtyCount = len(b.dirty)
}

// IsDirty returns true if any cells changed since the last flush.
func (b *Buffer) IsDirty() bool {
	return b.dirtyCount > 0
}

// DirtyCount returns the number of dirty cells.
func (b *Buffer) DirtyCount() int {
	return b.dirtyCount
}

// Flush writes dirty cells to target and resets dirty tracking. It returns
// the number of cells written.
func (b *Buffer) Flush(target backend.RenderTarget) int {
	if b.dirtyCount == 0 {
		return 0
	}
	n := 0
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			idx := y*b.width + x
			if !b.dirty[idx] {
				continue
			}
			c := b.cells[idx]
			target.SetContent(x, y, c.Rune, nil, c.Style)
			n++
		}
	}
	clear(b.dirty)
	b.dirtyCount = 0
	return n
}

// Row returns line y as text with trailing spaces kept.
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.cells[y*b.width : (y+1)*b.width] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String renders the buffer as newline separated rows with trailing spaces
// trimmed.
func (b *Buffer) String() string {
	lines := make([]string, b.height)
	for y := range lines {
		lines[y] = strings.TrimRight(b.Row(y), " ")
	}
	return strings.Join(lines, "\n")
}
