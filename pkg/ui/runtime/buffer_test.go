package runtime

import (
	"testing"

	"github.com/odvcencio/cadence/pkg/ui/backend"
	"github.com/odvcencio/cadence/pkg/ui/compose"
)

type recordingTarget struct {
	w, h  int
	cells map[[2]int]rune
}

func newRecordingTarget(w, h int) *recordingTarget {
	return &recordingTarget{w: w, h: h, cells: map[[2]int]rune{}}
}

func (r *recordingTarget) Size() (int, int) { return r.w, r.h }

func (r *recordingTarget) SetContent(x, y int, mainc rune, _ []rune, _ backend.Style) {
	r.cells[[2]int{x, y}] = mainc
}

func TestBuffer_New(t *testing.T) {
	b := NewBuffer(80, 24)

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("Size() = %d, %d; want 80, 24", w, h)
	}
	if b.Get(3, 3).Rune != ' ' {
		t.Errorf("new buffer should be blank")
	}
	if b.DirtyCount() != 80*24 {
		t.Errorf("new buffer should be fully dirty, got %d", b.DirtyCount())
	}
}

func TestBuffer_SetContentOutOfBounds(t *testing.T) {
	b := NewBuffer(10, 10)
	b.Flush(newRecordingTarget(10, 10))

	b.SetContent(-1, 5, 'X', nil, backend.DefaultStyle())
	b.SetContent(100, 5, 'X', nil, backend.DefaultStyle())
	b.SetContent(5, -1, 'X', nil, backend.DefaultStyle())
	b.SetContent(5, 100, 'X', nil, backend.DefaultStyle())

	if b.IsDirty() {
		t.Errorf("out of bounds writes should not dirty the buffer")
	}
	if cell := b.Get(-1, -1); cell.Rune != ' ' {
		t.Errorf("Get(-1,-1) = %c, want space", cell.Rune)
	}
}

func TestBuffer_FlushWritesOnlyDirtyCells(t *testing.T) {
	b := NewBuffer(4, 2)
	if n := b.Flush(newRecordingTarget(4, 2)); n != 8 {
		t.Fatalf("first flush wrote %d cells, want 8", n)
	}

	b.SetContent(1, 1, 'x', nil, backend.DefaultStyle())
	b.SetContent(1, 1, 'x', nil, backend.DefaultStyle())
	target := newRecordingTarget(4, 2)
	if n := b.Flush(target); n != 1 {
		t.Fatalf("flush wrote %d cells, want 1", n)
	}
	if target.cells[[2]int{1, 1}] != 'x' {
		t.Errorf("expected x at (1,1)")
	}
	if b.IsDirty() {
		t.Errorf("flush should reset dirty tracking")
	}
}

func TestBuffer_PaintDiffsAgainstPreviousFrame(t *testing.T) {
	b := NewBuffer(6, 1)
	style := backend.DefaultStyle()
	if err := b.Paint(compose.Text(compose.NewRect(0, 0, 6, 1), "ab", style)); err != nil {
		t.Fatalf("Paint: %v", err)
	}
	b.Flush(newRecordingTarget(6, 1))

	if err := b.Paint(compose.Text(compose.NewRect(0, 0, 6, 1), "ac", style)); err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if b.DirtyCount() != 1 || !b.dirty[1] {
		t.Errorf("only the changed cell should be dirty, got %d", b.DirtyCount())
	}
	if got := b.Row(0); got != "ac    " {
		t.Errorf("Row(0) = %q", got)
	}

	// Content missing from the new frame is blanked.
	if err := b.Paint(compose.Picture{}); err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if got := b.String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
}

func TestBuffer_ResizeMarksAllDirty(t *testing.T) {
	b := NewBuffer(2, 2)
	b.Flush(newRecordingTarget(2, 2))
	b.Resize(3, 1)
	if w, h := b.Size(); w != 3 || h != 1 {
		t.Errorf("Size() = %d, %d; want 3, 1", w, h)
	}
	if b.DirtyCount() != 3 {
		t.Errorf("DirtyCount() = %d, want 3", b.DirtyCount())
	}
	if b.Bounds() != compose.NewRect(0, 0, 3, 1) {
		t.Errorf("Bounds() = %+v", b.Bounds())
	}
}
