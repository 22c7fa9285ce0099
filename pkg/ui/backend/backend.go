// Package backend defines the terminal collaborator that materializes
// pictures and produces user events. tcell drives real terminals; the sim
// backend wraps tcell's simulation screen for frame-level tests.
package backend

import "github.com/odvcencio/cadence/pkg/ui/input"

// Backend is the terminal abstraction layer.
type Backend interface {
	RenderTarget

	// Init enters raw mode and the alternate screen.
	Init() error

	// Fini restores terminal state.
	Fini()

	// Show synchronizes the internal buffer to the terminal.
	Show()

	// Clear clears the screen.
	Clear()

	// HideCursor hides the terminal cursor.
	HideCursor()

	// PollEvent blocks until an event is available and returns it.
	// Returns nil once the backend is shutting down.
	PollEvent() input.Event

	// PostEvent injects an event into the event queue.
	PostEvent(ev input.Event) error

	// Beep emits an audible bell. It is the only sound a terminal can make.
	Beep()

	// Sync forces a full redraw on next Show().
	Sync()
}

// RenderTarget is the subset of Backend a picture paints into.
type RenderTarget interface {
	Size() (width, height int)
	SetContent(x, y int, mainc rune, comb []rune, style Style)
}

// Clipped restricts a RenderTarget to the rectangle (x, y, w, h).
// Coordinates stay absolute; writes outside the rectangle are dropped.
type Clipped struct {
	parent     RenderTarget
	x, y, w, h int
}

// Clip returns a view of parent that only accepts writes inside the rectangle.
func Clip(parent RenderTarget, x, y, w, h int) *Clipped {
	return &Clipped{parent: parent, x: x, y: y, w: w, h: h}
}

// Size returns the parent dimensions.
func (c *Clipped) Size() (width, height int) {
	return c.parent.Size()
}

// SetContent forwards writes that land inside the clip rectangle.
func (c *Clipped) SetContent(x, y int, mainc rune, comb []rune, style Style) {
	if x < c.x || x >= c.x+c.w || y < c.y || y >= c.y+c.h {
		return
	}
	c.parent.SetContent(x, y, mainc, comb, style)
}
