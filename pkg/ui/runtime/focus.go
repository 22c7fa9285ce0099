package runtime

import "github.com/odvcencio/cadence/pkg/ui/compose"

// FocusCursor remembers which focusable widget of a tree has focus between
// ticks. Each tick starts from the token it hands out: a request for the
// focused id, or no focus at all.
type FocusCursor struct {
	widgets compose.FocusMap
	current compose.ID // NoOwner if none
}

// NewFocusCursor creates an unfocused cursor over the focusable widgets of a
// plan.
func NewFocusCursor(widgets compose.FocusMap) *FocusCursor {
	return &FocusCursor{widgets: widgets, current: compose.NoOwner}
}

// Token is the focus token the next tick starts with.
func (f *FocusCursor) Token() compose.Token {
	if f.current == compose.NoOwner {
		return compose.Unfocused()
	}
	return compose.Request(f.current)
}

// Current returns the name of the focused widget, or "" if none.
func (f *FocusCursor) Current() string {
	return f.widgets.Name(f.current)
}

// Focus moves focus to the widget registered under name.
// Returns true if focus changed.
func (f *FocusCursor) Focus(name string) bool {
	id, ok := f.widgets.Lookup(name)
	if !ok {
		return false
	}
	return f.focusIndex(id)
}

// FocusNext moves focus to the next widget, wrapping around to the first.
// Returns true if focus changed.
func (f *FocusCursor) FocusNext() bool {
	n := compose.ID(f.widgets.Len())
	if n == 0 {
		return false
	}
	if f.current == compose.NoOwner {
		return f.focusIndex(0)
	}
	return f.focusIndex((f.current + 1) % n)
}

// FocusPrev moves focus to the previous widget, wrapping around to the last.
// Returns true if focus changed.
func (f *FocusCursor) FocusPrev() bool {
	n := compose.ID(f.widgets.Len())
	if n == 0 {
		return false
	}
	if f.current == compose.NoOwner {
		return f.focusIndex(n - 1)
	}
	return f.focusIndex((f.current - 1 + n) % n)
}

// ClearFocus removes focus. Returns true if something was focused.
func (f *FocusCursor) ClearFocus() bool {
	return f.focusIndex(compose.NoOwner)
}

// Count returns the number of focusable widgets.
func (f *FocusCursor) Count() int {
	return f.widgets.Len()
}

func (f *FocusCursor) focusIndex(id compose.ID) bool {
	if id == f.current {
		return false
	}
	f.current = id
	return true
}
