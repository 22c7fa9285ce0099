// Package tcell provides a Backend implementation using tcell.
package tcell

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/cadence/pkg/ui/backend"
	"github.com/odvcencio/cadence/pkg/ui/input"
)

// Backend implements backend.Backend using tcell.
type Backend struct {
	screen tcell.Screen

	inPaste     bool
	pasteBuffer strings.Builder
}

// New creates a new tcell backend on the controlling terminal.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Backend{screen: screen}, nil
}

// NewWithScreen creates a backend with an existing tcell screen (for testing).
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return err
	}
	b.screen.EnableMouse()
	b.screen.EnablePaste()
	return nil
}

// Fini cleans up the backend.
func (b *Backend) Fini() {
	b.screen.Fini()
}

// Size returns the terminal dimensions.
func (b *Backend) Size() (width, height int) {
	return b.screen.Size()
}

// SetContent sets a cell at position (x, y).
func (b *Backend) SetContent(x, y int, mainc rune, comb []rune, style backend.Style) {
	b.screen.SetContent(x, y, mainc, comb, convertStyle(style))
}

// Show synchronizes the buffer to the terminal.
func (b *Backend) Show() {
	b.screen.Show()
}

// Clear clears the screen.
func (b *Backend) Clear() {
	b.screen.Clear()
}

// HideCursor hides the cursor.
func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

// PollEvent blocks until an event is available.
// Key events between paste markers are folded into one PasteEvent.
func (b *Backend) PollEvent() input.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch e := ev.(type) {
		case *tcell.EventPaste:
			if e.Start() {
				b.inPaste = true
				b.pasteBuffer.Reset()
				continue
			}
			if e.End() {
				b.inPaste = false
				text := b.pasteBuffer.String()
				b.pasteBuffer.Reset()
				if text != "" {
					return input.PasteEvent{Text: text}
				}
				continue
			}

		case *tcell.EventKey:
			if b.inPaste {
				switch e.Key() {
				case tcell.KeyRune:
					b.pasteBuffer.WriteRune(e.Rune())
				case tcell.KeyEnter:
					b.pasteBuffer.WriteRune('\n')
				case tcell.KeyTab:
					b.pasteBuffer.WriteRune('\t')
				}
				continue
			}
		}

		if converted := convertEvent(ev); converted != nil {
			return converted
		}
	}
}

// PostEvent injects an event into the queue.
func (b *Backend) PostEvent(ev input.Event) error {
	if tev := reverseConvertEvent(ev); tev != nil {
		return b.screen.PostEvent(tev)
	}
	return nil
}

// Beep emits an audible bell.
func (b *Backend) Beep() {
	_ = b.screen.Beep()
}

// Sync forces a full redraw.
func (b *Backend) Sync() {
	b.screen.Sync()
}

// convertStyle converts backend.Style to tcell.Style.
func convertStyle(s backend.Style) tcell.Style {
	fg, bg, attrs := s.Decompose()
	return tcell.StyleDefault.
		Foreground(convertColor(fg)).
		Background(convertColor(bg)).
		Bold(attrs&backend.AttrBold != 0).
		Italic(attrs&backend.AttrItalic != 0).
		Underline(attrs&backend.AttrUnderline != 0).
		Dim(attrs&backend.AttrDim != 0).
		Reverse(attrs&backend.AttrReverse != 0)
}

// convertColor converts backend.Color to tcell.Color.
func convertColor(c backend.Color) tcell.Color {
	if c == backend.ColorDefault {
		return tcell.ColorDefault
	}
	if c.IsRGB() {
		r, g, b := c.RGB()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcell.PaletteColor(int(c))
}

// ConvertTcellStyle converts a tcell.Style back to backend.Style.
func ConvertTcellStyle(ts tcell.Style) backend.Style {
	fg, bg, attrs := ts.Decompose()
	return backend.DefaultStyle().
		Foreground(convertTcellColor(fg)).
		Background(convertTcellColor(bg)).
		Bold(attrs&tcell.AttrBold != 0).
		Italic(attrs&tcell.AttrItalic != 0).
		Underline(attrs&tcell.AttrUnderline != 0).
		Dim(attrs&tcell.AttrDim != 0).
		Reverse(attrs&tcell.AttrReverse != 0)
}

func convertTcellColor(tc tcell.Color) backend.Color {
	if tc == tcell.ColorDefault {
		return backend.ColorDefault
	}
	if tc&tcell.ColorIsRGB != 0 {
		r, g, b := tc.RGB()
		return backend.ColorRGB(uint8(r), uint8(g), uint8(b))
	}
	return backend.Color(tc & 0xFF)
}

// convertEvent converts a tcell event to input.Event.
func convertEvent(ev tcell.Event) input.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return input.KeyEvent{
			Key:   convertKey(e.Key()),
			Rune:  e.Rune(),
			Alt:   e.Modifiers()&tcell.ModAlt != 0,
			Ctrl:  e.Modifiers()&tcell.ModCtrl != 0,
			Shift: e.Modifiers()&tcell.ModShift != 0,
		}
	case *tcell.EventResize:
		w, h := e.Size()
		return input.ResizeEvent{Width: w, Height: h}
	case *tcell.EventMouse:
		x, y := e.Position()
		mods := e.Modifiers()
		return input.MouseEvent{
			X:      x,
			Y:      y,
			Button: convertMouseButton(e.Buttons()),
			Action: convertMouseAction(e.Buttons()),
			Alt:    mods&tcell.ModAlt != 0,
			Ctrl:   mods&tcell.ModCtrl != 0,
			Shift:  mods&tcell.ModShift != 0,
		}
	default:
		return nil
	}
}

var keyMap = map[tcell.Key]input.Key{
	tcell.KeyRune:       input.KeyRune,
	tcell.KeyUp:         input.KeyUp,
	tcell.KeyDown:       input.KeyDown,
	tcell.KeyRight:      input.KeyRight,
	tcell.KeyLeft:       input.KeyLeft,
	tcell.KeyPgUp:       input.KeyPageUp,
	tcell.KeyPgDn:       input.KeyPageDown,
	tcell.KeyHome:       input.KeyHome,
	tcell.KeyEnd:        input.KeyEnd,
	tcell.KeyDelete:     input.KeyDelete,
	tcell.KeyBackspace:  input.KeyBackspace,
	tcell.KeyBackspace2: input.KeyBackspace,
	tcell.KeyTab:        input.KeyTab,
	tcell.KeyBacktab:    input.KeyBacktab,
	tcell.KeyEnter:      input.KeyEnter,
	tcell.KeyEscape:     input.KeyEscape,
	tcell.KeyCtrlC:      input.KeyCtrlC,
}

func convertKey(k tcell.Key) input.Key {
	if key, ok := keyMap[k]; ok {
		return key
	}
	return input.KeyNone
}

func convertMouseButton(buttons tcell.ButtonMask) input.MouseButton {
	switch {
	case buttons&tcell.WheelUp != 0:
		return input.MouseWheelUp
	case buttons&tcell.WheelDown != 0:
		return input.MouseWheelDown
	case buttons&tcell.Button1 != 0:
		return input.MouseLeft
	case buttons&tcell.Button2 != 0:
		return input.MouseMiddle
	case buttons&tcell.Button3 != 0:
		return input.MouseRight
	default:
		return input.MouseNone
	}
}

func convertMouseAction(buttons tcell.ButtonMask) input.MouseAction {
	if buttons == tcell.ButtonNone {
		return input.MouseRelease
	}
	return input.MousePress
}

// reverseConvertEvent converts input.Event to tcell.Event for PostEvent.
func reverseConvertEvent(ev input.Event) tcell.Event {
	switch e := ev.(type) {
	case input.ResizeEvent:
		return tcell.NewEventResize(e.Width, e.Height)
	case input.KeyEvent:
		var mods tcell.ModMask
		if e.Alt {
			mods |= tcell.ModAlt
		}
		if e.Ctrl {
			mods |= tcell.ModCtrl
		}
		if e.Shift {
			mods |= tcell.ModShift
		}
		for tk, k := range keyMap {
			if k == e.Key && tk != tcell.KeyBackspace2 {
				return tcell.NewEventKey(tk, e.Rune, mods)
			}
		}
		return nil
	case input.MouseEvent:
		var btn tcell.ButtonMask
		if e.Action == input.MousePress {
			switch e.Button {
			case input.MouseLeft:
				btn = tcell.Button1
			case input.MouseMiddle:
				btn = tcell.Button2
			case input.MouseRight:
				btn = tcell.Button3
			case input.MouseWheelUp:
				btn = tcell.WheelUp
			case input.MouseWheelDown:
				btn = tcell.WheelDown
			}
		}
		return tcell.NewEventMouse(e.X, e.Y, btn, tcell.ModNone)
	default:
		return nil
	}
}

var _ backend.Backend = (*Backend)(nil)
