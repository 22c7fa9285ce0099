// Package sim provides a simulation backend for testing and headless runs.
package sim

import (
	"strings"
	"sync"

	tcellv2 "github.com/gdamore/tcell/v2"

	"github.com/odvcencio/cadence/pkg/ui/backend"
	"github.com/odvcencio/cadence/pkg/ui/backend/tcell"
	"github.com/odvcencio/cadence/pkg/ui/input"
)

// Backend is a testable backend using tcell's simulation screen.
type Backend struct {
	*tcell.Backend
	screen tcellv2.SimulationScreen
	mu     sync.Mutex
	beeps  int
	width  int
	height int
}

// New creates a new simulation backend with the given dimensions.
func New(width, height int) *Backend {
	screen := tcellv2.NewSimulationScreen("")
	screen.SetSize(width, height)

	return &Backend{
		Backend: tcell.NewWithScreen(screen),
		screen:  screen,
		width:   width,
		height:  height,
	}
}

// Init initializes the simulation screen at the size given to New.
func (s *Backend) Init() error {
	if err := s.Backend.Init(); err != nil {
		return err
	}
	s.mu.Lock()
	s.screen.SetSize(s.width, s.height)
	s.mu.Unlock()
	return nil
}

// Beep counts bells instead of ringing one.
func (s *Backend) Beep() {
	s.mu.Lock()
	s.beeps++
	s.mu.Unlock()
}

// Beeps returns how many bells have been requested.
func (s *Backend) Beeps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beeps
}

// InjectKey injects a key event into the simulation.
func (s *Backend) InjectKey(key input.Key, r rune) {
	_ = s.PostEvent(input.KeyEvent{Key: key, Rune: r})
}

// InjectKeyString injects a string as a sequence of rune key events.
func (s *Backend) InjectKeyString(str string) {
	for _, r := range str {
		s.InjectKey(input.KeyRune, r)
	}
}

// InjectClick injects a left-button press at (x, y).
func (s *Backend) InjectClick(x, y int) {
	_ = s.PostEvent(input.MouseEvent{X: x, Y: y, Button: input.MouseLeft, Action: input.MousePress})
}

// InjectResize resizes the screen and posts the matching event.
func (s *Backend) InjectResize(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.screen.SetSize(width, height)
	s.mu.Unlock()
	_ = s.PostEvent(input.ResizeEvent{Width: width, Height: height})
}

// Capture captures the current screen content as a string.
func (s *Backend) Capture() string {
	w, h := s.Size()
	return s.CaptureRegion(0, 0, w, h)
}

// CaptureRegion captures a rectangular region of the screen.
func (s *Backend) CaptureRegion(x, y, w, h int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]string, 0, h)
	for row := y; row < y+h; row++ {
		var line strings.Builder
		for col := x; col < x+w; col++ {
			mainc, comb, _, _ := s.screen.GetContent(col, row)
			if mainc == 0 {
				mainc = ' '
			}
			line.WriteRune(mainc)
			for _, c := range comb {
				line.WriteRune(c)
			}
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// CaptureCell returns the content and style of a single cell.
func (s *Backend) CaptureCell(x, y int) (rune, backend.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, _, style, _ := s.screen.GetContent(x, y)
	return m, tcell.ConvertTcellStyle(style)
}

// FindText searches for text on the screen and returns its position.
func (s *Backend) FindText(text string) (x, y int) {
	for row, line := range strings.Split(s.Capture(), "\n") {
		if col := strings.Index(line, text); col >= 0 {
			return col, row
		}
	}
	return -1, -1
}

// ContainsText returns true if the text appears anywhere on screen.
func (s *Backend) ContainsText(text string) bool {
	x, _ := s.FindText(text)
	return x >= 0
}

var _ backend.Backend = (*Backend)(nil)
