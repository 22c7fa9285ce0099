// Package theme provides the palettes widgets draw with.
// Dark and light palettes need true color; the ANSI palette works anywhere.
package theme

import (
	"github.com/muesli/termenv"

	"github.com/odvcencio/cadence/pkg/ui/backend"
)

// Theme defines the styles widgets use.
type Theme struct {
	Name string

	// Core palette
	Background backend.Style // Primary canvas
	Surface    backend.Style // Panels and blocks

	// Text hierarchy
	Text      backend.Style
	TextMuted backend.Style
	Title     backend.Style

	// Accent colors
	Accent     backend.Style // Primary action
	AccentGlow backend.Style // Focused action

	// Semantic colors
	Success backend.Style
	Warning backend.Style
	Error   backend.Style

	// UI elements
	Border      backend.Style
	BorderFocus backend.Style
	Button      backend.Style
	ButtonFocus backend.Style
}

func rgb(r, g, b uint8) backend.Color { return backend.ColorRGB(r, g, b) }

// Dark returns the default dark palette.
func Dark() *Theme {
	base := backend.DefaultStyle()
	return &Theme{
		Name: "dark",

		// Deep blacks with a blue undertone
		Background: base.Background(rgb(12, 12, 16)),
		Surface:    base.Background(rgb(22, 22, 28)),

		// Warm whites
		Text:      base.Foreground(rgb(240, 238, 232)),
		TextMuted: base.Foreground(rgb(100, 98, 92)),
		Title:     base.Foreground(rgb(255, 183, 77)).Bold(true),

		// Warm amber
		Accent:     base.Foreground(rgb(255, 183, 77)),
		AccentGlow: base.Foreground(rgb(255, 200, 100)).Bold(true),

		Success: base.Foreground(rgb(134, 239, 172)),
		Warning: base.Foreground(rgb(255, 138, 101)),
		Error:   base.Foreground(rgb(255, 110, 90)),

		Border:      base.Foreground(rgb(50, 50, 60)),
		BorderFocus: base.Foreground(rgb(255, 183, 77)),
		Button:      base.Foreground(rgb(240, 238, 232)).Background(rgb(32, 32, 40)),
		ButtonFocus: base.Foreground(rgb(12, 12, 16)).Background(rgb(255, 183, 77)).Bold(true),
	}
}

// Light returns the palette for light terminals.
func Light() *Theme {
	base := backend.DefaultStyle()
	return &Theme{
		Name: "light",

		Background: base.Background(rgb(250, 248, 242)),
		Surface:    base.Background(rgb(236, 233, 225)),

		Text:      base.Foreground(rgb(30, 30, 36)),
		TextMuted: base.Foreground(rgb(120, 118, 110)),
		Title:     base.Foreground(rgb(176, 104, 0)).Bold(true),

		Accent:     base.Foreground(rgb(176, 104, 0)),
		AccentGlow: base.Foreground(rgb(204, 122, 0)).Bold(true),

		Success: base.Foreground(rgb(22, 128, 61)),
		Warning: base.Foreground(rgb(194, 65, 12)),
		Error:   base.Foreground(rgb(185, 28, 28)),

		Border:      base.Foreground(rgb(200, 196, 186)),
		BorderFocus: base.Foreground(rgb(176, 104, 0)),
		Button:      base.Foreground(rgb(30, 30, 36)).Background(rgb(226, 222, 212)),
		ButtonFocus: base.Foreground(rgb(250, 248, 242)).Background(rgb(176, 104, 0)).Bold(true),
	}
}

// ANSI returns a palette limited to the 8 basic colors.
func ANSI() *Theme {
	base := backend.DefaultStyle()
	return &Theme{
		Name: "ansi",

		Background: base,
		Surface:    base,

		Text:      base,
		TextMuted: base.Dim(true),
		Title:     base.Foreground(backend.ColorYellow).Bold(true),

		Accent:     base.Foreground(backend.ColorYellow),
		AccentGlow: base.Foreground(backend.ColorYellow).Bold(true),

		Success: base.Foreground(backend.ColorGreen),
		Warning: base.Foreground(backend.ColorMagenta),
		Error:   base.Foreground(backend.ColorRed),

		Border:      base.Dim(true),
		BorderFocus: base.Foreground(backend.ColorYellow),
		Button:      base.Reverse(true),
		ButtonFocus: base.Foreground(backend.ColorYellow).Reverse(true).Bold(true),
	}
}

// Resolve picks the palette for a configured name. "auto" chooses from the
// terminal color profile and background.
func Resolve(name string, profile termenv.Profile, darkBackground bool) *Theme {
	switch name {
	case "dark":
		return Dark()
	case "light":
		return Light()
	case "ansi":
		return ANSI()
	}
	if profile != termenv.TrueColor && profile != termenv.ANSI256 {
		return ANSI()
	}
	if darkBackground {
		return Dark()
	}
	return Light()
}

// Detect resolves name against the current terminal.
func Detect(name string) *Theme {
	if name != "" && name != "auto" {
		return Resolve(name, termenv.TrueColor, true)
	}
	return Resolve(name, termenv.ColorProfile(), termenv.HasDarkBackground())
}

// Symbols provides consistent iconography.
var Symbols = struct {
	Bullet string
	Check  string
	Cross  string
	Bell   string

	// Borders (rounded)
	BorderTopLeft     string
	BorderTopRight    string
	BorderBottomLeft  string
	BorderBottomRight string
	BorderHorizontal  string
	BorderVertical    string

	Spinner []string
}{
	Bullet: "●",
	Check:  "✓",
	Cross:  "✗",
	Bell:   "♪",

	BorderTopLeft:     "╭",
	BorderTopRight:    "╮",
	BorderBottomLeft:  "╰",
	BorderBottomRight: "╯",
	BorderHorizontal:  "─",
	BorderVertical:    "│",

	Spinner: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
}
