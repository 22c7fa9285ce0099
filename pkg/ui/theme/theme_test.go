package theme

import (
	"testing"

	"github.com/muesli/termenv"

	"github.com/odvcencio/cadence/pkg/ui/backend"
)

func checkStyles(t *testing.T, th *Theme) {
	t.Helper()
	styles := map[string]backend.Style{
		"Text":        th.Text,
		"TextMuted":   th.TextMuted,
		"Title":       th.Title,
		"Accent":      th.Accent,
		"AccentGlow":  th.AccentGlow,
		"Success":     th.Success,
		"Warning":     th.Warning,
		"Error":       th.Error,
		"Border":      th.Border,
		"BorderFocus": th.BorderFocus,
		"Button":      th.Button,
		"ButtonFocus": th.ButtonFocus,
	}
	for name, s := range styles {
		if s == (backend.Style{}) {
			t.Errorf("%s: %s style not set", th.Name, name)
		}
	}
	if th.Button == th.ButtonFocus {
		t.Errorf("%s: focused button must look different", th.Name)
	}
}

func TestPalettes(t *testing.T) {
	for _, th := range []*Theme{Dark(), Light(), ANSI()} {
		checkStyles(t, th)
	}
}

func TestTrueColorPalettesUseRGB(t *testing.T) {
	for _, th := range []*Theme{Dark(), Light()} {
		fg, _, _ := th.Accent.Decompose()
		if !fg.IsRGB() {
			t.Errorf("%s accent should be a true color", th.Name)
		}
	}
	fg, _, _ := ANSI().Accent.Decompose()
	if fg.IsRGB() {
		t.Errorf("ansi accent should be a palette color")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		profile termenv.Profile
		dark    bool
		want    string
	}{
		{"auto", termenv.TrueColor, true, "dark"},
		{"auto", termenv.ANSI256, false, "light"},
		{"auto", termenv.ANSI, true, "ansi"},
		{"auto", termenv.Ascii, false, "ansi"},
		{"light", termenv.Ascii, true, "light"},
		{"ansi", termenv.TrueColor, true, "ansi"},
	}
	for _, tt := range tests {
		if got := Resolve(tt.name, tt.profile, tt.dark).Name; got != tt.want {
			t.Errorf("Resolve(%q, %v, %v) = %s, want %s", tt.name, tt.profile, tt.dark, got, tt.want)
		}
	}
}

func TestDetectExplicit(t *testing.T) {
	if got := Detect("dark").Name; got != "dark" {
		t.Fatalf("Detect(dark) = %s", got)
	}
}

func TestSymbols(t *testing.T) {
	if len(Symbols.Spinner) == 0 {
		t.Fatal("spinner frames missing")
	}
	if Symbols.BorderTopLeft == "" || Symbols.BorderVertical == "" {
		t.Fatal("border symbols missing")
	}
}
