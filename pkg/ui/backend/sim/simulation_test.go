package sim

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/cadence/pkg/ui/backend"
	"github.com/odvcencio/cadence/pkg/ui/input"
)

func newInitialized(t *testing.T, w, h int) *Backend {
	t.Helper()
	sim := New(w, h)
	require.NoError(t, sim.Init())
	t.Cleanup(sim.Fini)
	return sim
}

func TestBackend_BasicRendering(t *testing.T) {
	sim := newInitialized(t, 20, 5)

	style := backend.DefaultStyle().Foreground(backend.ColorWhite)
	for i, r := range "Hello, World!" {
		sim.SetContent(i, 0, r, nil, style)
	}
	sim.Show()

	lines := strings.Split(sim.Capture(), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "Hello, World!"))
}

func TestBackend_FindText(t *testing.T) {
	sim := newInitialized(t, 40, 10)

	for i, r := range "target" {
		sim.SetContent(5+i, 3, r, nil, backend.DefaultStyle())
	}
	sim.Show()

	x, y := sim.FindText("target")
	assert.Equal(t, 5, x)
	assert.Equal(t, 3, y)
	assert.True(t, sim.ContainsText("target"))
	assert.False(t, sim.ContainsText("missing"))
}

func TestBackend_CaptureCellStyle(t *testing.T) {
	sim := newInitialized(t, 10, 2)

	style := backend.DefaultStyle().Foreground(backend.ColorRed).Bold(true)
	sim.SetContent(1, 1, 'x', nil, style)
	sim.Show()

	r, got := sim.CaptureCell(1, 1)
	assert.Equal(t, 'x', r)
	fg, _, attrs := got.Decompose()
	assert.Equal(t, backend.ColorRed, fg)
	assert.NotZero(t, attrs&backend.AttrBold)
}

func TestBackend_BeepIsCounted(t *testing.T) {
	sim := newInitialized(t, 4, 1)
	sim.Beep()
	sim.Beep()
	assert.Equal(t, 2, sim.Beeps())
}

func TestBackend_InjectedEventsArePolled(t *testing.T) {
	sim := newInitialized(t, 20, 5)

	events := make(chan input.Event, 4)
	go func() {
		for {
			ev := sim.PollEvent()
			if ev == nil {
				return
			}
			if _, resize := ev.(input.ResizeEvent); resize {
				continue
			}
			events <- ev
		}
	}()

	sim.InjectKey(input.KeyEnter, 0)
	sim.InjectClick(3, 2)

	var got []input.Event
	timeout := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case ev := <-events:
			got = append(got, ev)
		case <-timeout:
			t.Fatalf("timed out, got %v", got)
		}
	}

	key, ok := got[0].(input.KeyEvent)
	require.True(t, ok, "first event should be a key, got %T", got[0])
	assert.Equal(t, input.KeyEnter, key.Key)

	mouse, ok := got[1].(input.MouseEvent)
	require.True(t, ok, "second event should be a mouse event, got %T", got[1])
	assert.Equal(t, 3, mouse.X)
	assert.Equal(t, 2, mouse.Y)
	assert.Equal(t, input.MouseLeft, mouse.Button)
}
