// Package input defines the values a widget tree is evaluated against.
//
// One Input is delivered per tick and broadcast unchanged to every widget
// evaluated in that tick. The set of variants is closed: only the types in
// this package satisfy Input.
package input

import (
	"fmt"
	"time"
)

// Input is the per-tick event. The variants are UserEvent, TimerTick,
// DeviceEvent and NoEvent.
type Input interface {
	isInput()
}

// UserEvent wraps an interactive event from the terminal.
type UserEvent struct {
	Event Event
}

func (UserEvent) isInput() {}

// TimerTick is produced by timers, either the driver's own tick rate or a
// background timer task injecting through the render context.
type TimerTick struct {
	Time time.Time
}

func (TimerTick) isInput() {}

// DeviceEvent carries a raw message from an external device such as a MIDI
// port, a message bus subject, or a watched file.
type DeviceEvent struct {
	Device  string
	Message []byte
}

func (DeviceEvent) isInput() {}

// NoEvent evaluates the tree without any event, e.g. for the first frame.
type NoEvent struct{}

func (NoEvent) isInput() {}

// Kind returns a short name for the variant, used in logs and traces.
func Kind(in Input) string {
	switch e := in.(type) {
	case UserEvent:
		return "user:" + eventKind(e.Event)
	case TimerTick:
		return "timer"
	case DeviceEvent:
		return "device"
	case NoEvent:
		return "none"
	case nil:
		return "none"
	default:
		panic(fmt.Sprintf("input: unknown variant %T", in))
	}
}

func eventKind(ev Event) string {
	switch ev.(type) {
	case KeyEvent:
		return "key"
	case MouseEvent:
		return "mouse"
	case PasteEvent:
		return "paste"
	case ResizeEvent:
		return "resize"
	default:
		return "unknown"
	}
}

// KeyOf returns the key event carried by in, if any.
func KeyOf(in Input) (KeyEvent, bool) {
	ue, ok := in.(UserEvent)
	if !ok {
		return KeyEvent{}, false
	}
	k, ok := ue.Event.(KeyEvent)
	return k, ok
}

// Mouse returns the mouse event carried by in, if any.
func Mouse(in Input) (MouseEvent, bool) {
	ue, ok := in.(UserEvent)
	if !ok {
		return MouseEvent{}, false
	}
	m, ok := ue.Event.(MouseEvent)
	return m, ok
}
