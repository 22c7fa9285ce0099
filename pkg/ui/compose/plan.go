package compose

// Plan is the result of the static pass over a widget tree: its root request
// and the focusable widgets it contains.
type Plan struct {
	Flow    Flow
	Request LayoutRequest
	Focus   FocusMap
}

// Analyze runs the static pass for w packed along flow. It only consults
// shapes, so it has no effects and does not depend on any input.
func Analyze[T any](w Widget[T], flow Flow) Plan {
	s := w.Shape(flow)
	return Plan{Flow: flow, Request: s.Request, Focus: newFocusMap(s.Focus)}
}

// FocusMap maps the names of focusable widgets to the ids they are assigned
// in evaluation order. When a name repeats, the first occurrence wins.
type FocusMap struct {
	names []string
	ids   map[string]ID
}

func newFocusMap(names []string) FocusMap {
	m := FocusMap{names: append([]string(nil), names...), ids: make(map[string]ID, len(names))}
	for i, n := range names {
		if _, dup := m.ids[n]; !dup {
			m.ids[n] = ID(i)
		}
	}
	return m
}

// Len returns the number of focusable widgets.
func (m FocusMap) Len() int { return len(m.names) }

// Lookup returns the id of the focusable widget called name.
func (m FocusMap) Lookup(name string) (ID, bool) {
	id, ok := m.ids[name]
	return id, ok
}

// Name returns the name of the focusable widget id, or "" if out of range.
func (m FocusMap) Name(id ID) string {
	if id < 0 || int(id) >= len(m.names) {
		return ""
	}
	return m.names[id]
}

// Names returns every focusable name in id order.
func (m FocusMap) Names() []string {
	return append([]string(nil), m.names...)
}
