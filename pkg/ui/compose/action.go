package compose

// Action is a widget's output for one tick: what it looks like and what it
// sounds like. Visual output is materialized once per screen refresh; audio
// runs as soon as the tick is delivered.
type Action struct {
	Visual Picture
	Audio  Sound
}

// NoAction is the identity for MergeAction.
func NoAction() Action {
	return Action{}
}

// Show is an action that only draws.
func Show(p Picture) Action {
	return Action{Visual: p}
}

// Sounds is an action that only plays.
func Sounds(s Sound) Action {
	return Action{Audio: s}
}

// MergeAction combines the actions of two widgets evaluated in sequence:
// second's visual is painted over first's, and first's audio runs to
// completion before second's. The merge is associative but not commutative.
func MergeAction(first, second Action) Action {
	return Action{
		Visual: Overlay(first.Visual, second.Visual),
		Audio:  first.Audio.Then(second.Audio),
	}
}
