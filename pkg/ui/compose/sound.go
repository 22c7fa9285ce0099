package compose

import "context"

// Sound is an immediate side-effecting procedure: a sequence of steps run one
// after another when the tick's action is delivered. Unlike a Picture it is
// never postponed or skipped, whatever the dirty flag says. The zero value
// is silence.
type Sound struct {
	steps []func(context.Context) error
}

// Play builds a sound from a single step.
func Play(step func(context.Context) error) Sound {
	if step == nil {
		return Sound{}
	}
	return Sound{steps: []func(context.Context) error{step}}
}

// Then runs s to completion, then next.
func (s Sound) Then(next Sound) Sound {
	switch {
	case len(next.steps) == 0:
		return s
	case len(s.steps) == 0:
		return next
	}
	steps := make([]func(context.Context) error, 0, len(s.steps)+len(next.steps))
	steps = append(steps, s.steps...)
	steps = append(steps, next.steps...)
	return Sound{steps: steps}
}

// Silent reports whether the sound has no steps.
func (s Sound) Silent() bool {
	return len(s.steps) == 0
}

// Len returns the number of steps.
func (s Sound) Len() int {
	return len(s.steps)
}

// Run executes every step in order and stops at the first failure.
func (s Sound) Run(ctx context.Context) error {
	for _, step := range s.steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}
