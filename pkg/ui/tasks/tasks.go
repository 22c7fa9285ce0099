// Package tasks manages background work started by widgets.
//
// A widget never starts goroutines itself. It describes the work with New and
// forwards the resulting handle in its result; the driver adopts every handle
// into a Spawner, which starts it, tracks it and joins it at shutdown.
package tasks

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/odvcencio/cadence/pkg/errors"
)

// Func is the body of a background task. It should return promptly once ctx
// is cancelled.
type Func func(ctx context.Context) error

// State is the lifecycle state of a task.
type State int

const (
	StatePending State = iota
	StateRunning
	StateDone
	StateFailed
	StateCancelled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Handle refers to one background task.
type Handle struct {
	ID   string
	Name string

	fn   Func
	done chan struct{}

	mu       sync.Mutex
	state    State
	err      error
	cancel   context.CancelFunc
	started  time.Time
	finished time.Time
}

// New describes a task without starting it.
func New(name string, fn Func) *Handle {
	return &Handle{
		ID:   ulid.Make().String(),
		Name: name,
		fn:   fn,
		done: make(chan struct{}),
	}
}

// State returns the current lifecycle state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Err returns the task's error once it has finished.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Done is closed when the task has finished.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Started reports whether the task was ever started.
func (h *Handle) Started() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.started.IsZero()
}

// Runtime returns how long the task ran, or has been running.
func (h *Handle) Runtime() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch {
	case h.started.IsZero():
		return 0
	case h.finished.IsZero():
		return time.Since(h.started)
	default:
		return h.finished.Sub(h.started)
	}
}

// Cancel asks a running task to stop. Cancelling a pending task marks it
// cancelled so it never starts.
func (h *Handle) Cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch h.state {
	case StatePending:
		h.state = StateCancelled
		h.err = context.Canceled
		close(h.done)
	case StateRunning:
		if h.cancel != nil {
			h.cancel()
		}
	}
}

// Wait blocks until the task finishes or ctx is done.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// start moves a pending handle to running. It reports false if the handle
// was already started or cancelled.
func (h *Handle) start(parent context.Context) (context.Context, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StatePending {
		return nil, false
	}
	ctx, cancel := context.WithCancel(parent)
	h.cancel = cancel
	h.state = StateRunning
	h.started = time.Now()
	return ctx, true
}

func (h *Handle) finish(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel()
	}
	h.finished = time.Now()
	h.err = err
	switch {
	case err == nil:
		h.state = StateDone
	case stderrors.Is(err, context.Canceled):
		h.state = StateCancelled
	default:
		h.state = StateFailed
	}
	close(h.done)
}

// Hooks observe task lifecycle. Either field may be nil.
type Hooks struct {
	OnStart func(h *Handle)
	OnExit  func(h *Handle, err error)
}

// Spawner owns running tasks.
type Spawner struct {
	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group
	hooks  Hooks

	mu      sync.Mutex
	handles map[string]*Handle
	closed  bool
}

// NewSpawner creates a spawner whose tasks are cancelled when ctx is.
func NewSpawner(ctx context.Context, hooks Hooks) *Spawner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spawner{
		ctx:     ctx,
		cancel:  cancel,
		hooks:   hooks,
		handles: make(map[string]*Handle),
	}
}

// Spawn describes and starts a task in one step.
func (s *Spawner) Spawn(name string, fn Func) (*Handle, error) {
	h := New(name, fn)
	if err := s.Adopt(h); err != nil {
		return nil, err
	}
	return h, nil
}

// Adopt starts a pending handle. Adopting the same handle twice is a no-op.
func (s *Spawner) Adopt(h *Handle) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.New(errors.ErrCodeTask, "spawner is shut down").
			WithContext("task", h.Name)
	}
	if _, seen := s.handles[h.ID]; seen {
		s.mu.Unlock()
		return nil
	}
	ctx, ok := h.start(s.ctx)
	if !ok {
		s.mu.Unlock()
		return nil
	}
	s.handles[h.ID] = h
	s.mu.Unlock()

	if s.hooks.OnStart != nil {
		s.hooks.OnStart(h)
	}
	s.group.Go(func() error {
		err := h.fn(ctx)
		h.finish(err)
		s.mu.Lock()
		delete(s.handles, h.ID)
		s.mu.Unlock()
		if s.hooks.OnExit != nil {
			s.hooks.OnExit(h, err)
		}
		if err != nil && !stderrors.Is(err, context.Canceled) {
			return errors.Wrap(err, errors.ErrCodeTask, "background task failed").
				WithContext("task", h.Name).
				WithContext("id", h.ID)
		}
		return nil
	})
	return nil
}

// Active returns the number of running tasks.
func (s *Spawner) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

// Shutdown cancels every task and waits for them to exit, or for ctx to be
// done. It returns the first task failure, ignoring cancellations.
func (s *Spawner) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()

	done := make(chan error, 1)
	go func() { done <- s.group.Wait() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), errors.ErrCodeTask, "timed out joining background tasks")
	}
}
