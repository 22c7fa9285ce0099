package runtime

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/odvcencio/cadence/pkg/errors"
	"github.com/odvcencio/cadence/pkg/observability"
	"github.com/odvcencio/cadence/pkg/ui/backend"
	"github.com/odvcencio/cadence/pkg/ui/compose"
	"github.com/odvcencio/cadence/pkg/ui/input"
	"github.com/odvcencio/cadence/pkg/ui/tasks"
)

const (
	defaultQueueSize   = 256
	defaultJoinTimeout = 2 * time.Second
)

// AppConfig configures a runtime App.
type AppConfig[T any] struct {
	Backend backend.Backend
	Root    compose.Widget[T]
	Flow    compose.Flow
	Logger  *observability.Logger

	// TickRate feeds a TimerTick every interval. Zero disables timer ticks.
	TickRate time.Duration
	// RefreshRate is the minimum interval between two painted frames. Zero
	// paints after every tick that changed the picture.
	RefreshRate time.Duration
	// QueueSize bounds the input queue. Inputs posted to a full queue are
	// dropped.
	QueueSize int
	// MaxTicks stops the app after that many evaluated ticks. Zero runs
	// until the context is cancelled or the user quits.
	MaxTicks int
	// JoinTimeout bounds how long shutdown waits for background tasks.
	JoinTimeout time.Duration
	// OnResult observes every tick that completed without error.
	OnResult func(compose.Result[T])
}

// App drives a widget tree against a terminal backend. It feeds one input per
// tick into the root widget, runs the audio of the result immediately, keeps
// the visual pending until the next refresh, and adopts spawned tasks.
type App[T any] struct {
	cfg     AppConfig[T]
	backend backend.Backend
	root    compose.Widget[T]
	flow    compose.Flow
	logger  *observability.Logger
	plan    compose.Plan
	queue   chan input.Input

	buffer  *Buffer
	limiter *rate.Limiter
	spawner *tasks.Spawner

	mu       sync.Mutex
	focus    *FocusCursor
	forced   bool
	last     T
	seq      uint64
	painted  int
	stopping bool

	pending compose.Picture
	stale   bool
}

// NewApp analyzes the root widget and creates an App from config.
func NewApp[T any](cfg AppConfig[T]) (*App[T], error) {
	if cfg.Backend == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "backend is required")
	}
	if cfg.Root == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "root widget is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = observability.Discard()
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.JoinTimeout <= 0 {
		cfg.JoinTimeout = defaultJoinTimeout
	}

	limit := rate.Inf
	if cfg.RefreshRate > 0 {
		limit = rate.Every(cfg.RefreshRate)
	}
	plan := compose.Analyze(cfg.Root, cfg.Flow)
	return &App[T]{
		cfg:     cfg,
		backend: cfg.Backend,
		root:    cfg.Root,
		flow:    cfg.Flow,
		logger:  cfg.Logger,
		plan:    plan,
		queue:   make(chan input.Input, cfg.QueueSize),
		buffer:  NewBuffer(0, 0),
		limiter: rate.NewLimiter(limit, 1),
		focus:   NewFocusCursor(plan.Focus),
	}, nil
}

// Plan returns the static analysis of the root widget.
func (a *App[T]) Plan() compose.Plan {
	return a.plan
}

// Post enqueues an input for a later tick. It is safe to call from any
// goroutine and is the injection sink handed to widgets.
func (a *App[T]) Post(in input.Input) {
	select {
	case a.queue <- in:
	default:
		a.logger.Warn("input queue full, dropping input", "input", input.Kind(in))
	}
}

// Focus moves focus to the widget registered under name. The change takes
// effect on the next tick.
func (a *App[T]) Focus(name string) bool {
	a.mu.Lock()
	changed := a.focus.Focus(name)
	if changed {
		a.forced = true
	}
	a.mu.Unlock()
	if changed {
		a.Post(input.NoEvent{})
	}
	return changed
}

// Focused returns the name of the focused widget, or "" if none.
func (a *App[T]) Focused() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.focus.Current()
}

// Last returns the value produced by the most recent successful tick.
func (a *App[T]) Last() T {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

// Ticks returns the number of ticks evaluated so far.
func (a *App[T]) Ticks() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.seq
}

// Frames returns the number of frames painted so far.
func (a *App[T]) Frames() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.painted
}

// Frame returns the last painted frame as text.
func (a *App[T]) Frame() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.buffer.String()
}

// Run starts the event loop. It returns when ctx is cancelled, the user
// quits with Ctrl-C, MaxTicks is reached, or a widget violates the
// composition contract. Background tasks are joined before it returns.
func (a *App[T]) Run(ctx context.Context) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.backend.Init(); err != nil {
		return errors.Wrap(err, errors.ErrCodeBackend, "init backend")
	}
	defer a.backend.Fini()

	a.backend.HideCursor()
	w, h := a.backend.Size()
	a.mu.Lock()
	a.buffer.Resize(w, h)
	a.forced = true
	a.mu.Unlock()

	a.spawner = tasks.NewSpawner(ctx, tasks.Hooks{
		OnStart: func(h *tasks.Handle) {
			a.logger.TaskStarted(h.ID, h.Name)
		},
		OnExit: func(h *tasks.Handle, err error) {
			a.logger.TaskExited(h.ID, h.Name, err)
			observability.SetTasksActive(a.spawner.Active())
		},
	})
	defer func() {
		joinCtx, cancel := context.WithTimeout(context.Background(), a.cfg.JoinTimeout)
		defer cancel()
		if joinErr := a.spawner.Shutdown(joinCtx); joinErr != nil {
			a.logger.Warn("background tasks did not exit cleanly", "error", joinErr.Error())
			if err == nil {
				err = joinErr
			}
		}
		observability.SetTasksActive(0)
	}()

	go a.pollEvents()

	var ticks <-chan time.Time
	if a.cfg.TickRate > 0 {
		ticker := time.NewTicker(a.cfg.TickRate)
		defer ticker.Stop()
		ticks = ticker.C
	}

	refresh := time.NewTimer(time.Hour)
	refresh.Stop()
	defer refresh.Stop()

	in := input.Input(input.NoEvent{})
	for {
		if err := a.tick(ctx, in); err != nil {
			a.paint(true)
			return err
		}
		if a.done() {
			a.paint(true)
			return nil
		}
		if delay := a.refresh(); delay > 0 {
			refresh.Reset(delay)
		}

		for next := false; !next; {
			select {
			case <-ctx.Done():
				a.paint(true)
				if stderrors.Is(ctx.Err(), context.Canceled) {
					return nil
				}
				return ctx.Err()
			case in = <-a.queue:
				next = true
			case now := <-ticks:
				in = input.TimerTick{Time: now}
				next = true
			case <-refresh.C:
				if delay := a.refresh(); delay > 0 {
					refresh.Reset(delay)
				}
			}
		}
	}
}

func (a *App[T]) done() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopping {
		return true
	}
	return a.cfg.MaxTicks > 0 && a.seq >= uint64(a.cfg.MaxTicks)
}

// tick evaluates the root widget against one input. Effect failures drop the
// tick and are reported through logs and metrics; contract violations are
// returned.
func (a *App[T]) tick(ctx context.Context, in input.Input) error {
	start := time.Now()
	kind := input.Kind(in)

	a.mu.Lock()
	a.seq++
	seq := a.seq
	a.mu.Unlock()

	ctx, span := observability.StartSpan(ctx, "cadence.tick", trace.WithAttributes(
		observability.AttrTickSeq.Int64(int64(seq)),
		observability.AttrTickInput.String(kind),
	))
	defer span.End()
	log := a.logger.WithContext(ctx).WithTick(seq)

	a.mu.Lock()
	a.handleControl(in)
	tok := a.focus.Token()
	bounds := a.buffer.Bounds()
	a.mu.Unlock()

	res, err := a.root.Run(compose.NewContext(a.flow, bounds, a.Post), tok, in)
	if err != nil {
		return a.fail(ctx, log, kind, err, res.Tasks)
	}

	settled, dropped := compose.Settle(res.Focus)
	if dropped {
		if req, ok := tok.Signal.(compose.RequestFocus); ok {
			log.FocusDropped(int(req.Target))
			observability.AddEvent(ctx, "focus.dropped", observability.AttrFocusTarget.Int(int(req.Target)))
		}
	}

	if err := res.Action.Audio.Run(ctx); err != nil {
		return a.fail(ctx, log, kind, err, res.Tasks)
	}

	for _, h := range res.Tasks {
		if err := a.spawner.Adopt(h); err != nil {
			return a.fail(ctx, log, kind, err, res.Tasks)
		}
	}
	observability.SetTasksActive(a.spawner.Active())

	a.mu.Lock()
	if res.Dirty || a.forced {
		a.pending = res.Action.Visual
		a.stale = true
		a.forced = false
	}
	a.last = res.Value
	a.mu.Unlock()

	observability.SetAttributes(ctx,
		observability.AttrTickDirty.Bool(res.Dirty),
		observability.AttrTickFocus.String(compose.SignalName(settled.Signal)),
		observability.AttrTickTasks.Int(len(res.Tasks)),
	)
	observability.RecordTick(kind, time.Since(start))
	if a.cfg.OnResult != nil {
		a.cfg.OnResult(res)
	}
	return nil
}

// handleControl applies the inputs the driver itself reacts to. The input is
// still broadcast to the widget tree afterwards. Callers hold a.mu.
func (a *App[T]) handleControl(in input.Input) {
	if ue, ok := in.(input.UserEvent); ok {
		if rs, ok := ue.Event.(input.ResizeEvent); ok {
			a.buffer.Resize(rs.Width, rs.Height)
			a.backend.Sync()
			a.forced = true
			return
		}
	}
	k, ok := input.KeyOf(in)
	if !ok {
		return
	}
	switch k.Key {
	case input.KeyTab:
		a.forced = a.focus.FocusNext() || a.forced
	case input.KeyBacktab:
		a.forced = a.focus.FocusPrev() || a.forced
	case input.KeyCtrlC:
		a.stopping = true
	}
}

// fail reports a failed tick. Pending tasks of the dropped tick are
// cancelled. Contract violations are returned so Run stops.
func (a *App[T]) fail(ctx context.Context, log *observability.Logger, kind string, err error, spawned []*tasks.Handle) error {
	for _, h := range spawned {
		if h.State() == tasks.StatePending {
			h.Cancel()
		}
	}
	code := errors.GetCode(err)
	if code == errors.ErrCodeInternal {
		err = errors.Wrap(err, errors.ErrCodeEffect, "tick effect failed").WithContext("input", kind)
		code = errors.ErrCodeEffect
	}
	observability.RecordError(ctx, err)
	observability.RecordTickError(string(code))
	log.TickFailed(kind, err)
	if code == errors.ErrCodeContract {
		return err
	}
	return nil
}

// refresh paints the pending picture if the refresh rate allows it. It
// returns how long to wait before trying again, or zero if nothing is left
// to paint.
func (a *App[T]) refresh() time.Duration {
	a.mu.Lock()
	stale := a.stale
	a.mu.Unlock()
	if !stale {
		return 0
	}
	r := a.limiter.Reserve()
	if delay := r.Delay(); delay > 0 {
		r.Cancel()
		return delay
	}
	a.paint(false)
	return 0
}

// paint materializes the pending picture into the buffer and flushes the
// changed cells to the backend. With force set, the frame is painted even if
// nothing changed since the last one.
func (a *App[T]) paint(force bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.stale && !force {
		return
	}
	if err := a.buffer.Paint(a.pending); err != nil {
		a.logger.Error("paint failed", "error", err.Error())
		observability.RecordTickError(string(errors.GetCode(err)))
	}
	a.stale = false
	if a.buffer.Flush(a.backend) > 0 || force {
		a.backend.Show()
	}
	a.painted++
	observability.RecordFrame()
}

func (a *App[T]) pollEvents() {
	for {
		ev := a.backend.PollEvent()
		if ev == nil {
			return
		}
		a.Post(input.UserEvent{Event: ev})
	}
}
