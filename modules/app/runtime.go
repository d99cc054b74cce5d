package app

import (
	"context"
	"sync"
	"time"

	"github.com/go-monolith/mono/pkg/types"

	"github.com/example/rentlink/modules/assistant"
	"github.com/example/rentlink/modules/composer"
)

// DefaultGenerateTimeout bounds a single description request.
const DefaultGenerateTimeout = 30 * time.Second

// Observer is told about every state change. It runs on the engine goroutine
// and must not call back into the Runtime.
type Observer func(snap Snapshot, events []any)

// RuntimeOptions configures a Runtime.
type RuntimeOptions struct {
	Describer       assistant.DescriptionGenerator
	Interpreter     assistant.SearchInterpreter
	GenerateTimeout time.Duration
	Logger          types.Logger
}

type result struct {
	outcome  Outcome
	snapshot Snapshot
	err      error
}

type command struct {
	fn    func(*Engine) (Outcome, error)
	reply chan result
}

// Runtime serializes intents, timers and provider replies onto a single
// goroutine that owns the Engine.
type Runtime struct {
	engine *Engine
	opts   RuntimeOptions
	logger types.Logger

	cmds      chan command
	done      chan struct{}
	observers []Observer

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	lastVersion uint64
}

// NewRuntime wraps engine. Observers must be added before Start.
func NewRuntime(engine *Engine, opts RuntimeOptions) *Runtime {
	if opts.Describer == nil {
		opts.Describer = assistant.Unavailable{}
	}
	if opts.Interpreter == nil {
		opts.Interpreter = assistant.Unavailable{}
	}
	if opts.GenerateTimeout <= 0 {
		opts.GenerateTimeout = DefaultGenerateTimeout
	}
	return &Runtime{
		engine:      engine,
		opts:        opts,
		logger:      opts.Logger,
		cmds:        make(chan command),
		done:        make(chan struct{}),
		lastVersion: engine.Version(),
	}
}

// Observe registers fn for state changes.
func (r *Runtime) Observe(fn Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, fn)
}

// Start launches the engine goroutine. Calling it twice is a no-op.
func (r *Runtime) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.started = true
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	go r.run(ctx)
}

// Stop closes the engine, cancels outstanding provider calls and waits for
// the goroutine to exit.
func (r *Runtime) Stop(ctx context.Context) error {
	r.mu.Lock()
	started, cancel := r.started, r.cancel
	r.mu.Unlock()
	if !started {
		return nil
	}
	cancel()

	finished := make(chan struct{})
	go func() {
		<-r.done
		r.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do runs fn on the engine goroutine and returns its outcome together with
// the snapshot taken right after.
func (r *Runtime) Do(ctx context.Context, fn func(*Engine) Outcome) (Outcome, Snapshot, error) {
	return r.exec(ctx, func(e *Engine) (Outcome, error) { return fn(e), nil })
}

// Dispatch applies a wire intent.
func (r *Runtime) Dispatch(ctx context.Context, req IntentRequest) (Outcome, Snapshot, error) {
	return r.exec(ctx, func(e *Engine) (Outcome, error) { return Apply(e, req) })
}

// Snapshot returns the current state.
func (r *Runtime) Snapshot(ctx context.Context) (Snapshot, error) {
	_, snap, err := r.exec(ctx, func(*Engine) (Outcome, error) { return Outcome{Accepted: true}, nil })
	return snap, err
}

// InterpretSearch asks the interpreter for a label. It does not touch the
// engine, so it never blocks intents.
func (r *Runtime) InterpretSearch(ctx context.Context, query string) string {
	return assistant.Label(ctx, r.opts.Interpreter, query)
}

func (r *Runtime) exec(ctx context.Context, fn func(*Engine) (Outcome, error)) (Outcome, Snapshot, error) {
	r.mu.Lock()
	started := r.started
	r.mu.Unlock()
	if !started {
		return Outcome{}, Snapshot{}, ErrNotStarted
	}

	cmd := command{fn: fn, reply: make(chan result, 1)}
	select {
	case r.cmds <- cmd:
	case <-r.done:
		return Outcome{}, Snapshot{}, ErrStopped
	case <-ctx.Done():
		return Outcome{}, Snapshot{}, ctx.Err()
	}

	select {
	case res := <-cmd.reply:
		return res.outcome, res.snapshot, res.err
	case <-ctx.Done():
		return Outcome{}, Snapshot{}, ctx.Err()
	}
}

func (r *Runtime) run(ctx context.Context) {
	defer close(r.done)

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		var fire <-chan time.Time
		if next, ok := r.engine.NextDeadline(); ok {
			timer.Reset(max(next.Sub(r.engine.now()), 0))
			fire = timer.C
		} else {
			timer.Stop()
		}

		select {
		case <-ctx.Done():
			r.engine.Close()
			r.notify()
			r.logger.Info("App runtime stopped")
			return

		case cmd := <-r.cmds:
			out, err := cmd.fn(r.engine)
			if req, ok := out.Generation(); ok {
				r.generate(ctx, req)
			}
			snap := r.notify()
			cmd.reply <- result{outcome: out, snapshot: snap, err: err}

		case <-fire:
			if r.engine.Advance(r.engine.now()) > 0 {
				r.notify()
			}
		}
	}
}

// generate calls the describer off the engine goroutine and feeds the result
// back as a command.
func (r *Runtime) generate(ctx context.Context, req composer.Request) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		callCtx, cancel := context.WithTimeout(ctx, r.opts.GenerateTimeout)
		text, err := r.opts.Describer.GenerateDescription(callCtx, req.Input)
		cancel()

		cmd := command{
			fn: func(e *Engine) (Outcome, error) {
				return e.CompleteGeneration(req.DraftID, text, err), nil
			},
			reply: make(chan result, 1),
		}
		select {
		case r.cmds <- cmd:
		case <-ctx.Done():
			r.logger.Debug("Dropped description result after shutdown", "draft", req.DraftID)
		}
	}()
}

// notify snapshots the engine and hands changes to observers.
func (r *Runtime) notify() Snapshot {
	snap := r.engine.Snapshot()
	evs := r.engine.DrainEvents()
	if snap.Version == r.lastVersion && len(evs) == 0 {
		return snap
	}
	r.lastVersion = snap.Version

	r.mu.Lock()
	observers := append([]Observer(nil), r.observers...)
	r.mu.Unlock()
	for _, obs := range observers {
		obs(snap, evs)
	}
	return snap
}
