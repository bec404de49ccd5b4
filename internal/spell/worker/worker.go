// Package worker runs the single background goroutine that unscrambles
// misspelled tokens.
//
// The worker pulls PendingChecks from the work queue, runs the corrector and
// pushes a Result for each one onto the answer queue, in the order the checks
// were queued. It stops when the work queue is closed and drained or when its
// context is cancelled.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync/atomic"

	"github.com/dshills/ayg/internal/logging"
	"github.com/dshills/ayg/internal/spell/corrector"
	"github.com/dshills/ayg/internal/spell/queue"
)

// ErrAlreadyRunning is returned when Run is called twice.
var ErrAlreadyRunning = errors.New("worker already running")

// State is the worker lifecycle state.
type State int32

const (
	// StateIdle means Run has not been called.
	StateIdle State = iota
	// StateRunning means the worker is consuming the work queue.
	StateRunning
	// StateStopped means the worker has exited.
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Corrector finds a correction for a token.
type Corrector interface {
	Correct(ctx context.Context, token string) (string, bool, error)
}

// Worker is the correction worker.
type Worker struct {
	work      *queue.Queue[PendingCheck]
	answers   *queue.Queue[Result]
	corrector Corrector
	logger    *logging.Logger
	notify    func()

	state atomic.Int32

	processed  atomic.Uint64
	corrected  atomic.Uint64
	unresolved atomic.Uint64
	failed     atomic.Uint64
	panicked   atomic.Uint64
}

// Option configures a Worker.
type Option func(*Worker)

// WithLogger sets the worker's logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *Worker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithNotify sets a hook called after every result is queued.
// It runs on the worker goroutine and must not block.
func WithNotify(fn func()) Option {
	return func(w *Worker) {
		w.notify = fn
	}
}

// New creates a worker connecting work to answers.
func New(work *queue.Queue[PendingCheck], answers *queue.Queue[Result], c Corrector, opts ...Option) *Worker {
	w := &Worker{
		work:      work,
		answers:   answers,
		corrector: c,
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.WithComponent("worker")
	return w
}

// Run processes checks until the work queue is closed and empty or ctx is
// done. Both are normal shutdowns and return nil.
func (w *Worker) Run(ctx context.Context) error {
	if !w.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return ErrAlreadyRunning
	}
	defer w.state.Store(int32(StateStopped))

	w.logger.Debug("worker started")
	defer w.logger.Debug("worker stopped", "processed", w.processed.Load())

	for {
		check, err := w.work.Pop(ctx)
		if err != nil {
			if errors.Is(err, queue.ErrClosed) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("reading work queue: %w", err)
		}

		res := w.process(ctx, check)
		if ctx.Err() != nil {
			return nil
		}
		if err := w.answers.Push(res); err != nil {
			w.logger.Warn("dropping result", "word", check.Word, "error", err)
			continue
		}
		if w.notify != nil {
			w.notify()
		}
	}
}

// process corrects one check. Errors and panics from the corrector are
// logged and reported in the result; the worker keeps running.
func (w *Worker) process(ctx context.Context, check PendingCheck) (res Result) {
	w.processed.Add(1)
	res = Result{
		CheckID:  check.ID,
		Original: check.Word,
		Position: check.Position,
		Anchor:   check.Anchor,
	}

	defer func() {
		if r := recover(); r != nil {
			w.panicked.Add(1)
			w.failed.Add(1)
			w.logger.Error("corrector panic", "word", check.Word, "panic", r, "stack", string(debug.Stack()))
			res.Found = false
			res.Corrected = ""
			res.Err = fmt.Errorf("corrector panic: %v", r)
		}
	}()

	corrected, found, err := w.corrector.Correct(ctx, check.Word)
	switch {
	case errors.Is(err, corrector.ErrTooLong):
		w.unresolved.Add(1)
		w.logger.Debug("skipping long token", "word", check.Word)
	case err != nil:
		w.failed.Add(1)
		w.logger.Warn("correction failed", "word", check.Word, "error", err)
		res.Err = err
	case found:
		w.corrected.Add(1)
		res.Corrected = corrected
		res.Found = true
		w.logger.Debug("corrected", "word", check.Word, "correction", corrected)
	default:
		w.unresolved.Add(1)
		w.logger.Debug("no correction", "word", check.Word)
	}
	return res
}

// State returns the current lifecycle state.
func (w *Worker) State() State {
	return State(w.state.Load())
}

// Stats is a snapshot of worker counters.
type Stats struct {
	Processed  uint64
	Corrected  uint64
	Unresolved uint64
	Failed     uint64
	Panicked   uint64
	Pending    int
}

// Stats returns the current counters.
func (w *Worker) Stats() Stats {
	return Stats{
		Processed:  w.processed.Load(),
		Corrected:  w.corrected.Load(),
		Unresolved: w.unresolved.Load(),
		Failed:     w.failed.Load(),
		Panicked:   w.panicked.Load(),
		Pending:    w.work.Len(),
	}
}
