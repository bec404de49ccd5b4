// Package watcher reports changes made by other programs to the file being
// edited.
//
// The parent directory is watched rather than the file itself so that
// editors which save by writing a temporary file and renaming it over the
// original are still noticed. Rapid bursts of events are coalesced.
package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/ayg/internal/logging"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed  = errors.New("watcher is closed")
	ErrAlreadyRunning = errors.New("watcher is already running")
)

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates the file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates the file was written to.
	OpWrite
	// OpRemove indicates the file was removed.
	OpRemove
	// OpRename indicates the file was renamed away.
	OpRename
)

// String returns a human-readable representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Event is a coalesced change to the watched file.
type Event struct {
	Path string
	Op   Op
	Time time.Time
}

// Handler receives change events on the watcher goroutine.
type Handler func(Event)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long to wait for further events before reporting.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the watcher logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher follows at most one file at a time.
type Watcher struct {
	mu     sync.Mutex
	fsw    *fsnotify.Watcher
	dir    string
	target string
	closed bool

	running  atomic.Bool
	debounce time.Duration
	logger   *logging.Logger

	totalEvents atomic.Int64
	totalErrors atomic.Int64
}

// New creates a watcher. Nothing is watched until Watch is called.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		debounce: 150 * time.Millisecond,
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.WithComponent("watcher")
	return w, nil
}

// Watch switches to path. An empty path stops watching.
func (w *Watcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	target := ""
	dir := ""
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		target = abs
		dir = filepath.Dir(abs)
	}

	if dir != w.dir {
		if w.dir != "" {
			_ = w.fsw.Remove(w.dir) // the directory may already be gone
		}
		if dir != "" {
			if err := w.fsw.Add(dir); err != nil {
				w.dir, w.target = "", ""
				return err
			}
		}
		w.dir = dir
	}
	w.target = target
	return nil
}

// Target returns the absolute path being watched, or "".
func (w *Watcher) Target() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.target
}

// Run delivers events for the watched file to handler until ctx is done
// or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, handler Handler) error {
	if !w.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer w.running.Store(false)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending Event
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			op := convertOp(ev.Op)
			if op == 0 || !w.matches(ev.Name) {
				continue
			}
			pending.Path = w.Target()
			pending.Op |= op
			pending.Time = time.Now()
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.totalEvents.Add(1)
			w.logger.Debug("file changed", "path", pending.Path, "op", pending.Op.String())
			handler(pending)
			pending = Event{}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.totalErrors.Add(1)
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) matches(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.target == "" {
		return false
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == w.target
}

// Stats returns the number of events delivered and errors seen.
func (w *Watcher) Stats() (events, errs int64) {
	return w.totalEvents.Load(), w.totalErrors.Load()
}

// Close stops the watcher. Run returns once its channels close.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()
	return w.fsw.Close()
}

// convertOp converts fsnotify.Op to watcher.Op.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
