// Package app wires the editor surface, the spell-check worker, the renderer
// and the file watcher together and runs the interactive event loop.
package app

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/ayg/internal/config"
	"github.com/dshills/ayg/internal/editor"
	"github.com/dshills/ayg/internal/logging"
	"github.com/dshills/ayg/internal/menu"
	"github.com/dshills/ayg/internal/renderer"
	"github.com/dshills/ayg/internal/renderer/backend"
	"github.com/dshills/ayg/internal/renderer/core"
	"github.com/dshills/ayg/internal/spell/corrector"
	"github.com/dshills/ayg/internal/spell/dictionary"
	"github.com/dshills/ayg/internal/spell/queue"
	"github.com/dshills/ayg/internal/spell/worker"
	"github.com/dshills/ayg/internal/watcher"
)

// Application owns every component of a running editor session.
//
// All document state is touched only from the goroutine running the event
// loop. The spell worker and the file watcher talk to it through queues and
// backend interrupts.
type Application struct {
	cfg     *config.Config
	logger  *logging.Logger
	backend backend.Backend

	renderer *renderer.Renderer
	menu     *menu.Bar
	surface  *editor.Surface

	work    *queue.Queue[worker.PendingCheck]
	answers *queue.Queue[worker.Result]
	worker  *worker.Worker
	watcher *watcher.Watcher

	prompt  *prompt
	dialog  *renderer.Dialog
	message string

	running atomic.Bool
	opts    Options
}

// Options configures the application.
type Options struct {
	// Config holds the validated settings. Defaults are used when nil.
	Config *config.Config

	// Dictionary is the loaded word list. Required.
	Dictionary *dictionary.Dictionary

	// Backend is the terminal to draw on. Required.
	Backend backend.Backend

	// Logger receives diagnostics. Defaults to a discarding logger.
	Logger *logging.Logger

	// Files are opened on startup. Only the first one is used.
	Files []string
}

// New creates an Application. Nothing is started until Run is called.
func New(opts Options) (*Application, error) {
	if opts.Dictionary == nil {
		return nil, NewComponentError("dictionary", "init", errors.New("no dictionary"))
	}
	if opts.Backend == nil {
		return nil, NewComponentError("backend", "init", errors.New("no backend"))
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	app := &Application{
		cfg:     cfg,
		logger:  logger.WithComponent("app"),
		backend: opts.Backend,
		menu:    menu.NewBar(),
		work:    queue.New[worker.PendingCheck](),
		answers: queue.New[worker.Result](),
		opts:    opts,
	}

	app.surface = editor.New(opts.Dictionary, app.work, app.answers,
		editor.WithLogger(logger),
		editor.WithRelocateMode(editor.RelocateMode(cfg.Spell.Relocate)),
		editor.WithTabWidth(cfg.Editor.TabWidth),
	)

	c := corrector.New(opts.Dictionary, corrector.WithMaxLength(cfg.Spell.MaxWordLength))
	app.worker = worker.New(app.work, app.answers, c,
		worker.WithLogger(logger),
		worker.WithNotify(func() { app.backend.Interrupt(nil) }),
	)

	w, err := watcher.New(watcher.WithLogger(logger))
	if err != nil {
		// The editor works without change notices.
		app.logger.Warn("file watcher unavailable", "error", err)
	} else {
		app.watcher = w
	}

	return app, nil
}

// Surface returns the editor surface.
func (app *Application) Surface() *editor.Surface {
	return app.surface
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Post schedules fn to run on the event loop goroutine.
func (app *Application) Post(fn func()) {
	app.backend.Interrupt(fn)
}

// Run starts the worker and the watcher, then runs the event loop until the
// user exits or ctx is cancelled. Pending spell checks are abandoned on exit.
// An Application can be run once.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return NewComponentError("backend", "init", err)
	}
	defer app.backend.Shutdown()

	highlight, err := core.ParseColor(app.cfg.Spell.HighlightColor)
	if err != nil {
		app.logger.Warn("bad highlight colour, using red", "color", app.cfg.Spell.HighlightColor, "error", err)
		highlight = core.ColorRed
	}
	opts := renderer.DefaultOptions()
	opts.HighlightColor = highlight
	app.renderer = renderer.New(app.backend, opts)

	if len(app.opts.Files) > 0 {
		app.openFile(app.opts.Files[0])
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.worker.Run(gctx)
	})

	if app.watcher != nil {
		g.Go(func() error {
			return app.watcher.Run(gctx, func(ev watcher.Event) {
				app.backend.Interrupt(fileChanged{event: ev})
			})
		})
	}

	g.Go(func() error {
		app.tick(gctx, app.cfg.Spell.DrainInterval.Std())
		return nil
	})

	g.Go(func() error {
		defer cancel()
		defer app.work.Close()
		err := app.eventLoop(gctx)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		return err
	})

	err = g.Wait()
	if app.watcher != nil {
		if cerr := app.watcher.Close(); cerr != nil {
			app.logger.Warn("closing watcher", "error", cerr)
		}
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	app.logger.Info("stopped", "processed", app.worker.Stats().Processed)
	return err
}

// tick wakes the event loop periodically so answers are applied even when
// no key is pressed. On cancellation it posts one last wakeup so a blocked
// PollEvent returns.
func (app *Application) tick(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			app.backend.Interrupt(nil)
			return
		case <-ticker.C:
			if app.answers.Len() > 0 {
				app.backend.Interrupt(nil)
			}
		}
	}
}
