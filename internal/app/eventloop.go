package app

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime/debug"

	"github.com/dshills/ayg/internal/menu"
	"github.com/dshills/ayg/internal/renderer"
	"github.com/dshills/ayg/internal/renderer/backend"
	"github.com/dshills/ayg/internal/watcher"
)

// fileChanged is posted by the watcher goroutine.
type fileChanged struct {
	event watcher.Event
}

// eventLoop processes backend events until ErrQuit or cancellation.
// Answers from the worker are applied after every event.
func (app *Application) eventLoop(ctx context.Context) error {
	app.draw()
	for {
		ev := app.backend.PollEvent()
		if ctx.Err() != nil {
			return nil
		}
		if err := app.safeHandle(ev); err != nil {
			return err
		}
		if report := app.surface.DrainAnswers(); report.Total() > 0 {
			app.logger.Debug("applied answers",
				"applied", report.Applied, "unresolved", report.Unresolved, "stale", report.Stale)
		}
		app.draw()
	}
}

// safeHandle runs handleEvent, turning a panic into an error so the terminal
// is restored before the process exits.
func (app *Application) safeHandle(ev backend.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			app.logger.Error("panic in event handler", "panic", r)
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
		}
	}()
	return app.handleEvent(ev)
}

func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.renderer.Resize(ev.Width, ev.Height)
	case backend.EventKey:
		return app.handleKey(ev)
	case backend.EventInterrupt:
		app.handleInterrupt(ev.Data)
	}
	return nil
}

func (app *Application) handleInterrupt(data any) {
	switch v := data.(type) {
	case func():
		v()
	case fileChanged:
		app.handleFileChanged(v.event)
	}
}

// handleKey routes a key through the dialog, the prompt, the menu and
// finally the editing surface, stopping at the first that takes it.
func (app *Application) handleKey(ev backend.Event) error {
	if app.dialog != nil {
		app.dialog = nil
		return nil
	}
	if app.prompt != nil {
		return app.handlePromptKey(ev)
	}

	app.message = ""
	if action, handled := app.menu.HandleKey(ev); handled {
		return app.perform(action)
	}
	if action := app.menu.Shortcut(ev); action != menu.ActionNone {
		return app.perform(action)
	}

	app.handleEditKey(ev)
	return nil
}

func (app *Application) handleEditKey(ev backend.Event) {
	s := app.surface
	switch ev.Key {
	case backend.KeyRune:
		if ev.Rune == ' ' {
			if res, ok := s.OnSpaceKey(); ok && res.Misspelled {
				app.logger.Debug("misspelled", "word", res.Word, "queued", res.Queued)
			}
		}
		s.InsertRune(ev.Rune)
	case backend.KeyEnter:
		s.Newline()
	case backend.KeyTab:
		s.InsertRune('\t')
	case backend.KeyBackspace:
		s.Backspace()
	case backend.KeyDelete:
		s.DeleteForward()
	case backend.KeyLeft:
		s.MoveLeft()
	case backend.KeyRight:
		s.MoveRight()
	case backend.KeyUp:
		s.MoveUp(1)
	case backend.KeyDown:
		s.MoveDown(1)
	case backend.KeyHome:
		if ev.Mod&backend.ModCtrl != 0 {
			s.MoveDocumentStart()
		} else {
			s.MoveLineStart()
		}
	case backend.KeyEnd:
		if ev.Mod&backend.ModCtrl != 0 {
			s.MoveDocumentEnd()
		} else {
			s.MoveLineEnd()
		}
	case backend.KeyPageUp:
		s.MoveUp(app.pageSize())
	case backend.KeyPageDown:
		s.MoveDown(app.pageSize())
	}
}

func (app *Application) pageSize() int {
	return max(app.renderer.TextArea().Height(), 1)
}

func (app *Application) handleFileChanged(ev watcher.Event) {
	if app.surface.Path() == "" {
		return
	}
	if abs, err := filepath.Abs(app.surface.Path()); err != nil || abs != ev.Path {
		return
	}
	if ev.Op.Has(watcher.OpRemove) || ev.Op.Has(watcher.OpRename) {
		app.message = fmt.Sprintf("%s was removed from disk", app.surface.DisplayName())
		return
	}
	if app.matchesDisk(ev.Path) {
		// Our own save.
		return
	}
	app.message = fmt.Sprintf("%s changed on disk", app.surface.DisplayName())
	app.logger.Info("file changed on disk", "path", ev.Path, "op", ev.Op.String())
}

func (app *Application) draw() {
	f := renderer.Frame{
		Doc:        app.surface.Buffer(),
		TabWidth:   app.surface.TabWidth(),
		Cursor:     app.surface.CursorPoint(),
		Highlights: app.surface.Highlights(),
		Title:      app.surface.Title(),
		Name:       app.surface.DisplayName(),
		Modified:   app.surface.Modified(),
		Pending:    app.surface.PendingChecks(),
		Message:    app.message,
		Dialog:     app.dialog,
		Menu:       app.menu,
	}
	if app.prompt != nil {
		f.Prompt = &renderer.Prompt{Label: app.prompt.label, Input: app.prompt.input}
	}
	app.renderer.Render(f)
}
