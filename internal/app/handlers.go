package app

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/ayg/internal/menu"
	"github.com/dshills/ayg/internal/renderer"
	"github.com/dshills/ayg/internal/renderer/backend"
)

// prompt is a one-line input on the bottom row. submit runs on Enter with
// the trimmed input; an empty input cancels.
type prompt struct {
	label  string
	input  string
	submit func(string)
}

func (app *Application) ask(label, initial string, submit func(string)) {
	app.prompt = &prompt{label: label, input: initial, submit: submit}
}

func (app *Application) handlePromptKey(ev backend.Event) error {
	p := app.prompt
	switch ev.Key {
	case backend.KeyEscape:
		app.prompt = nil
	case backend.KeyEnter:
		app.prompt = nil
		if input := strings.TrimSpace(p.input); input != "" {
			p.submit(input)
		}
	case backend.KeyBackspace:
		if r := []rune(p.input); len(r) > 0 {
			p.input = string(r[:len(r)-1])
		}
	case backend.KeyRune:
		p.input += string(ev.Rune)
	}
	return nil
}

func (app *Application) showDialog(title, text string) {
	app.dialog = &renderer.Dialog{Title: title, Text: text}
}

// perform runs a menu command.
func (app *Application) perform(action menu.Action) error {
	app.logger.Debug("action", "action", action.String())
	switch action {
	case menu.ActionNew:
		app.newDocument()
	case menu.ActionOpen:
		app.ask("Open file: ", "", app.openFile)
	case menu.ActionSave:
		app.ask("Save as: ", app.surface.Path(), app.saveFile)
	case menu.ActionExit:
		return ErrQuit
	case menu.ActionCheckText:
		app.checkText()
	}
	return nil
}

func (app *Application) newDocument() {
	app.surface.NewDocument()
	app.renderer.Viewport().Reset()
	app.watch("")
	app.message = "New document"
}

func (app *Application) openFile(path string) {
	path = withExtension(path, app.cfg.Editor.DefaultExtension)
	if err := app.surface.OpenFile(path); err != nil {
		app.logger.Warn("open failed", "path", path, "error", err)
		app.showDialog("Error", NewOperationError("open", path, unwrapPathError(err)).Error())
		return
	}
	app.renderer.Viewport().Reset()
	app.watch(path)
	app.message = fmt.Sprintf("Opened %s", filepath.Base(path))
}

func (app *Application) saveFile(path string) {
	path = withExtension(path, app.cfg.Editor.DefaultExtension)
	if err := app.surface.SaveFile(path); err != nil {
		app.logger.Warn("save failed", "path", path, "error", err)
		app.showDialog("Error", NewOperationError("save", path, unwrapPathError(err)).Error())
		return
	}
	app.watch(path)
	app.message = fmt.Sprintf("Saved %s", filepath.Base(path))
}

func (app *Application) checkText() {
	incorrect := app.surface.CheckWholeDocument()
	if len(incorrect) == 0 {
		app.showDialog("Check Text", "All words are correct!")
		return
	}
	app.showDialog("Check Text", "Incorrect words found: "+strings.Join(incorrect, ", "))
}

func (app *Application) watch(path string) {
	if app.watcher == nil {
		return
	}
	if err := app.watcher.Watch(path); err != nil {
		app.logger.Warn("cannot watch file", "path", path, "error", err)
	}
}

// matchesDisk reports whether the file at path holds exactly what saving the
// document would write.
func (app *Application) matchesDisk(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.Equal(data, []byte(app.surface.Buffer().Serialize()))
}

// withExtension appends ext when path has no extension of its own.
func withExtension(path, ext string) string {
	if ext == "" || filepath.Ext(path) != "" {
		return path
	}
	return path + ext
}

// unwrapPathError strips the op and path that the dialog already shows.
func unwrapPathError(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
