// Package backend hides the terminal library from the renderer and the
// event loop.
//
// Terminal wraps a tcell screen. NullBackend keeps the screen in memory and
// is driven by tests.
package backend

import "github.com/dshills/ayg/internal/renderer/core"

// EventType says which fields of an Event are meaningful.
type EventType int

const (
	// EventNone is returned after Shutdown.
	EventNone EventType = iota
	EventKey
	EventResize
	// EventInterrupt is a wakeup posted from another goroutine.
	EventInterrupt
)

// Event is one input from the terminal or one posted wakeup.
type Event struct {
	Type EventType

	Key  Key     // EventKey
	Rune rune    // EventKey with Key == KeyRune
	Mod  ModMask // EventKey

	Width, Height int // EventResize

	Data any // EventInterrupt
}

// Key names the keys the editor reacts to. Anything else arrives as
// KeyRune or is dropped.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF10
	KeyCtrlK
	KeyCtrlN
	KeyCtrlO
	KeyCtrlQ
	KeyCtrlS
)

// ModMask is a set of held modifier keys.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether mod is held.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Backend is a grid of cells plus an input stream.
//
// Drawing methods are only called from the event loop goroutine.
// Interrupt may be called from anywhere.
type Backend interface {
	// Init takes over the terminal. Nothing else may be called before it.
	Init() error

	// Shutdown gives the terminal back. Calling it twice is harmless.
	Shutdown()

	Size() (width, height int)

	// SetCell writes one cell; coordinates off the grid are ignored.
	SetCell(x, y int, cell core.Cell)
	GetCell(x, y int) core.Cell
	Fill(rect core.ScreenRect, cell core.Cell)
	Clear()

	// Show makes everything drawn since the last Show visible.
	Show()

	ShowCursor(x, y int)
	HideCursor()

	// SetTitle sets the window title where the terminal supports it.
	SetTitle(title string)

	// PollEvent blocks for the next event. After Shutdown it returns an
	// EventNone event.
	PollEvent() Event

	// Interrupt posts an EventInterrupt carrying data without blocking.
	Interrupt(data any)

	Beep()
}
