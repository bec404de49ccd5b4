package backend

import (
	"strings"
	"sync"

	"github.com/dshills/ayg/internal/renderer/core"
)

// eventBuffer is how many posted events a NullBackend holds before it
// starts dropping them.
const eventBuffer = 100

// NullBackend is an in-memory screen. It is safe for a test goroutine to
// inspect it while the event loop draws.
type NullBackend struct {
	mu     sync.Mutex
	width  int
	height int
	grid   []core.Cell // row-major, width*height
	cursor struct {
		x, y    int
		visible bool
	}
	title string

	events   chan Event
	done     chan struct{}
	stopOnce sync.Once
}

// NewNullBackend returns a width by height in-memory screen.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}
	b.reset(width, height)
	return b
}

func (b *NullBackend) reset(width, height int) {
	b.width, b.height = width, height
	b.grid = make([]core.Cell, width*height)
	for i := range b.grid {
		b.grid[i] = core.EmptyCell()
	}
}

// index returns the grid index of (x, y), or -1 when it is off the grid.
func (b *NullBackend) index(x, y int) int {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return -1
	}
	return y*b.width + x
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset(b.width, b.height)
	return nil
}

func (b *NullBackend) Shutdown() {
	b.stopOnce.Do(func() { close(b.done) })
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.index(x, y); i >= 0 {
		b.grid[i] = cell
	}
}

func (b *NullBackend) GetCell(x, y int) core.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.index(x, y); i >= 0 {
		return b.grid[i]
	}
	return core.EmptyCell()
}

func (b *NullBackend) Fill(rect core.ScreenRect, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for y := rect.Top; y < rect.Bottom; y++ {
		for x := rect.Left; x < rect.Right; x++ {
			if i := b.index(x, y); i >= 0 {
				b.grid[i] = cell
			}
		}
	}
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	blank := core.EmptyCell()
	for i := range b.grid {
		b.grid[i] = blank
	}
}

func (b *NullBackend) Show() {}

func (b *NullBackend) ShowCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor.x, b.cursor.y, b.cursor.visible = x, y, true
}

func (b *NullBackend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor.visible = false
}

func (b *NullBackend) SetTitle(title string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.title = title
}

func (b *NullBackend) PollEvent() Event {
	select {
	case ev := <-b.events:
		return ev
	case <-b.done:
		return Event{Type: EventNone}
	}
}

// PostEvent queues ev as if the terminal had produced it. It is dropped
// when the queue is full.
func (b *NullBackend) PostEvent(ev Event) {
	select {
	case b.events <- ev:
	default:
	}
}

func (b *NullBackend) Interrupt(data any) {
	b.PostEvent(Event{Type: EventInterrupt, Data: data})
}

func (b *NullBackend) Beep() {}

// CursorPosition returns where the cursor was last shown and whether it is
// visible now.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor.x, b.cursor.y, b.cursor.visible
}

// Title returns the last window title set.
func (b *NullBackend) Title() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.title
}

// Row returns the text of row y. Continuation cells of wide runes are
// skipped.
func (b *NullBackend) Row(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.grid[y*b.width : (y+1)*b.width] {
		if c.Width > 0 {
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}

// Resize changes the screen size, blanking it, and queues the resize event
// a real terminal would send.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.reset(width, height)
	b.mu.Unlock()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
