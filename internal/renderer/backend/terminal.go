package backend

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/ayg/internal/renderer/core"
)

// Terminal draws on a tcell screen.
//
// Drawing is left unsynchronized: only the event loop draws. PollEvent and
// Interrupt go through tcell's own goroutine-safe event queue.
type Terminal struct {
	screen tcell.Screen
}

// NewTerminal opens the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps screen, usually a tcell.SimulationScreen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Screen exposes the tcell screen.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.SetStyle(tcell.StyleDefault)
	t.screen.SetCursorStyle(tcell.CursorStyleSteadyBar)
	return nil
}

func (t *Terminal) Shutdown()           { t.screen.Fini() }
func (t *Terminal) Size() (int, int)    { return t.screen.Size() }
func (t *Terminal) Clear()              { t.screen.Clear() }
func (t *Terminal) Show()               { t.screen.Show() }
func (t *Terminal) ShowCursor(x, y int) { t.screen.ShowCursor(x, y) }
func (t *Terminal) HideCursor()         { t.screen.HideCursor() }
func (t *Terminal) SetTitle(s string)   { t.screen.SetTitle(s) }

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	t.screen.SetContent(x, y, cell.Rune, nil, toTcellStyle(cell.Style))
}

func (t *Terminal) GetCell(x, y int) core.Cell {
	r, _, style, width := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return core.Cell{Rune: r, Width: width, Style: fromTcellStyle(style)}
}

func (t *Terminal) Fill(rect core.ScreenRect, cell core.Cell) {
	style := toTcellStyle(cell.Style)
	w, h := t.screen.Size()
	for y := max(rect.Top, 0); y < min(rect.Bottom, h); y++ {
		for x := max(rect.Left, 0); x < min(rect.Right, w); x++ {
			t.screen.SetContent(x, y, cell.Rune, nil, style)
		}
	}
}

// PollEvent skips events the editor has no use for, such as mouse and
// paste events.
func (t *Terminal) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return Event{Type: EventNone}
		}
		if out, ok := fromTcellEvent(ev); ok {
			return out
		}
	}
}

func (t *Terminal) Interrupt(data any) {
	// A full queue already holds a wakeup.
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(data))
}

func (t *Terminal) Beep() {
	_ = t.screen.Beep()
}

// attrPairs maps our attributes to tcell's, in both directions.
var attrPairs = []struct {
	ours   core.Attribute
	theirs tcell.AttrMask
}{
	{core.AttrBold, tcell.AttrBold},
	{core.AttrDim, tcell.AttrDim},
	{core.AttrUnderline, tcell.AttrUnderline},
	{core.AttrReverse, tcell.AttrReverse},
}

func toTcellColor(c core.Color) tcell.Color {
	if c.IsDefault() {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func fromTcellColor(c tcell.Color) core.Color {
	if c == tcell.ColorDefault {
		return core.ColorDefault
	}
	r, g, b := c.RGB()
	return core.ColorFromRGB(uint8(r), uint8(g), uint8(b))
}

func toTcellStyle(s core.Style) tcell.Style {
	var attrs tcell.AttrMask
	for _, p := range attrPairs {
		if s.Attributes.Has(p.ours) {
			attrs |= p.theirs
		}
	}
	return tcell.StyleDefault.
		Foreground(toTcellColor(s.Foreground)).
		Background(toTcellColor(s.Background)).
		Attributes(attrs)
}

func fromTcellStyle(ts tcell.Style) core.Style {
	fg, bg, attrs := ts.Decompose()
	s := core.Style{Foreground: fromTcellColor(fg), Background: fromTcellColor(bg)}
	for _, p := range attrPairs {
		if attrs&p.theirs != 0 {
			s.Attributes |= p.ours
		}
	}
	return s
}

func fromTcellEvent(ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		key, ok := keyMap[e.Key()]
		if !ok {
			return Event{}, false
		}
		return Event{Type: EventKey, Key: key, Rune: e.Rune(), Mod: fromTcellMod(e.Modifiers())}, true
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}, true
	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt, Data: e.Data()}, true
	}
	return Event{}, false
}

// keyMap lists the tcell keys the editor handles. Ctrl-H and Backspace2
// both arrive as KeyBackspace.
var keyMap = map[tcell.Key]Key{
	tcell.KeyRune:       KeyRune,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyF10:        KeyF10,
	tcell.KeyCtrlK:      KeyCtrlK,
	tcell.KeyCtrlN:      KeyCtrlN,
	tcell.KeyCtrlO:      KeyCtrlO,
	tcell.KeyCtrlQ:      KeyCtrlQ,
	tcell.KeyCtrlS:      KeyCtrlS,
}

func fromTcellMod(m tcell.ModMask) ModMask {
	var out ModMask
	if m&tcell.ModShift != 0 {
		out |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= ModAlt
	}
	return out
}
