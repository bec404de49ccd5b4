// Package menu models the menu bar: the File and Edit menus, their
// keyboard shortcuts and keyboard navigation while the bar is open.
//
// The bar holds no references to the editor. Activating an item yields an
// Action that the application carries out.
package menu

import "github.com/dshills/ayg/internal/renderer/backend"

// Action identifies a menu command.
type Action uint8

const (
	// ActionNone means no command was selected.
	ActionNone Action = iota

	// ActionNew discards the document and starts an empty one.
	ActionNew

	// ActionOpen prompts for a path and opens it.
	ActionOpen

	// ActionSave prompts for a path and saves to it.
	ActionSave

	// ActionExit quits the editor.
	ActionExit

	// ActionCheckText reports every word missing from the dictionary.
	ActionCheckText
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionNew:
		return "new"
	case ActionOpen:
		return "open"
	case ActionSave:
		return "save"
	case ActionExit:
		return "exit"
	case ActionCheckText:
		return "check-text"
	default:
		return "unknown"
	}
}

// Item is one entry of a menu.
type Item struct {
	Label    string
	Shortcut string
	Action   Action
	key      backend.Key
}

// Menu is a titled list of items.
type Menu struct {
	Title string
	Items []Item
}

// Bar is the menu bar and its navigation state.
type Bar struct {
	menus   []Menu
	open    bool
	menuIdx int
	itemIdx int
}

// NewBar returns the editor's menu bar: File (New, Open, Save, Exit) and
// Edit (Check Text).
func NewBar() *Bar {
	return &Bar{
		menus: []Menu{
			{
				Title: "File",
				Items: []Item{
					{Label: "New", Shortcut: "Ctrl-N", Action: ActionNew, key: backend.KeyCtrlN},
					{Label: "Open", Shortcut: "Ctrl-O", Action: ActionOpen, key: backend.KeyCtrlO},
					{Label: "Save", Shortcut: "Ctrl-S", Action: ActionSave, key: backend.KeyCtrlS},
					{Label: "Exit", Shortcut: "Ctrl-Q", Action: ActionExit, key: backend.KeyCtrlQ},
				},
			},
			{
				Title: "Edit",
				Items: []Item{
					{Label: "Check Text", Shortcut: "Ctrl-K", Action: ActionCheckText, key: backend.KeyCtrlK},
				},
			},
		},
	}
}

// Menus returns the menus in display order.
func (b *Bar) Menus() []Menu {
	return b.menus
}

// IsOpen reports whether a menu is dropped down.
func (b *Bar) IsOpen() bool {
	return b.open
}

// Selected returns the highlighted menu and item indices.
func (b *Bar) Selected() (menuIdx, itemIdx int) {
	return b.menuIdx, b.itemIdx
}

// Open drops down the first menu.
func (b *Bar) Open() {
	b.open = true
	b.menuIdx = 0
	b.itemIdx = 0
}

// Close closes the bar.
func (b *Bar) Close() {
	b.open = false
}

// Shortcut returns the action bound to a key event, whether or not the bar
// is open.
func (b *Bar) Shortcut(ev backend.Event) Action {
	if ev.Type != backend.EventKey {
		return ActionNone
	}
	for _, m := range b.menus {
		for _, it := range m.Items {
			if it.key == ev.Key {
				return it.Action
			}
		}
	}
	return ActionNone
}

// HandleKey processes a key event.
//
// F10 toggles the bar. While it is open the arrow keys move the selection,
// Enter activates the selected item and closes the bar, and Esc closes it.
// handled is false when the event should go to the editor instead.
func (b *Bar) HandleKey(ev backend.Event) (action Action, handled bool) {
	if ev.Type != backend.EventKey {
		return ActionNone, false
	}
	if ev.Key == backend.KeyF10 {
		if b.open {
			b.Close()
		} else {
			b.Open()
		}
		return ActionNone, true
	}
	if !b.open {
		return ActionNone, false
	}

	switch ev.Key {
	case backend.KeyEscape:
		b.Close()
	case backend.KeyLeft:
		b.menuIdx = (b.menuIdx + len(b.menus) - 1) % len(b.menus)
		b.itemIdx = 0
	case backend.KeyRight:
		b.menuIdx = (b.menuIdx + 1) % len(b.menus)
		b.itemIdx = 0
	case backend.KeyUp:
		n := len(b.menus[b.menuIdx].Items)
		b.itemIdx = (b.itemIdx + n - 1) % n
	case backend.KeyDown:
		n := len(b.menus[b.menuIdx].Items)
		b.itemIdx = (b.itemIdx + 1) % n
	case backend.KeyEnter:
		action = b.menus[b.menuIdx].Items[b.itemIdx].Action
		b.Close()
	default:
		// Shortcuts still work with the bar open; other keys are swallowed.
		if action = b.Shortcut(ev); action != ActionNone {
			b.Close()
		}
	}
	return action, true
}
