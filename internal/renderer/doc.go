// Package renderer draws the editor onto a backend.
//
// The screen is laid out top to bottom as:
//
//	┌─────────────────────────────────────────┐
//	│ File  Edit                    menu bar  │
//	├─────────────────────────────────────────┤
//	│                                         │
//	│ text area (misspellings highlighted)    │
//	│                                         │
//	├─────────────────────────────────────────┤
//	│ name  Ln 1, Col 1  pending 0   status   │
//	│ message or prompt                       │
//	└─────────────────────────────────────────┘
//
// Drop-down menus and message boxes are drawn over the text area.
//
// The renderer is stateless apart from its scroll position: every call to
// Render draws a complete Frame.
package renderer
