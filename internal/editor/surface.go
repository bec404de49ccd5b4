// Package editor implements the editing surface: the document buffer, the
// cursor, misspelling highlights and the spell-check hand-off to the
// correction worker.
//
// A Surface is owned by the UI goroutine. Its only links to the worker are
// the work queue it pushes to and the answer queue it drains.
package editor

import (
	"path/filepath"

	"github.com/dshills/ayg/internal/engine/buffer"
	"github.com/dshills/ayg/internal/engine/tracking"
	"github.com/dshills/ayg/internal/logging"
	"github.com/dshills/ayg/internal/spell/queue"
	"github.com/dshills/ayg/internal/spell/worker"
)

// AppName is shown in the window title.
const AppName = "ayg-text-editor"

// Dictionary is the lookup used for synchronous checks.
type Dictionary interface {
	Contains(word string) bool
}

// RelocateMode selects how a late correction finds its token again.
type RelocateMode string

const (
	// RelocateSearch searches backward from the stored position for the
	// original text. Concurrent edits can make it hit the wrong occurrence.
	RelocateSearch RelocateMode = "search"

	// RelocateAnchor follows a span tracked since the check was queued and
	// drops the correction if that span no longer holds the original text.
	RelocateAnchor RelocateMode = "anchor"
)

// Surface is the editor surface.
type Surface struct {
	dict    Dictionary
	work    *queue.Queue[worker.PendingCheck]
	answers *queue.Queue[worker.Result]
	logger  *logging.Logger

	buf      *buffer.Buffer
	spans    *tracking.SpanSet
	cursor   buffer.ByteOffset
	goalCol  int
	path     string
	modified bool

	relocate RelocateMode
	tabWidth int
}

// Option configures a Surface.
type Option func(*Surface)

// WithLogger sets the surface logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Surface) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRelocateMode sets how corrections are relocated.
func WithRelocateMode(mode RelocateMode) Option {
	return func(s *Surface) {
		if mode == RelocateSearch || mode == RelocateAnchor {
			s.relocate = mode
		}
	}
}

// WithTabWidth sets the tab width reported to the renderer.
func WithTabWidth(width int) Option {
	return func(s *Surface) {
		if width > 0 {
			s.tabWidth = width
		}
	}
}

// New creates an empty surface.
func New(dict Dictionary, work *queue.Queue[worker.PendingCheck], answers *queue.Queue[worker.Result], opts ...Option) *Surface {
	s := &Surface{
		dict:     dict,
		work:     work,
		answers:  answers,
		logger:   logging.Nop(),
		spans:    tracking.NewSpanSet(),
		goalCol:  -1,
		relocate: RelocateSearch,
		tabWidth: 4,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("editor")
	s.buf = buffer.NewBuffer(buffer.WithTabWidth(s.tabWidth))
	return s
}

// Buffer returns the document buffer.
func (s *Surface) Buffer() *buffer.Buffer {
	return s.buf
}

// Text returns the document text.
func (s *Surface) Text() string {
	return s.buf.Text()
}

// Cursor returns the cursor byte offset.
func (s *Surface) Cursor() buffer.ByteOffset {
	return s.cursor
}

// CursorPoint returns the cursor as a (line, column) point.
func (s *Surface) CursorPoint() buffer.Point {
	return s.buf.OffsetToPoint(s.cursor)
}

// SetCursor moves the cursor, clamped to the document.
func (s *Surface) SetCursor(offset buffer.ByteOffset) {
	s.cursor = clampOffset(offset, s.buf.Len())
	s.goalCol = -1
}

// Path returns the file backing the document, or "" for a new document.
func (s *Surface) Path() string {
	return s.path
}

// Modified reports unsaved changes.
func (s *Surface) Modified() bool {
	return s.modified
}

// TabWidth returns the tab width.
func (s *Surface) TabWidth() int {
	return s.tabWidth
}

// RelocateMode returns the configured relocation mode.
func (s *Surface) RelocateMode() RelocateMode {
	return s.relocate
}

// Title returns the window title.
func (s *Surface) Title() string {
	if s.path == "" {
		return AppName
	}
	return AppName + " - " + s.path
}

// DisplayName returns the file name shown in the status line.
func (s *Surface) DisplayName() string {
	if s.path == "" {
		return "Untitled"
	}
	return filepath.Base(s.path)
}

// Highlights returns the highlighted ranges in document order.
func (s *Surface) Highlights() []buffer.Range {
	spans := s.spans.Spans(tracking.TagMisspelled)
	out := make([]buffer.Range, len(spans))
	for i, sp := range spans {
		out[i] = sp.Range
	}
	return out
}

// IsHighlighted reports whether every byte of r is highlighted.
func (s *Surface) IsHighlighted(r buffer.Range) bool {
	return s.spans.Covers(tracking.TagMisspelled, r)
}

// PendingChecks returns the number of checks waiting for the worker.
func (s *Surface) PendingChecks() int {
	if s.work == nil {
		return 0
	}
	return s.work.Len()
}

func clampOffset(offset, size buffer.ByteOffset) buffer.ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > size {
		return size
	}
	return offset
}
