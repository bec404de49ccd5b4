package tracking

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/ayg/internal/engine/buffer"
)

// Tag names a class of spans.
type Tag string

// Well-known tags.
const (
	TagMisspelled Tag = "misspelled"
	TagAnchor     Tag = "anchor"
)

// SpanID identifies a tracked span.
type SpanID = uuid.UUID

// Span is a tagged byte range.
type Span struct {
	ID    SpanID
	Tag   Tag
	Range buffer.Range
}

// SpanSet is a collection of spans that follows buffer edits.
// All methods are thread-safe.
type SpanSet struct {
	mu    sync.RWMutex
	spans map[SpanID]Span
}

// NewSpanSet creates an empty span set.
func NewSpanSet() *SpanSet {
	return &SpanSet{spans: make(map[SpanID]Span)}
}

// Mark tags r, merging with overlapping or touching spans of the same tag.
// Marking an already marked range does nothing visible.
func (s *SpanSet) Mark(tag Tag, r buffer.Range) {
	if r.IsEmpty() || !r.IsValid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := r
	for id, sp := range s.spans {
		if sp.Tag != tag {
			continue
		}
		if sp.Range.Start <= merged.End && merged.Start <= sp.Range.End {
			merged.Start = min(merged.Start, sp.Range.Start)
			merged.End = max(merged.End, sp.Range.End)
			delete(s.spans, id)
		}
	}
	id := uuid.New()
	s.spans[id] = Span{ID: id, Tag: tag, Range: merged}
}

// Unmark removes tag from r, trimming or splitting spans that overlap it.
// Unmarking a range that carries no such tag is a no-op.
func (s *SpanSet) Unmark(tag Tag, r buffer.Range) {
	if r.IsEmpty() || !r.IsValid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sp := range s.spans {
		if sp.Tag != tag || !sp.Range.Overlaps(r) {
			continue
		}
		delete(s.spans, id)
		if sp.Range.Start < r.Start {
			s.addLocked(tag, buffer.Range{Start: sp.Range.Start, End: r.Start})
		}
		if sp.Range.End > r.End {
			s.addLocked(tag, buffer.Range{Start: r.End, End: sp.Range.End})
		}
	}
}

// Track adds an independent span that is never merged with others.
func (s *SpanSet) Track(tag Tag, r buffer.Range) SpanID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(tag, r)
}

func (s *SpanSet) addLocked(tag Tag, r buffer.Range) SpanID {
	id := uuid.New()
	s.spans[id] = Span{ID: id, Tag: tag, Range: r}
	return id
}

// Get returns the span with the given id.
func (s *SpanSet) Get(id SpanID) (Span, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sp, ok := s.spans[id]
	return sp, ok
}

// Remove deletes the span with the given id. Unknown ids are ignored.
func (s *SpanSet) Remove(id SpanID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.spans, id)
}

// Covers reports whether every byte of r carries tag.
func (s *SpanSet) Covers(tag Tag, r buffer.Range) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sp := range s.spans {
		if sp.Tag == tag && sp.Range.Start <= r.Start && r.End <= sp.Range.End {
			return true
		}
	}
	return false
}

// Spans returns the spans with the given tag ordered by start offset.
func (s *SpanSet) Spans(tag Tag) []Span {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Span, 0, len(s.spans))
	for _, sp := range s.spans {
		if sp.Tag == tag {
			out = append(out, sp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Range.Start != out[j].Range.Start {
			return out[i].Range.Start < out[j].Range.Start
		}
		return out[i].Range.End < out[j].Range.End
	})
	return out
}

// Len returns the number of spans of every tag.
func (s *SpanSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.spans)
}

// Clear removes all spans.
func (s *SpanSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.spans)
}

// Apply shifts every span through change.
//
// Text inserted at a span's start lands before it, text inserted at its end
// lands after it, and text inserted strictly inside it extends it.
// Positions inside a removed region collapse onto the start of the edit.
func (s *SpanSet) Apply(change buffer.Change) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, b := change.Range.Start, change.Range.End
	delta := change.Delta()

	for id, sp := range s.spans {
		start, end := sp.Range.Start, sp.Range.End
		switch {
		case b <= start:
			start += delta
			end += delta
		case a >= end:
			continue
		default:
			start = mapStart(start, a, b, delta)
			end = mapEnd(end, a, b, delta)
		}
		if start >= end {
			delete(s.spans, id)
			continue
		}
		sp.Range = buffer.Range{Start: start, End: end}
		s.spans[id] = sp
	}
}

func mapStart(pos, a, b, delta buffer.ByteOffset) buffer.ByteOffset {
	switch {
	case pos < a:
		return pos
	case pos >= b:
		return pos + delta
	default:
		return a
	}
}

func mapEnd(pos, a, b, delta buffer.ByteOffset) buffer.ByteOffset {
	switch {
	case pos <= a:
		return pos
	case pos >= b:
		return pos + delta
	default:
		return a
	}
}
