package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/ayg/internal/engine/buffer"
)

func rng(start, end buffer.ByteOffset) buffer.Range {
	return buffer.Range{Start: start, End: end}
}

func ranges(spans []Span) []buffer.Range {
	out := make([]buffer.Range, len(spans))
	for i, sp := range spans {
		out[i] = sp.Range
	}
	return out
}

func TestSpanSet_MarkMerges(t *testing.T) {
	s := NewSpanSet()

	s.Mark(TagMisspelled, rng(0, 4))
	s.Mark(TagMisspelled, rng(2, 6))
	s.Mark(TagMisspelled, rng(10, 12))
	s.Mark(TagAnchor, rng(0, 4))

	assert.Equal(t, []buffer.Range{rng(0, 6), rng(10, 12)}, ranges(s.Spans(TagMisspelled)))
	assert.Len(t, s.Spans(TagAnchor), 1)

	s.Mark(TagMisspelled, rng(0, 6))
	assert.Len(t, s.Spans(TagMisspelled), 2)
}

func TestSpanSet_UnmarkIdempotent(t *testing.T) {
	s := NewSpanSet()
	s.Mark(TagMisspelled, rng(0, 4))

	s.Unmark(TagMisspelled, rng(10, 14))
	s.Unmark(TagMisspelled, rng(10, 14))
	assert.Equal(t, []buffer.Range{rng(0, 4)}, ranges(s.Spans(TagMisspelled)))

	s.Unmark(TagMisspelled, rng(0, 4))
	s.Unmark(TagMisspelled, rng(0, 4))
	assert.Empty(t, s.Spans(TagMisspelled))
}

func TestSpanSet_UnmarkSplits(t *testing.T) {
	s := NewSpanSet()
	s.Mark(TagMisspelled, rng(0, 10))

	s.Unmark(TagMisspelled, rng(3, 5))

	assert.Equal(t, []buffer.Range{rng(0, 3), rng(5, 10)}, ranges(s.Spans(TagMisspelled)))
	assert.True(t, s.Covers(TagMisspelled, rng(5, 8)))
	assert.False(t, s.Covers(TagMisspelled, rng(2, 6)))
}

func TestSpanSet_Apply(t *testing.T) {
	tests := []struct {
		name   string
		change buffer.Change
		want   []buffer.Range
	}{
		{"insert before", buffer.Change{Range: rng(1, 1), NewText: "ab"}, []buffer.Range{rng(6, 10)}},
		{"insert at start", buffer.Change{Range: rng(4, 4), NewText: "ab"}, []buffer.Range{rng(6, 10)}},
		{"insert inside", buffer.Change{Range: rng(5, 5), NewText: "ab"}, []buffer.Range{rng(4, 10)}},
		{"insert at end", buffer.Change{Range: rng(8, 8), NewText: "ab"}, []buffer.Range{rng(4, 8)}},
		{"delete before", buffer.Change{Range: rng(0, 2), OldText: "xx"}, []buffer.Range{rng(2, 6)}},
		{"delete overlapping start", buffer.Change{Range: rng(2, 6), OldText: "xxxx"}, []buffer.Range{rng(2, 4)}},
		{"delete whole span", buffer.Change{Range: rng(3, 9), OldText: "xxxxxx"}, []buffer.Range{}},
		{"replace span text", buffer.Change{Range: rng(4, 8), OldText: "wrod", NewText: "words"}, []buffer.Range{rng(4, 9)}},
		{"delete after", buffer.Change{Range: rng(8, 10), OldText: "xx"}, []buffer.Range{rng(4, 8)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSpanSet()
			s.Mark(TagMisspelled, rng(4, 8))

			s.Apply(tt.change)

			assert.Equal(t, tt.want, ranges(s.Spans(TagMisspelled)))
		})
	}
}

func TestSpanSet_TrackedAnchor(t *testing.T) {
	s := NewSpanSet()
	id := s.Track(TagAnchor, rng(0, 4))

	s.Apply(buffer.Change{Range: rng(0, 0), NewText: "The "})
	sp, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, rng(4, 8), sp.Range)

	s.Apply(buffer.Change{Range: rng(2, 10), OldText: "e wrod a"})
	_, ok = s.Get(id)
	assert.False(t, ok)

	s.Remove(id)
	assert.Equal(t, 0, s.Len())
}

func TestSpanSet_Clear(t *testing.T) {
	s := NewSpanSet()
	s.Mark(TagMisspelled, rng(0, 1))
	s.Track(TagAnchor, rng(0, 1))

	s.Clear()

	assert.Equal(t, 0, s.Len())
}
