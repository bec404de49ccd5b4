package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/ayg/internal/engine/buffer"
	"github.com/dshills/ayg/internal/engine/tracking"
	"github.com/dshills/ayg/internal/spell/worker"
)

// CheckResult describes what OnSpaceKey did.
type CheckResult struct {
	Word       string
	Range      buffer.Range
	Misspelled bool
	// Queued is true when a PendingCheck reached the work queue.
	Queued bool
}

// OnSpaceKey checks the token that ends exactly at the cursor. It is called
// before the space itself is inserted.
//
// A token missing from the dictionary is highlighted and queued for
// correction. A known token has any highlight on it removed. When the cursor
// does not follow a token nothing happens and ok is false.
func (s *Surface) OnSpaceKey() (res CheckResult, ok bool) {
	before := s.buf.TextRange(0, s.cursor)
	last, _ := utf8.DecodeLastRuneInString(before)
	if before == "" || unicode.IsSpace(last) {
		return CheckResult{}, false
	}

	fields := strings.Fields(before)
	word := fields[len(fields)-1]
	r := buffer.Range{Start: s.cursor - buffer.ByteOffset(len(word)), End: s.cursor}
	res = CheckResult{Word: word, Range: r}

	if s.dict.Contains(word) {
		s.Unhighlight(r)
		return res, true
	}

	res.Misspelled = true
	s.Highlight(r)

	anchor := uuid.Nil
	if s.relocate == RelocateAnchor {
		anchor = s.spans.Track(tracking.TagAnchor, r)
	}
	check := worker.NewPendingCheck(word, s.CursorPoint(), anchor)
	if s.work == nil {
		return res, true
	}
	if err := s.work.Push(check); err != nil {
		s.logger.Warn("work queue rejected check", "word", word, "error", err)
		if anchor != uuid.Nil {
			s.spans.Remove(anchor)
		}
		return res, true
	}
	res.Queued = true
	s.logger.Debug("queued check", "word", word, "position", check.Position.String())
	return res, true
}

// Highlight marks r as misspelled. Highlighting twice has no further effect.
func (s *Surface) Highlight(r buffer.Range) {
	s.spans.Mark(tracking.TagMisspelled, r)
}

// Unhighlight clears the misspelled mark from r. It is a no-op when r is
// not highlighted.
func (s *Surface) Unhighlight(r buffer.Range) {
	s.spans.Unmark(tracking.TagMisspelled, r)
}

// CheckWholeDocument returns every whitespace-delimited token that is not in
// the dictionary, in document order and including repeats. The document is
// not modified.
func (s *Surface) CheckWholeDocument() []string {
	var incorrect []string
	for _, word := range strings.Fields(s.buf.Text()) {
		if !s.dict.Contains(word) {
			incorrect = append(incorrect, word)
		}
	}
	return incorrect
}

// DrainReport counts what DrainAnswers did.
type DrainReport struct {
	Applied    int
	Unresolved int
	Stale      int
}

// Total returns the number of results consumed.
func (r DrainReport) Total() int {
	return r.Applied + r.Unresolved + r.Stale
}

// DrainAnswers applies every result waiting on the answer queue without
// blocking.
//
// A result with a correction replaces the original token and clears its
// highlight. A result without one leaves the highlight in place. A token that
// can no longer be found is dropped silently.
func (s *Surface) DrainAnswers() DrainReport {
	var report DrainReport
	if s.answers == nil {
		return report
	}
	for {
		res, ok := s.answers.TryPop()
		if !ok {
			return report
		}
		switch s.applyResult(res) {
		case applied:
			report.Applied++
		case unresolved:
			report.Unresolved++
		case stale:
			report.Stale++
		}
	}
}

type outcome int

const (
	applied outcome = iota
	unresolved
	stale
)

func (s *Surface) applyResult(res worker.Result) outcome {
	if res.Anchor != uuid.Nil {
		defer s.spans.Remove(res.Anchor)
	}
	if !res.Found || res.Corrected == "" {
		return unresolved
	}

	start, ok := s.locate(res)
	if !ok {
		s.logger.Debug("dropping stale correction", "word", res.Original, "position", res.Position.String())
		return stale
	}

	end := start + buffer.ByteOffset(len(res.Original))
	ch, err := s.replace(start, end, res.Corrected)
	if err != nil {
		s.logger.Warn("applying correction failed", "word", res.Original, "error", err)
		return stale
	}
	s.Unhighlight(ch.NewRange)
	s.logger.Debug("applied correction", "word", res.Original, "correction", res.Corrected)
	return applied
}

// locate returns the start offset of the token a result refers to.
func (s *Surface) locate(res worker.Result) (buffer.ByteOffset, bool) {
	if s.relocate == RelocateAnchor && res.Anchor != uuid.Nil {
		sp, ok := s.spans.Get(res.Anchor)
		if !ok || s.buf.TextRange(sp.Range.Start, sp.Range.End) != res.Original {
			return 0, false
		}
		return sp.Range.Start, true
	}

	limit := s.buf.PointToOffset(res.Position)
	start := s.buf.LastIndexBefore(res.Original, limit)
	return start, start >= 0
}
