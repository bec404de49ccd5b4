package editor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/ayg/internal/engine/buffer"
	"github.com/dshills/ayg/internal/spell/corrector"
	"github.com/dshills/ayg/internal/spell/dictionary"
	"github.com/dshills/ayg/internal/spell/queue"
	"github.com/dshills/ayg/internal/spell/worker"
)

var testWords = []string{"the", "quick", "fox", "word", "list", "and"}

type harness struct {
	surface *Surface
	work    *queue.Queue[worker.PendingCheck]
	answers *queue.Queue[worker.Result]
	dict    *dictionary.Dictionary
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	dict := dictionary.New(testWords...)
	work := queue.New[worker.PendingCheck]()
	answers := queue.New[worker.Result]()
	return &harness{
		surface: New(dict, work, answers, opts...),
		work:    work,
		answers: answers,
		dict:    dict,
	}
}

// typeText feeds runes the way the UI loop does: a space triggers a check
// before it is inserted.
func (h *harness) typeText(text string) {
	for _, r := range text {
		switch r {
		case ' ':
			h.surface.OnSpaceKey()
			h.surface.InsertRune(' ')
		case '\n':
			h.surface.Newline()
		default:
			h.surface.InsertRune(r)
		}
	}
}

// correctAll runs the queued checks through a real worker and waits for
// every answer.
func (h *harness) correctAll(t *testing.T) {
	t.Helper()
	want := h.work.Len() + h.answers.Len()
	w := worker.New(h.work, h.answers, corrector.New(h.dict))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	require.Eventually(t, func() bool { return h.answers.Len() == want }, 2*time.Second, time.Millisecond)
	cancel()
	<-done
}

func TestSurface_TypingCorrectWordsQueuesNothing(t *testing.T) {
	h := newHarness(t)

	h.typeText("The quick fox ")

	assert.Equal(t, "The quick fox ", h.surface.Text())
	assert.Equal(t, 0, h.work.Len())
	assert.Empty(t, h.surface.Highlights())
}

func TestSurface_EndToEndCorrection(t *testing.T) {
	h := newHarness(t)

	h.typeText("wrod ")

	require.Equal(t, 1, h.work.Len())
	assert.Equal(t, []buffer.Range{{Start: 0, End: 4}}, h.surface.Highlights())

	h.correctAll(t)
	report := h.surface.DrainAnswers()

	assert.Equal(t, DrainReport{Applied: 1}, report)
	assert.Equal(t, "word ", h.surface.Text())
	assert.Empty(t, h.surface.Highlights())
	assert.Equal(t, buffer.ByteOffset(5), h.surface.Cursor())
	assert.True(t, h.surface.Modified())
}

func TestSurface_UncorrectableWordStaysHighlighted(t *testing.T) {
	h := newHarness(t)

	h.typeText("the zzqx ")
	h.correctAll(t)
	report := h.surface.DrainAnswers()

	assert.Equal(t, DrainReport{Unresolved: 1}, report)
	assert.Equal(t, "the zzqx ", h.surface.Text())
	assert.Equal(t, []buffer.Range{{Start: 4, End: 8}}, h.surface.Highlights())
}

func TestSurface_RepeatedWordsCorrectedInOrder(t *testing.T) {
	h := newHarness(t)

	h.typeText("wrod sitl wrod ")
	require.Equal(t, 3, h.work.Len())

	h.correctAll(t)
	report := h.surface.DrainAnswers()

	assert.Equal(t, 3, report.Applied)
	assert.Equal(t, "word list word ", h.surface.Text())
	assert.Empty(t, h.surface.Highlights())
}

func TestSurface_CorrectWordClearsHighlight(t *testing.T) {
	h := newHarness(t)
	h.surface.InsertText("fox")
	h.surface.Highlight(buffer.Range{Start: 0, End: 3})

	res, ok := h.surface.OnSpaceKey()

	require.True(t, ok)
	assert.False(t, res.Misspelled)
	assert.Equal(t, "fox", res.Word)
	assert.Empty(t, h.surface.Highlights())
}

func TestSurface_OnSpaceKeyWithoutToken(t *testing.T) {
	h := newHarness(t)

	_, ok := h.surface.OnSpaceKey()
	assert.False(t, ok)

	h.typeText("wrod ")
	_, ok = h.surface.OnSpaceKey()
	assert.False(t, ok, "cursor after whitespace has no token")
	assert.Equal(t, 1, h.work.Len())
}

func TestSurface_OnSpaceKeyMidLine(t *testing.T) {
	h := newHarness(t)
	h.surface.InsertText("the fox\nqukc")

	res, ok := h.surface.OnSpaceKey()

	require.True(t, ok)
	assert.True(t, res.Misspelled)
	assert.True(t, res.Queued)
	assert.Equal(t, buffer.Range{Start: 8, End: 12}, res.Range)

	check, ok := h.work.TryPop()
	require.True(t, ok)
	assert.Equal(t, "qukc", check.Word)
	assert.Equal(t, buffer.Point{Line: 1, Column: 4}, check.Position)
}

func TestSurface_ClosedWorkQueue(t *testing.T) {
	h := newHarness(t)
	h.work.Close()

	h.surface.InsertText("wrod")
	res, ok := h.surface.OnSpaceKey()

	require.True(t, ok)
	assert.True(t, res.Misspelled)
	assert.False(t, res.Queued)
	assert.True(t, h.surface.IsHighlighted(res.Range))
}

func TestSurface_UnhighlightIdempotent(t *testing.T) {
	h := newHarness(t)
	h.surface.InsertText("zzqx fox")
	r := buffer.Range{Start: 5, End: 8}

	h.surface.Unhighlight(r)
	h.surface.Unhighlight(r)
	assert.Empty(t, h.surface.Highlights())

	h.surface.Highlight(buffer.Range{Start: 0, End: 4})
	h.surface.Unhighlight(r)
	assert.Equal(t, []buffer.Range{{Start: 0, End: 4}}, h.surface.Highlights())
}

func TestSurface_CheckWholeDocument(t *testing.T) {
	h := newHarness(t)
	h.surface.InsertText("The qukc fox")

	assert.Equal(t, []string{"qukc"}, h.surface.CheckWholeDocument())
	assert.Equal(t, "The qukc fox", h.surface.Text())
	assert.Equal(t, 0, h.work.Len())
	assert.Empty(t, h.surface.Highlights())
}

func TestSurface_CheckWholeDocumentKeepsRepeats(t *testing.T) {
	h := newHarness(t)
	h.surface.InsertText("zzqx the\nzzqx  fox")

	assert.Equal(t, []string{"zzqx", "zzqx"}, h.surface.CheckWholeDocument())

	h.surface.NewDocument()
	assert.Empty(t, h.surface.CheckWholeDocument())
}

func TestSurface_StaleCorrectionDropped(t *testing.T) {
	h := newHarness(t)
	h.surface.InsertText("the fox ")

	require.NoError(t, h.answers.Push(worker.Result{
		Original:  "wrod",
		Corrected: "word",
		Found:     true,
		Position:  buffer.Point{Line: 0, Column: 8},
	}))

	report := h.surface.DrainAnswers()
	assert.Equal(t, DrainReport{Stale: 1}, report)
	assert.Equal(t, 1, report.Total())
	assert.Equal(t, "the fox ", h.surface.Text())
}

func TestSurface_SearchModeMissesShiftedWord(t *testing.T) {
	h := newHarness(t)
	h.typeText("wrod ")
	h.correctAll(t)

	h.surface.MoveDocumentStart()
	h.surface.InsertText("The ")
	report := h.surface.DrainAnswers()

	assert.Equal(t, DrainReport{Stale: 1}, report)
	assert.Equal(t, "The wrod ", h.surface.Text())
}

func TestSurface_AnchorModeFollowsEdits(t *testing.T) {
	h := newHarness(t, WithRelocateMode(RelocateAnchor))
	assert.Equal(t, RelocateAnchor, h.surface.RelocateMode())

	h.typeText("wrod ")
	h.correctAll(t)

	h.surface.MoveDocumentStart()
	h.surface.InsertText("The ")
	report := h.surface.DrainAnswers()

	assert.Equal(t, DrainReport{Applied: 1}, report)
	assert.Equal(t, "The word ", h.surface.Text())
	assert.Empty(t, h.surface.Highlights())
	assert.Equal(t, 0, h.surface.spans.Len(), "anchor released")
}

func TestSurface_AnchorModeDropsDeletedWord(t *testing.T) {
	h := newHarness(t, WithRelocateMode(RelocateAnchor))
	h.typeText("wrod ")
	h.correctAll(t)

	for i := 0; i < 5; i++ {
		h.surface.Backspace()
	}
	h.surface.InsertText("wrod")
	report := h.surface.DrainAnswers()

	assert.Equal(t, DrainReport{Stale: 1}, report)
	assert.Equal(t, "wrod", h.surface.Text())
}

func TestSurface_CorrectionShiftsCursor(t *testing.T) {
	h := newHarness(t)
	h.typeText("wrod the ")
	require.NoError(t, h.answers.Push(worker.Result{
		Original:  "wrod",
		Corrected: "words",
		Found:     true,
		Position:  buffer.Point{Line: 0, Column: 4},
	}))
	// Pending check from typing is still queued; only the pushed answer is drained.
	h.surface.DrainAnswers()

	assert.Equal(t, "words the ", h.surface.Text())
	assert.Equal(t, buffer.ByteOffset(10), h.surface.Cursor())
}

func TestSurface_Editing(t *testing.T) {
	h := newHarness(t)
	s := h.surface

	s.InsertText("héllo\nworld")
	assert.Equal(t, buffer.Point{Line: 1, Column: 5}, s.CursorPoint())

	s.MoveUp(1)
	assert.Equal(t, buffer.Point{Line: 0, Column: 6}, s.CursorPoint())

	s.MoveLineStart()
	s.MoveRight()
	s.MoveRight()
	assert.Equal(t, buffer.ByteOffset(3), s.Cursor(), "é is two bytes")

	s.Backspace()
	assert.Equal(t, "hllo\nworld", s.Text())

	s.MoveLeft()
	s.DeleteForward()
	assert.Equal(t, "llo\nworld", s.Text())

	s.MoveDown(5)
	assert.Equal(t, buffer.Point{Line: 1, Column: 0}, s.CursorPoint())

	s.MoveLineEnd()
	s.Newline()
	s.InsertRune('!')
	assert.Equal(t, "llo\nworld\n!", s.Text())

	s.MoveDocumentStart()
	s.MoveLeft()
	s.Backspace()
	assert.Equal(t, buffer.ByteOffset(0), s.Cursor())

	s.MoveDocumentEnd()
	s.DeleteForward()
	assert.Equal(t, s.Buffer().Len(), s.Cursor())
}

func TestSurface_HighlightFollowsEdits(t *testing.T) {
	h := newHarness(t)
	h.typeText("zzqx ")

	h.surface.MoveDocumentStart()
	h.surface.InsertText("the ")

	assert.Equal(t, []buffer.Range{{Start: 4, End: 8}}, h.surface.Highlights())
}

func TestSurface_Title(t *testing.T) {
	h := newHarness(t, WithTabWidth(8))

	assert.Equal(t, AppName, h.surface.Title())
	assert.Equal(t, "Untitled", h.surface.DisplayName())
	assert.Equal(t, 8, h.surface.TabWidth())
	assert.Equal(t, 0, h.surface.PendingChecks())
}
