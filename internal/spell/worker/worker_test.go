package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/ayg/internal/engine/buffer"
	"github.com/dshills/ayg/internal/spell/corrector"
	"github.com/dshills/ayg/internal/spell/dictionary"
	"github.com/dshills/ayg/internal/spell/queue"
)

type funcCorrector func(ctx context.Context, token string) (string, bool, error)

func (f funcCorrector) Correct(ctx context.Context, token string) (string, bool, error) {
	return f(ctx, token)
}

func newPipeline(c Corrector, opts ...Option) (*queue.Queue[PendingCheck], *queue.Queue[Result], *Worker) {
	work := queue.New[PendingCheck]()
	answers := queue.New[Result]()
	return work, answers, New(work, answers, c, opts...)
}

func runWorker(t *testing.T, w *Worker) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	return cancel, done
}

func popResult(t *testing.T, answers *queue.Queue[Result]) Result {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := answers.Pop(ctx)
	require.NoError(t, err)
	return res
}

func TestWorker_CorrectsInOrder(t *testing.T) {
	c := corrector.New(dictionary.New("word", "list"))
	var notified atomic.Int32
	work, answers, w := newPipeline(c, WithNotify(func() { notified.Add(1) }))

	cancel, done := runWorker(t, w)
	defer cancel()

	checks := []PendingCheck{
		NewPendingCheck("wrod", buffer.Point{Line: 0, Column: 4}, uuid.Nil),
		NewPendingCheck("zzqx", buffer.Point{Line: 0, Column: 9}, uuid.Nil),
		NewPendingCheck("sitl", buffer.Point{Line: 1, Column: 4}, uuid.Nil),
	}
	for _, ch := range checks {
		require.NoError(t, work.Push(ch))
	}

	r1 := popResult(t, answers)
	assert.Equal(t, checks[0].ID, r1.CheckID)
	assert.Equal(t, "wrod", r1.Original)
	assert.Equal(t, "word", r1.Corrected)
	assert.True(t, r1.Found)
	assert.Equal(t, buffer.Point{Line: 0, Column: 4}, r1.Position)

	r2 := popResult(t, answers)
	assert.Equal(t, "zzqx", r2.Original)
	assert.False(t, r2.Found)
	assert.NoError(t, r2.Err)

	r3 := popResult(t, answers)
	assert.Equal(t, "list", r3.Corrected)

	work.Close()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after queue close")
	}

	assert.Equal(t, StateStopped, w.State())
	assert.Equal(t, int32(3), notified.Load())
	stats := w.Stats()
	assert.Equal(t, uint64(3), stats.Processed)
	assert.Equal(t, uint64(2), stats.Corrected)
	assert.Equal(t, uint64(1), stats.Unresolved)
}

func TestWorker_RecoversFromPanic(t *testing.T) {
	c := funcCorrector(func(ctx context.Context, token string) (string, bool, error) {
		if token == "boom" {
			panic("corrupt token")
		}
		return "ok", true, nil
	})
	work, answers, w := newPipeline(c)
	cancel, _ := runWorker(t, w)
	defer cancel()

	require.NoError(t, work.Push(NewPendingCheck("boom", buffer.Point{}, uuid.Nil)))
	require.NoError(t, work.Push(NewPendingCheck("fine", buffer.Point{}, uuid.Nil)))

	r1 := popResult(t, answers)
	assert.False(t, r1.Found)
	assert.Error(t, r1.Err)

	r2 := popResult(t, answers)
	assert.True(t, r2.Found)
	assert.Equal(t, "ok", r2.Corrected)

	assert.Equal(t, uint64(1), w.Stats().Panicked)
}

func TestWorker_CorrectorError(t *testing.T) {
	sentinel := errors.New("dictionary gone")
	c := funcCorrector(func(ctx context.Context, token string) (string, bool, error) {
		return "", false, sentinel
	})
	work, answers, w := newPipeline(c)
	cancel, _ := runWorker(t, w)
	defer cancel()

	require.NoError(t, work.Push(NewPendingCheck("wrod", buffer.Point{}, uuid.Nil)))

	res := popResult(t, answers)
	assert.ErrorIs(t, res.Err, sentinel)
	assert.Equal(t, uint64(1), w.Stats().Failed)
}

func TestWorker_TooLongIsUnresolved(t *testing.T) {
	c := corrector.New(dictionary.New("word"), corrector.WithMaxLength(3))
	work, answers, w := newPipeline(c)
	cancel, _ := runWorker(t, w)
	defer cancel()

	require.NoError(t, work.Push(NewPendingCheck("wrod", buffer.Point{}, uuid.Nil)))

	res := popResult(t, answers)
	assert.False(t, res.Found)
	assert.NoError(t, res.Err)
	assert.Equal(t, uint64(1), w.Stats().Unresolved)
}

func TestWorker_StopsOnCancel(t *testing.T) {
	_, _, w := newPipeline(corrector.New(dictionary.New()))
	cancel, done := runWorker(t, w)

	require.Eventually(t, func() bool { return w.State() == StateRunning }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on cancel")
	}
}

func TestWorker_RunTwice(t *testing.T) {
	work, _, w := newPipeline(corrector.New(dictionary.New()))
	work.Close()

	require.NoError(t, w.Run(context.Background()))
	assert.ErrorIs(t, w.Run(context.Background()), ErrAlreadyRunning)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "unknown", State(9).String())
}
