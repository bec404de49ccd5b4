package worker

import (
	"github.com/google/uuid"

	"github.com/dshills/ayg/internal/engine/buffer"
	"github.com/dshills/ayg/internal/engine/tracking"
)

// PendingCheck is a misspelled token waiting for correction.
type PendingCheck struct {
	// ID identifies the check across both queues.
	ID uuid.UUID

	// Word is the token text as typed.
	Word string

	// Position is the buffer point right after the token at check time.
	// It is not updated by later edits.
	Position buffer.Point

	// Anchor optionally names a tracked span covering the token.
	Anchor tracking.SpanID
}

// NewPendingCheck creates a check with a fresh ID.
func NewPendingCheck(word string, pos buffer.Point, anchor tracking.SpanID) PendingCheck {
	return PendingCheck{
		ID:       uuid.New(),
		Word:     word,
		Position: pos,
		Anchor:   anchor,
	}
}

// Result is the outcome of one PendingCheck.
type Result struct {
	CheckID   uuid.UUID
	Original  string
	Corrected string
	// Found is false when no permutation is a dictionary word, when the
	// token was too long to search, or when Err is set.
	Found    bool
	Position buffer.Point
	Anchor   tracking.SpanID
	Err      error
}
