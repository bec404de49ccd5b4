package buffer

import (
	"cmp"
	"fmt"
	"sync/atomic"
)

// ByteOffset is a byte index into the buffer text.
type ByteOffset = int64

// Point is a zero-based line and byte column.
type Point struct {
	Line   uint32
	Column uint32
}

func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare orders points by line, then column.
func (p Point) Compare(other Point) int {
	if c := cmp.Compare(p.Line, other.Line); c != 0 {
		return c
	}
	return cmp.Compare(p.Column, other.Column)
}

// Before reports whether p sorts before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// Range is the half-open byte span [Start, End).
type Range struct {
	Start ByteOffset
	End   ByteOffset
}

func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

func (r Range) Len() ByteOffset { return r.End - r.Start }
func (r Range) IsEmpty() bool   { return r.Start == r.End }
func (r Range) IsValid() bool   { return r.Start <= r.End }

// Contains reports whether offset lies inside r.
func (r Range) Contains(offset ByteOffset) bool {
	return r.Start <= offset && offset < r.End
}

// Overlaps reports whether r and other share a byte.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// RevisionID identifies one state of a buffer. Every edit gets a fresh one.
type RevisionID uint64

var lastRevision atomic.Uint64

// NewRevisionID returns a process-unique revision.
func NewRevisionID() RevisionID {
	return RevisionID(lastRevision.Add(1))
}
