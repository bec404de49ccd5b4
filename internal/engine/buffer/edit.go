package buffer

import "fmt"

// ChangeType categorizes the type of change made to the buffer.
type ChangeType uint8

const (
	ChangeInsert  ChangeType = iota // Text was inserted
	ChangeDelete                    // Text was deleted
	ChangeReplace                   // Text was replaced
)

// String returns a string representation of the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Change describes a single applied mutation.
// Range is in old-text coordinates, NewRange in new-text coordinates.
type Change struct {
	Type       ChangeType
	Range      Range
	NewRange   Range
	OldText    string
	NewText    string
	RevisionID RevisionID
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	switch c.Type {
	case ChangeInsert:
		return fmt.Sprintf("Insert(%d, %q)", c.Range.Start, c.NewText)
	case ChangeDelete:
		return fmt.Sprintf("Delete%s", c.Range)
	default:
		return fmt.Sprintf("Replace%s with %q", c.Range, c.NewText)
	}
}

// Delta returns the change in buffer length caused by this change.
func (c Change) Delta() ByteOffset {
	return ByteOffset(len(c.NewText)) - ByteOffset(len(c.OldText))
}

func changeType(oldText, newText string) ChangeType {
	switch {
	case oldText == "":
		return ChangeInsert
	case newText == "":
		return ChangeDelete
	default:
		return ChangeReplace
	}
}
