// Package tracking keeps tagged byte ranges aligned with a buffer as it is
// edited.
//
// Spans are used for two things: misspelling highlights, which behave like
// text tags (marking a range merges with overlapping marks of the same tag,
// unmarking trims or splits them), and anchors, which follow a single token
// through edits so that a late correction can find it again.
//
// Every buffer.Change must be passed to Apply in the order it was made.
// A span whose text is deleted entirely collapses and is dropped.
package tracking
