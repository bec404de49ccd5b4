// Package buffer provides the thread-safe text buffer behind the editor
// surface.
//
// The buffer stores its content with LF line endings and keeps an index of
// line starts so that byte offsets and (line, column) points can be converted
// in both directions. Every mutation produces a new RevisionID and returns a
// Change record that position trackers use to shift their spans.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//	buf.Insert(7, "Beautiful ") // "Hello, Beautiful World!"
//	buf.Delete(0, 7)            // "Beautiful World!"
//
// Position Types:
//
//   - ByteOffset: raw byte position in the buffer
//   - Point: line and column position (0-indexed, column in bytes)
//
// A Point handed to another goroutine is only meaningful for the revision it
// was taken from. Callers that keep points across edits must re-validate them.
package buffer
