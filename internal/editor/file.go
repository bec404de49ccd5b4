package editor

import (
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// NewDocument discards the current document and starts an empty one.
func (s *Surface) NewDocument() {
	s.buf.SetText("")
	s.spans.Clear()
	s.cursor = 0
	s.goalCol = -1
	s.path = ""
	s.modified = false
}

// OpenFile replaces the document with the contents of path.
// Files that are not valid UTF-8 are decoded as Windows-1252.
// On failure the current document is left untouched.
func (s *Surface) OpenFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &FileError{Op: "open", Path: path, Err: err}
	}

	text, err := decodeText(data)
	if err != nil {
		return &FileError{Op: "open", Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		s.logger.Info("decoded non-UTF-8 file as windows-1252", "path", path)
	}

	s.buf.SetText(text)
	s.spans.Clear()
	s.cursor = 0
	s.goalCol = -1
	s.path = path
	s.modified = false
	s.logger.Info("opened file", "path", path, "bytes", len(data))
	return nil
}

// SaveFile writes the document to path as UTF-8, restoring the line endings
// it was opened with. On success path becomes the document's path.
func (s *Surface) SaveFile(path string) error {
	if err := os.WriteFile(path, []byte(s.buf.Serialize()), 0o644); err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	s.path = path
	s.modified = false
	s.logger.Info("saved file", "path", path)
	return nil
}

func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
