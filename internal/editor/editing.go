package editor

import (
	"unicode/utf8"

	"github.com/dshills/ayg/internal/engine/buffer"
)

// replace edits the buffer and keeps spans and the cursor aligned.
func (s *Surface) replace(start, end buffer.ByteOffset, text string) (buffer.Change, error) {
	ch, err := s.buf.Replace(start, end, text)
	if err != nil {
		return ch, err
	}
	s.spans.Apply(ch)
	s.modified = true

	switch {
	case s.cursor >= end:
		s.cursor += ch.Delta()
	case s.cursor > start:
		s.cursor = ch.NewRange.End
	}
	return ch, nil
}

// InsertText inserts text at the cursor and moves the cursor past it.
func (s *Surface) InsertText(text string) {
	if text == "" {
		return
	}
	at := s.cursor
	ch, err := s.replace(at, at, text)
	if err != nil {
		s.logger.Error("insert failed", "offset", at, "error", err)
		return
	}
	s.cursor = ch.NewRange.End
	s.goalCol = -1
}

// InsertRune inserts a single rune at the cursor.
func (s *Surface) InsertRune(r rune) {
	s.InsertText(string(r))
}

// Newline inserts a line break at the cursor.
func (s *Surface) Newline() {
	s.InsertText("\n")
}

// Backspace deletes the rune before the cursor.
func (s *Surface) Backspace() {
	if s.cursor == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(s.buf.TextRange(max(0, s.cursor-utf8.UTFMax), s.cursor))
	if size == 0 {
		size = 1
	}
	if _, err := s.replace(s.cursor-buffer.ByteOffset(size), s.cursor, ""); err != nil {
		s.logger.Error("backspace failed", "offset", s.cursor, "error", err)
	}
	s.goalCol = -1
}

// DeleteForward deletes the rune under the cursor.
func (s *Surface) DeleteForward() {
	if s.cursor >= s.buf.Len() {
		return
	}
	_, size := utf8.DecodeRuneInString(s.buf.TextRange(s.cursor, s.cursor+utf8.UTFMax))
	if size == 0 {
		size = 1
	}
	if _, err := s.replace(s.cursor, s.cursor+buffer.ByteOffset(size), ""); err != nil {
		s.logger.Error("delete failed", "offset", s.cursor, "error", err)
	}
	s.goalCol = -1
}

// MoveLeft moves the cursor one rune back.
func (s *Surface) MoveLeft() {
	if s.cursor == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(s.buf.TextRange(max(0, s.cursor-utf8.UTFMax), s.cursor))
	s.SetCursor(s.cursor - buffer.ByteOffset(max(size, 1)))
}

// MoveRight moves the cursor one rune forward.
func (s *Surface) MoveRight() {
	if s.cursor >= s.buf.Len() {
		return
	}
	_, size := utf8.DecodeRuneInString(s.buf.TextRange(s.cursor, s.cursor+utf8.UTFMax))
	s.SetCursor(s.cursor + buffer.ByteOffset(max(size, 1)))
}

// MoveUp moves the cursor up n lines, keeping its column where possible.
func (s *Surface) MoveUp(n int) {
	s.moveLines(-n)
}

// MoveDown moves the cursor down n lines, keeping its column where possible.
func (s *Surface) MoveDown(n int) {
	s.moveLines(n)
}

func (s *Surface) moveLines(delta int) {
	p := s.CursorPoint()
	if s.goalCol < 0 {
		s.goalCol = utf8.RuneCountInString(s.buf.LineText(p.Line)[:p.Column])
	}

	target := int(p.Line) + delta
	last := int(s.buf.LineCount()) - 1
	target = max(0, min(target, last))

	line := s.buf.LineText(uint32(target))
	col := byteColumn(line, s.goalCol)
	s.cursor = s.buf.LineStartOffset(uint32(target)) + buffer.ByteOffset(col)
}

// MoveLineStart moves the cursor to the start of its line.
func (s *Surface) MoveLineStart() {
	p := s.CursorPoint()
	s.SetCursor(s.buf.LineStartOffset(p.Line))
}

// MoveLineEnd moves the cursor to the end of its line.
func (s *Surface) MoveLineEnd() {
	p := s.CursorPoint()
	s.SetCursor(s.buf.LineEndOffset(p.Line))
}

// MoveDocumentStart moves the cursor to the start of the document.
func (s *Surface) MoveDocumentStart() {
	s.SetCursor(0)
}

// MoveDocumentEnd moves the cursor to the end of the document.
func (s *Surface) MoveDocumentEnd() {
	s.SetCursor(s.buf.Len())
}

// byteColumn returns the byte offset of the runeCol-th rune in line,
// clamped to the line length.
func byteColumn(line string, runeCol int) int {
	i := 0
	for pos := range line {
		if i == runeCol {
			return pos
		}
		i++
	}
	return len(line)
}
