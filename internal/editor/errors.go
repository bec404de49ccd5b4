package editor

import (
	"errors"
	"fmt"
)

// ErrFileIO indicates a document could not be read or written.
var ErrFileIO = errors.New("file i/o failed")

// FileError describes a failed open or save.
type FileError struct {
	Op   string // "open" or "save"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Is matches ErrFileIO as well as the wrapped error.
func (e *FileError) Is(target error) bool {
	return target == ErrFileIO
}
