package app

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{"nil error", nil, ""},
		{"op only", &OperationError{Op: "save"}, "save"},
		{"op and target", &OperationError{Op: "open", Target: "/path/file.txt"}, "open /path/file.txt"},
		{
			"full chain",
			&OperationError{Op: "open", Target: "/path/file.txt", Err: errors.New("io error")},
			"open /path/file.txt: io error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	err := NewOperationError("save", "a.txt", os.ErrPermission)
	assert.ErrorIs(t, err, os.ErrPermission)

	var nilErr *OperationError
	assert.NoError(t, nilErr.Unwrap())
}

func TestComponentError(t *testing.T) {
	base := errors.New("no tty")
	err := NewComponentError("backend", "init", base)

	assert.Equal(t, "backend: init: no tty", err.Error())
	assert.ErrorIs(t, err, base)
	assert.ErrorIs(t, err, ErrInitialization)

	other := NewComponentError("watcher", "close", nil)
	assert.Equal(t, "watcher: close", other.Error())
	assert.False(t, errors.Is(other, ErrInitialization))
	assert.Equal(t, "worker", (&ComponentError{Component: "worker"}).Error())
}

func TestRecoveredPanicError(t *testing.T) {
	assert.Equal(t, "panic: boom", (&RecoveredPanicError{Value: "boom"}).Error())
	assert.Equal(t, "panic: boom\nstack", (&RecoveredPanicError{Value: "boom", Stack: "stack"}).Error())
}

func TestUnwrapPathError(t *testing.T) {
	_, err := os.Open("/definitely/not/here")
	assert.ErrorIs(t, unwrapPathError(err), os.ErrNotExist)
	assert.NotContains(t, unwrapPathError(err).Error(), "/definitely")

	plain := errors.New("plain")
	assert.Equal(t, plain, unwrapPathError(plain))
}
