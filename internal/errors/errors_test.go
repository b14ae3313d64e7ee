package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	err = Newf("formatted %s", "error")
	assert.Equal(t, "formatted error", err.Error())

	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())
	assert.Equal(t, origErr, Unwrap(wrappedErr))

	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	// Wrapping nil returns nil
	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())
	assert.True(t, Is(deepWrapped, origErr))
}

func TestFileError(t *testing.T) {
	fileErr := NewFileError("cannot copy", "/path/to/a.jpg", CopyFailed, nil)
	assert.Equal(t, "cannot copy: /path/to/a.jpg", fileErr.Error())
	assert.Equal(t, "/path/to/a.jpg", fileErr.Path())
	assert.Equal(t, CopyFailed, fileErr.Kind())

	origErr := fmt.Errorf("disk full")
	fileErr = NewFileError("cannot copy", "/path/to/a.jpg", CopyFailed, origErr)
	assert.Equal(t, "cannot copy: /path/to/a.jpg: disk full", fileErr.Error())
	assert.Equal(t, origErr, Unwrap(fileErr))

	assert.Equal(t, "file not found", ErrFileNotFound.Error())
	assert.Equal(t, FileNotFound, ErrFileNotFound.Kind())

	notFoundErr := NewFileError("file not found", "/missing/file", FileNotFound, nil)
	assert.True(t, IsFileNotFound(notFoundErr))
	assert.False(t, IsFileNotFound(fileErr))
	assert.False(t, IsFileAccessDenied(fileErr))
}

func TestIoErrorClass(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		io   bool
	}{
		{DirCreateFailed, true},
		{CopyFailed, true},
		{MoveFailed, true},
		{DeleteFailed, true},
		{DestinationExists, true},
		{FileNotFound, false},
		{InvalidConfig, false},
		{Unknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := Wrap(NewFileError("op", "/x", tt.kind, fs.ErrPermission), "context")
			assert.Equal(t, tt.io, IsIoError(err))
			assert.Equal(t, tt.kind, KindOf(err))
			assert.True(t, Is(err, fs.ErrPermission))
		})
	}

	assert.False(t, IsIoError(errors.New("plain")))
	assert.False(t, IsIoError(nil))
}

func TestConfigError(t *testing.T) {
	configErr := NewConfigError("invalid value", "collision", InvalidConfig, nil)
	assert.Equal(t, "invalid value: collision", configErr.Error())
	assert.Equal(t, "collision", configErr.Param())
	assert.Equal(t, InvalidConfig, configErr.Kind())

	origErr := fmt.Errorf("unknown strategy")
	configErr = NewConfigError("invalid value", "collision", InvalidConfig, origErr)
	assert.Equal(t, "invalid value: collision: unknown strategy", configErr.Error())

	assert.True(t, IsInvalidConfig(configErr))
	assert.False(t, IsInvalidConfig(New("some other error")))
	assert.Equal(t, InvalidConfig, KindOf(configErr))
}

func TestErrorChains(t *testing.T) {
	baseErr := errors.New("base error")
	fileErr := NewFileError("file error", "/path/to/file", MoveFailed, baseErr)
	configErr := NewConfigError("config error", "slots", InvalidConfig, fileErr)

	assert.Equal(t, "config error: slots: file error: /path/to/file: base error", configErr.Error())
	assert.True(t, Is(configErr, baseErr))
	assert.True(t, Is(configErr, fileErr))

	var fe *FileError
	assert.True(t, As(configErr, &fe))
	assert.Equal(t, "/path/to/file", fe.Path())

	assert.True(t, IsIoError(configErr))
	assert.True(t, IsInvalidConfig(configErr))
}
