package extract

import (
	"errors"
	"fmt"
)

// ErrNoTextExtracted is returned when a supported file yields only whitespace.
var ErrNoTextExtracted = errors.New("no text could be extracted from the file")

// UnsupportedTypeError reports a file extension outside the allowed set.
type UnsupportedTypeError struct {
	Ext string
}

func (e *UnsupportedTypeError) Error() string {
	ext := e.Ext
	if ext == "" {
		ext = "unknown"
	}
	return fmt.Sprintf("unsupported file type: %s", ext)
}

// UnreadableError wraps a parser failure for a file with a supported extension.
type UnreadableError struct {
	Ext string
	Err error
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("read %s document: %v", e.Ext, e.Err)
}

func (e *UnreadableError) Unwrap() error { return e.Err }

// IsUnsupported reports whether err carries an UnsupportedTypeError.
func IsUnsupported(err error) bool {
	var target *UnsupportedTypeError
	return errors.As(err, &target)
}

// IsUnreadable reports whether err carries an UnreadableError.
func IsUnreadable(err error) bool {
	var target *UnreadableError
	return errors.As(err, &target)
}
