package stage

import (
	"fmt"

	"github.com/kompass-sh/sjq/internal/value"
)

// NotANumberError is returned when Sum or Mean resolves path to a value
// that is not a JSON number.
type NotANumberError struct {
	Path string
	Got value.Kind
}

func (e *NotANumberError) Error() string {
	return fmt.Sprintf("value at %s is not a number (kind=%d)", e.Path, e.Got)
}

// NotAnObjectError is returned when AddField is ingested a non-object
// value.
type NotAnObjectError struct {
	Got value.Kind
}

func (e *NotAnObjectError) Error() string {
	return fmt.Sprintf("add_field requires an object input, got kind=%d", e.Got)
}

// MissingValueError is returned by Sum or Mean in strict mode when path
// does not resolve against the input.
type MissingValueError struct {
	Path string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("missing value at %s", e.Path)
}

// WriteFailureError wraps an underlying I/O error from a Write stage's
// sink.
type WriteFailureError struct {
	Err error
}

func (e *WriteFailureError) Error() string { return fmt.Sprintf("write failure: %v", e.Err) }
func (e *WriteFailureError) Unwrap() error { return e.Err }
