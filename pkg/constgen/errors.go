package constgen

import (
	"errors"
	"fmt"
)

// ErrUsage is returned when the output base or the input list is missing.
// It is detected before any file is touched.
var ErrUsage = errors.New("an output base and at least one input file are required")

// InputError reports an input file that could not be opened or read.
// Output written for earlier inputs is left on disk.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("read input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// OutputError reports an artifact that could not be created, written or closed.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("write artifact %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }
