// Package handlers orchestrates the domain services behind each CLI
// command.
package handlers

import (
	"errors"
	"fmt"
)

// PreconditionError marks a failure the user can fix: a missing input
// file, an out-of-range flag, no usable placement candidate. The CLI maps
// it to exit code 2 and writes no output file.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string {
	return e.Msg
}

func preconditionf(format string, args ...any) error {
	return &PreconditionError{Msg: fmt.Sprintf(format, args...)}
}

// IsPrecondition reports whether err is (or wraps) a precondition failure.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}
