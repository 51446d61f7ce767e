package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork indicates the scoring endpoint was unreachable.
	ErrNetwork = errors.New("analysis endpoint unreachable")
	// ErrService indicates the endpoint answered with an explicit error.
	ErrService = errors.New("analysis service error")
	// ErrMalformed indicates the response lacked the required score fields.
	ErrMalformed = errors.New("malformed analysis response")
)

// Error carries a human-readable cause alongside the failure class. The
// caller surfaces Cause to the user and never retries automatically;
// resubmission is always a fresh user-initiated call.
type Error struct {
	Cause string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("analysis failed: %s", e.Cause)
}

func (e *Error) Unwrap() error { return e.Err }

func failed(kind error, format string, args ...any) *Error {
	return &Error{Cause: fmt.Sprintf(format, args...), Err: kind}
}
