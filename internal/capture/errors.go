package capture

import (
	"errors"
	"fmt"
)

var (
	// ErrPermissionDenied indicates the recorder was refused access to the
	// camera or microphone.
	ErrPermissionDenied = errors.New("capture permission denied")
	// ErrDeviceUnavailable indicates the device is missing, busy, or cannot
	// satisfy the requested constraints.
	ErrDeviceUnavailable = errors.New("capture device unavailable")
	// ErrAlreadyRecording indicates Start was called while a recording is
	// active. Starting twice is rejected rather than treated as a no-op.
	ErrAlreadyRecording = errors.New("capture already recording")
)

// Error wraps recorder failures with the operation that produced them. All
// start failures unwrap to ErrPermissionDenied or ErrDeviceUnavailable so
// callers can present a retry-capable message.
type Error struct {
	Op    string
	Cause string
	Err   error
}

func (e *Error) Error() string {
	if e.Cause != "" {
		return fmt.Sprintf("capture %s: %s: %v", e.Op, e.Cause, e.Err)
	}
	return fmt.Sprintf("capture %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(op, cause string, err error) *Error {
	return &Error{Op: op, Cause: cause, Err: err}
}
