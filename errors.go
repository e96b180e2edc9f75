package sublayout

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	// Configuration errors, reported before any host mutation.
	ErrCodeAnchorsWithoutView Code = "ANCHORS_WITHOUT_VIEW"
	ErrCodeDanglingAnchor     Code = "DANGLING_ANCHOR"
	ErrCodeMissingSuperview   Code = "MISSING_SUPERVIEW"
	ErrCodeDuplicateView      Code = "DUPLICATE_VIEW"
	ErrCodeCycle              Code = "CYCLE"

	// ErrCodeReuse marks use of an activation after teardown.
	ErrCodeReuse Code = "REUSE"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error with the same code, so a bare &Error{Code: c}
// works as a target for errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Is reports whether err carries code.
func Is(err error, code Code) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

// IsConfiguration reports whether err is a construction-time layout error.
func IsConfiguration(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Code {
	case ErrCodeAnchorsWithoutView, ErrCodeDanglingAnchor, ErrCodeMissingSuperview, ErrCodeDuplicateView, ErrCodeCycle:
		return true
	}
	return false
}

// IsReuse reports whether err comes from a torn-down activation.
func IsReuse(err error) bool {
	return Is(err, ErrCodeReuse)
}
