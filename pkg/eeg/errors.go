package eeg

import "errors"

// Error represents a pipeline error with a stable code.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeShape          = "SHAPE_MISMATCH"
	ErrCodeWindowTooShort = "WINDOW_TOO_SHORT"
	ErrCodeUnknownChannel = "UNKNOWN_CHANNEL"
	ErrCodeBadPacket      = "BAD_PACKET"
	ErrCodeBadConfig      = "BAD_CONFIG"
)

// NewError creates a new pipeline error.
func NewError(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsCode reports whether err (or anything it wraps) carries the code.
func IsCode(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
