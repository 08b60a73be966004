package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeNotJoined      = "not_joined"
	ErrCodeBadRequest     = "bad_request"
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeRateLimited    = "rate_limited"
	ErrCodeInternal       = "internal_error"
)

var (
	ErrNotJoined  = errors.New("not joined to a room")
	ErrBadRequest = errors.New("bad request")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

// Unwrap maps the error code back to its sentinel so callers can test
// with errors.Is.
func (e *CoreError) Unwrap() error {
	switch e.Code {
	case ErrCodeNotJoined:
		return ErrNotJoined
	case ErrCodeBadRequest:
		return ErrBadRequest
	default:
		return nil
	}
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
