package service

import "errors"

var (
	ErrPostNotFound      = errors.New("post not found")
	ErrPostNotEditable   = errors.New("only pending posts can be edited")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrAuthNotConfigured = errors.New("server auth is not configured")
	ErrInvalidSession    = errors.New("invalid or expired session")
)

// ValidationError reports a bad or missing field. Handlers map it to a 400
// with the message passed through, so messages name the field and what was
// wrong with it.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func invalid(msg string) error {
	return &ValidationError{Msg: msg}
}
