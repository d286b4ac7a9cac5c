package domain

import "errors"

// Error kinds. Every error that should reach the client with a status other
// than 500 wraps one of these.
var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Error pairs a kind with the message shown to the caller.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Validation returns an ErrValidation with a client-facing message.
func Validation(msg string) error { return &Error{Kind: ErrValidation, Message: msg} }

// Conflict returns an ErrConflict with a client-facing message.
func Conflict(msg string) error { return &Error{Kind: ErrConflict, Message: msg} }

// NotFound returns an ErrNotFound with a client-facing message.
func NotFound(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }
