package models

import "errors"

// Error kinds shared by the services. Handlers map them to HTTP status codes.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrBadRequest = errors.New("bad request")
)

// Error is a service error of a known kind carrying a client-facing message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func NotFound(message string) error { return &Error{Kind: ErrNotFound, Message: message} }

func Conflict(message string) error { return &Error{Kind: ErrConflict, Message: message} }

func BadRequest(message string) error { return &Error{Kind: ErrBadRequest, Message: message} }
