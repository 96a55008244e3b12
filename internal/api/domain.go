package api

import "errors"

// Sentinel errors shared across feature packages. Services return these
// (wrapped) and handlers map them to HTTP status codes.
var (
	ErrNotFound        = errors.New("requested item not found")
	ErrConflict        = errors.New("item already exists or conflict")
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
	ErrForbidden       = errors.New("action forbidden")
	ErrValidation      = errors.New("validation failed")
	ErrInternal        = errors.New("internal error")
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

func SuccessResult(data interface{}, message string) Response {
	return Response{Success: true, Message: message, Data: data}
}

func ErrorResult(message string, errs ...string) Response {
	return Response{Success: false, Message: message, Errors: errs}
}
