package domain

import "github.com/pkg/errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrUnauthorized       = errors.New("Unauthorized")
	ErrForbidden          = errors.New("Forbidden")
	ErrIDMismatch         = errors.New("Todo id mismatch")
)

// NotFoundError names the missing resource; it matches ErrNotFound.
type NotFoundError struct {
	Resource string
}

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError carries a client-facing message; it matches ErrConflict.
type ConflictError struct {
	Message string
}

func Conflict(message string) error {
	return &ConflictError{Message: message}
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// BadRequestError is a rule violation that is not a field validation issue.
type BadRequestError struct {
	Message string
}

func BadRequest(message string) error {
	return &BadRequestError{Message: message}
}

func (e *BadRequestError) Error() string { return e.Message }
