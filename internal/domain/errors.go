package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("unknown user")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)
