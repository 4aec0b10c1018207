package util

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")

	ErrInvalidCredentials = &domainError{"invalid credentials", ErrUnauthorized}
	ErrSessionExpired     = &domainError{"session expired", ErrUnauthorized}
	ErrNotProblemOwner    = &domainError{"problem belongs to another user", ErrForbidden}
	ErrUserNotFound       = &domainError{"user not found", ErrNotFound}
	ErrProblemNotFound    = &domainError{"problem not found", ErrNotFound}
	ErrEmailRegistered    = &domainError{"email already registered", ErrConflict}
)

// domainError carries a caller-facing message and the category it belongs to.
type domainError struct {
	msg  string
	kind error
}

func (e *domainError) Error() string { return e.msg }

func (e *domainError) Unwrap() error { return e.kind }

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Validationf builds an ErrValidation with a caller-facing message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
