// Package server provides the HTTP REST API for the response library.
package server

import (
	"errors"
	"net/http"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/library"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/practice"
)

// ErrEmailAlreadyExists indicates an email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return "email already registered: " + e.Email
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Feedback-generation failures never reach here; they resolve to fallback
// payloads inside the feedback package.
func HTTPStatus(err error) int {
	var (
		libValidation      *library.ValidationError
		libNotFound        *library.NotFoundError
		libConflict        *library.ConflictError
		practiceValidation *practice.ValidationError
		practiceNotFound   *practice.NotFoundError
		emailExists        *ErrEmailAlreadyExists
		invalidCreds       *ErrInvalidCredentials
	)

	switch {
	case errors.As(err, &libValidation), errors.As(err, &practiceValidation):
		return http.StatusBadRequest
	case errors.As(err, &libNotFound), errors.As(err, &practiceNotFound):
		return http.StatusNotFound
	case errors.As(err, &libConflict), errors.As(err, &emailExists):
		return http.StatusConflict
	case errors.As(err, &invalidCreds):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
