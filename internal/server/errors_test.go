package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/library"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/practice"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "library validation error",
			err:  &library.ValidationError{Field: "response_text", Message: "must not be empty"},
			want: http.StatusBadRequest,
		},
		{
			name: "practice validation error",
			err:  &practice.ValidationError{Field: "practice_text", Message: "must not be empty"},
			want: http.StatusBadRequest,
		},
		{
			name: "library not found",
			err:  &library.NotFoundError{Resource: "response", ID: uuid.Nil.String()},
			want: http.StatusNotFound,
		},
		{
			name: "practice not found",
			err:  &practice.NotFoundError{ResponseID: uuid.Nil},
			want: http.StatusNotFound,
		},
		{
			name: "conflict",
			err:  &library.ConflictError{Message: "version number collision"},
			want: http.StatusConflict,
		},
		{
			name: "email already registered",
			err:  &ErrEmailAlreadyExists{Email: "a@example.com"},
			want: http.StatusConflict,
		},
		{
			name: "invalid credentials",
			err:  &ErrInvalidCredentials{},
			want: http.StatusUnauthorized,
		},
		{
			name: "wrapped not found",
			err:  fmt.Errorf("handling request: %w", &library.NotFoundError{Resource: "version", ID: uuid.Nil.String()}),
			want: http.StatusNotFound,
		},
		{
			name: "unknown error",
			err:  errors.New("database exploded"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
