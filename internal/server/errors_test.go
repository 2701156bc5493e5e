package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SureshMalla-bit/mallalaunchpad/internal/assist"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/auth"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/discover"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/extract"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/llm"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/store"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"bad request", &ErrBadRequest{Message: "nope"}, http.StatusBadRequest},
		{"assist validation", &assist.ValidationError{Field: "role"}, http.StatusBadRequest},
		{"unknown stage", &store.UnknownStageError{Stage: "Ghosted"}, http.StatusBadRequest},
		{"discover validation", &discover.ValidationError{Field: "role"}, http.StatusBadRequest},
		{"invalid credentials", &auth.ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"invalid session", &auth.ErrInvalidSession{}, http.StatusUnauthorized},
		{"forbidden", &ErrForbidden{}, http.StatusForbidden},
		{"record not found", &store.NotFoundError{Kind: "job", ID: "x"}, http.StatusNotFound},
		{"interview not found", &assist.SessionNotFoundError{SessionID: "x"}, http.StatusNotFound},
		{"no listings", &discover.NoListingsError{URL: "u"}, http.StatusNotFound},
		{"unsupported format", &extract.UnsupportedFormatError{DeclaredType: "docx"}, http.StatusUnsupportedMediaType},
		{"parse failure", &extract.ParseError{Cause: errors.New("bad xref")}, http.StatusUnprocessableEntity},
		{"model failure", &llm.ServiceError{Cause: errors.New("quota")}, http.StatusBadGateway},
		{"fetch failure", &discover.FetchError{URL: "u", Message: "timeout"}, http.StatusBadGateway},
		{"store failure", &store.ServiceError{Op: "list", Cause: errors.New("rpc")}, http.StatusInternalServerError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestHTTPStatus_Wrapped(t *testing.T) {
	err := fmt.Errorf("handling request: %w", &store.NotFoundError{Kind: "job", ID: "x"})
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}
