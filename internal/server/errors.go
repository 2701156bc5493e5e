package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SureshMalla-bit/mallalaunchpad/internal/assist"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/auth"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/beautify"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/discover"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/extract"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/llm"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/store"
)

// ErrBadRequest indicates a malformed or invalid request body.
type ErrBadRequest struct {
	Message string
}

func (e *ErrBadRequest) Error() string {
	return e.Message
}

// ErrForbidden indicates the authenticated user may not access the resource.
type ErrForbidden struct{}

func (e *ErrForbidden) Error() string {
	return "forbidden"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		badRequest      *ErrBadRequest
		forbidden       *ErrForbidden
		credentials     *auth.ErrInvalidCredentials
		session         *auth.ErrInvalidSession
		assistInput     *assist.ValidationError
		beautifyInput   *beautify.ValidationError
		discoverInput   *discover.ValidationError
		unknownStage    *store.UnknownStageError
		notFound        *store.NotFoundError
		sessionNotFound *assist.SessionNotFoundError
		noListings      *discover.NoListingsError
		unsupported     *extract.UnsupportedFormatError
		parseFailure    *extract.ParseError
		modelFailure    *llm.ServiceError
		fetchFailure    *discover.FetchError
		storeFailure    *store.ServiceError
	)

	switch {
	case errors.As(err, &badRequest),
		errors.As(err, &assistInput),
		errors.As(err, &beautifyInput),
		errors.As(err, &discoverInput),
		errors.As(err, &unknownStage):
		return http.StatusBadRequest
	case errors.As(err, &credentials), errors.As(err, &session):
		return http.StatusUnauthorized
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &notFound),
		errors.As(err, &sessionNotFound),
		errors.As(err, &noListings):
		return http.StatusNotFound
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &parseFailure):
		return http.StatusUnprocessableEntity
	case errors.As(err, &modelFailure), errors.As(err, &fetchFailure):
		return http.StatusBadGateway
	case errors.As(err, &storeFailure):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// requireField is a small helper for handlers that validate non-struct
// inputs, keeping the error format consistent with DTO validation.
func requireField(name, value string) error {
	if value == "" {
		return &ErrBadRequest{Message: fmt.Sprintf("field %s is required", name)}
	}
	return nil
}
