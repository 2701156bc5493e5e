package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SureshMalla-bit/mallalaunchpad/internal/auth"
)

func TestHandleSignUp(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/auth/signup", "", CredentialsRequest{
		Email:    "a@example.com",
		Password: "secret123",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeBody[SessionResponse](t, w)
	assert.Equal(t, "uid-1", resp.UID)
	assert.Equal(t, "a@example.com", resp.Email)
	assert.NotEmpty(t, resp.Token)

	// The minted token must be accepted by the session middleware.
	session, err := env.sessions.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", session.UID)

	// Sign-up mirrors the account into the user collection.
	users, err := env.store.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "a@example.com", users[0].Email)
	assert.False(t, users[0].Joined.IsZero())
}

func TestHandleSignIn(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/auth/signin", "", CredentialsRequest{
		Email:    "a@example.com",
		Password: "secret123",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[SessionResponse](t, w)
	assert.NotEmpty(t, resp.Token)
}

func TestHandleSignIn_RecreatesMissingUserDocument(t *testing.T) {
	env := newTestEnv(t)

	// No sign-up happened, so the user collection has no document for the
	// authenticated account.
	w := env.request(t, http.MethodPost, "/auth/signin", "", CredentialsRequest{
		Email:    "a@example.com",
		Password: "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	users, err := env.store.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "uid-1", users[0].UID)
	assert.Equal(t, "a@example.com", users[0].Email)
	assert.False(t, users[0].LastActive.IsZero())
}

func TestHandleSignIn_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.provider.identity = nil
	env.provider.err = &auth.ErrInvalidCredentials{}

	w := env.request(t, http.MethodPost, "/auth/signin", "", CredentialsRequest{
		Email:    "a@example.com",
		Password: "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeBody[map[string]string](t, w)
	assert.Equal(t, "invalid email or password", resp["error"])
}

func TestHandleSignIn_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body CredentialsRequest
	}{
		{name: "missing email", body: CredentialsRequest{Password: "secret123"}},
		{name: "malformed email", body: CredentialsRequest{Email: "not-an-email", Password: "secret123"}},
		{name: "short password", body: CredentialsRequest{Email: "a@example.com", Password: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.request(t, http.MethodPost, "/auth/signin", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandleSignUp_InvalidBody(t *testing.T) {
	env := newTestEnv(t)

	req, w := rawRequest(t, http.MethodPost, "/auth/signup", `{not json`)
	env.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
