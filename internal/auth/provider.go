// Package auth gates the application behind an external credential provider.
// Credential validation is delegated entirely to Firebase Auth; this package
// never stores or hashes a password. Successful sign-in yields an explicit
// session object carried through request contexts.
package auth

import (
	"context"
)

// Identity is what the credential provider returns on success.
type Identity struct {
	UID   string
	Email string
}

// Provider validates email+password credentials against an external service.
type Provider interface {
	// SignIn authenticates an existing account.
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	// SignUp registers a new account.
	SignUp(ctx context.Context, email, password string) (*Identity, error)
}

// ErrInvalidCredentials is the single undifferentiated failure returned for
// any sign-in or sign-up problem. Callers cannot tell wrong-password from
// account-not-found, deliberately.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrInvalidSession indicates a missing, malformed or expired session token.
type ErrInvalidSession struct{}

func (e *ErrInvalidSession) Error() string {
	return "invalid or expired session"
}
