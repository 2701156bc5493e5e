package server

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/SureshMalla-bit/mallalaunchpad/internal/auth"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/store"
)

// CredentialsRequest is the sign-in and sign-up request body.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SessionResponse carries the minted session token.
type SessionResponse struct {
	Token string `json:"token"`
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// handleSignUp registers a new account with the credential provider, mirrors
// it into the user collection, and signs the caller in.
func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	identity, err := s.auth.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, err)
		return
	}

	now := time.Now().UTC()
	if err := s.store.CreateUser(r.Context(), store.UserAccount{
		UID:        identity.UID,
		Email:      identity.Email,
		Joined:     now,
		LastActive: now,
	}); err != nil {
		// The account exists at the provider; the profile document can be
		// recreated on next sign-in, so log and continue.
		log.Printf("Error creating user document for %s: %v", identity.UID, err)
	}

	s.issueSession(w, identity.UID, identity.Email, http.StatusCreated)
}

// handleSignIn authenticates an existing account and mints a session token.
func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	identity, err := s.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, err)
		return
	}

	var notFound *store.NotFoundError
	if err := s.store.TouchActivity(r.Context(), identity.UID); errors.As(err, &notFound) {
		// The mirror write failed during sign-up; recreate the document.
		now := time.Now().UTC()
		if err := s.store.CreateUser(r.Context(), store.UserAccount{
			UID:        identity.UID,
			Email:      identity.Email,
			Joined:     now,
			LastActive: now,
		}); err != nil {
			log.Printf("Error recreating user document for %s: %v", identity.UID, err)
		}
	} else if err != nil {
		log.Printf("Error touching activity for %s: %v", identity.UID, err)
	}

	s.issueSession(w, identity.UID, identity.Email, http.StatusOK)
}

func (s *Server) issueSession(w http.ResponseWriter, uid, email string, status int) {
	token, err := s.sessions.Issue(&auth.Identity{UID: uid, Email: email})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	s.jsonResponse(w, status, SessionResponse{Token: token, UID: uid, Email: email})
}
