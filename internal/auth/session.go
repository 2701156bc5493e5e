package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the explicit per-login context object. It is created at login,
// carried as a signed token, and destroyed at logout; no process-wide state.
type Session struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// Claims are the JWT claims backing a session token.
type Claims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionService mints and verifies session tokens.
type SessionService struct {
	secret     []byte
	expiration time.Duration
}

// NewSessionService creates a session service signing with the given secret.
func NewSessionService(secret string, expiration time.Duration) (*SessionService, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}
	return &SessionService{secret: []byte(secret), expiration: expiration}, nil
}

// Issue mints a signed session token for an authenticated identity.
func (s *SessionService) Issue(identity *Identity) (string, error) {
	now := time.Now()
	claims := &Claims{
		UID:   identity.UID,
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify validates a session token and returns the session it carries.
func (s *SessionService) Verify(tokenString string) (*Session, error) {
	if tokenString == "" {
		return nil, &ErrInvalidSession{}
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, &ErrInvalidSession{}
	}

	return &Session{UID: claims.UID, Email: claims.Email}, nil
}
