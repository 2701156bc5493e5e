package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultEndpoint is the Firebase Auth REST API base URL.
const DefaultEndpoint = "https://identitytoolkit.googleapis.com/v1"

// defaultTimeout bounds each credential check.
const defaultTimeout = 15 * time.Second

// FirebaseProvider validates credentials against the Firebase Auth REST API
// (email+password sign-in is only exposed over REST, not the Admin SDK).
type FirebaseProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// FirebaseOption configures a FirebaseProvider.
type FirebaseOption func(*FirebaseProvider)

// WithEndpoint overrides the API base URL. Used by tests.
func WithEndpoint(endpoint string) FirebaseOption {
	return func(p *FirebaseProvider) { p.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) FirebaseOption {
	return func(p *FirebaseProvider) { p.client = client }
}

// NewFirebaseProvider creates a provider for the given web API key.
func NewFirebaseProvider(apiKey string, opts ...FirebaseOption) (*FirebaseProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("firebase API key is required")
	}
	p := &FirebaseProvider{
		apiKey:   apiKey,
		endpoint: DefaultEndpoint,
		client:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type credentialsResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
}

// SignIn authenticates an existing account.
func (p *FirebaseProvider) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	return p.call(ctx, "accounts:signInWithPassword", email, password)
}

// SignUp registers a new account.
func (p *FirebaseProvider) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	return p.call(ctx, "accounts:signUp", email, password)
}

// call posts credentials to one identitytoolkit method. Every failure mode,
// provider rejection and transport error alike, collapses into
// ErrInvalidCredentials.
func (p *FirebaseProvider) call(ctx context.Context, method, email, password string) (*Identity, error) {
	if email == "" || password == "" {
		return nil, &ErrInvalidCredentials{}
	}

	body, err := json.Marshal(credentialsRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, &ErrInvalidCredentials{}
	}

	url := fmt.Sprintf("%s/%s?key=%s", p.endpoint, method, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &ErrInvalidCredentials{}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &ErrInvalidCredentials{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ErrInvalidCredentials{}
	}

	var parsed credentialsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &ErrInvalidCredentials{}
	}
	if parsed.LocalID == "" {
		return nil, &ErrInvalidCredentials{}
	}

	return &Identity{UID: parsed.LocalID, Email: parsed.Email}, nil
}
