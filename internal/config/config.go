// Package config loads the server configuration from environment variables.
// Secrets come from the environment (or a .env file loaded by the CLI), never
// from files checked into the repository.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultPort is the HTTP listen port when PORT is not set.
const DefaultPort = 8080

// DefaultSessionHours is the session token lifetime when
// SESSION_EXPIRATION_HOURS is not set.
const DefaultSessionHours = 24

// ConfigurationError indicates a required environment variable is missing or
// malformed.
type ConfigurationError struct {
	Key     string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Key, e.Message)
}

// Config holds everything the server needs to start.
type Config struct {
	// GeminiAPIKey authenticates calls to the generative model.
	GeminiAPIKey string
	// GeminiModel overrides the default model name. Optional.
	GeminiModel string
	// FirebaseAPIKey is the Identity Toolkit web API key used for
	// email/password sign-in.
	FirebaseAPIKey string
	// FirestoreProject selects the Firestore project. When empty the server
	// falls back to the in-memory store, which is only useful for local
	// development.
	FirestoreProject string
	// SessionSecret signs session tokens.
	SessionSecret string
	// SessionHours is the session token lifetime.
	SessionHours int
	// AdminEmail marks which account may read the analytics dashboard.
	// Optional; when empty the dashboard is disabled.
	AdminEmail string
	// Port is the HTTP listen port.
	Port int
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      os.Getenv("GEMINI_MODEL"),
		FirebaseAPIKey:   os.Getenv("FIREBASE_API_KEY"),
		FirestoreProject: os.Getenv("FIRESTORE_PROJECT_ID"),
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		SessionHours:     DefaultSessionHours,
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		Port:             DefaultPort,
	}

	if s := os.Getenv("SESSION_EXPIRATION_HOURS"); s != "" {
		hours, err := strconv.Atoi(s)
		if err != nil {
			return nil, &ConfigurationError{Key: "SESSION_EXPIRATION_HOURS", Message: "must be an integer"}
		}
		cfg.SessionHours = hours
	}
	if s := os.Getenv("PORT"); s != "" {
		port, err := strconv.Atoi(s)
		if err != nil {
			return nil, &ConfigurationError{Key: "PORT", Message: "must be an integer"}
		}
		cfg.Port = port
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.GeminiAPIKey == "" {
		return &ConfigurationError{Key: "GEMINI_API_KEY", Message: "is required but not set"}
	}
	if c.FirebaseAPIKey == "" {
		return &ConfigurationError{Key: "FIREBASE_API_KEY", Message: "is required but not set"}
	}
	if c.SessionSecret == "" {
		return &ConfigurationError{Key: "SESSION_SECRET", Message: "is required but not set"}
	}
	if c.SessionHours < 1 {
		return &ConfigurationError{Key: "SESSION_EXPIRATION_HOURS", Message: "must be at least 1"}
	}
	if c.Port < 1 || c.Port > 65535 {
		return &ConfigurationError{Key: "PORT", Message: "must be a valid TCP port"}
	}
	return nil
}
