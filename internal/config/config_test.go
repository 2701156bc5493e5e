package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("FIREBASE_API_KEY", "firebase-key")
	t.Setenv("SESSION_SECRET", "session-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-key", cfg.GeminiAPIKey)
	assert.Equal(t, "firebase-key", cfg.FirebaseAPIKey)
	assert.Equal(t, "session-secret", cfg.SessionSecret)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultSessionHours, cfg.SessionHours)
	assert.Empty(t, cfg.FirestoreProject)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("FIRESTORE_PROJECT_ID", "launchpad-prod")
	t.Setenv("SESSION_EXPIRATION_HOURS", "8")
	t.Setenv("PORT", "9090")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "launchpad-prod", cfg.FirestoreProject)
	assert.Equal(t, 8, cfg.SessionHours)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{name: "gemini key", unset: "GEMINI_API_KEY"},
		{name: "firebase key", unset: "FIREBASE_API_KEY"},
		{name: "session secret", unset: "SESSION_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.unset, "")

			_, err := Load()

			var ce *ConfigurationError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.unset, ce.Key)
		})
	}
}

func TestLoad_MalformedNumbers(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "not-a-port")

	_, err := Load()

	var ce *ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "PORT", ce.Key)
}

func TestLoad_RejectsZeroExpiration(t *testing.T) {
	setRequired(t)
	t.Setenv("SESSION_EXPIRATION_HOURS", "0")

	_, err := Load()

	var ce *ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "SESSION_EXPIRATION_HOURS", ce.Key)
}
