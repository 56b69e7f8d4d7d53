package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000,https://palabras.example.com")
	t.Setenv("POSTGRES_URL", "postgres://u:p@localhost:5432/db")
	t.Setenv("JWT_KEY", "secret")
}

// unset removes a variable for the test; t.Setenv has already registered the
// restore.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoad(t *testing.T) {
	setRequired(t)
	unset(t, "ADDR")
	unset(t, "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, []string{"http://localhost:3000", "https://palabras.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "postgres://u:p@localhost:5432/db", cfg.PostgresURL)
	assert.Equal(t, "secret", cfg.JWTKey)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenAge)
	assert.False(t, cfg.Debug)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ADDR", ":8080")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.True(t, cfg.Debug)
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, missing := range []string{"ALLOWED_ORIGINS", "POSTGRES_URL", "JWT_KEY"} {
		t.Run(missing, func(t *testing.T) {
			setRequired(t)
			unset(t, missing)

			_, err := Load()
			assert.ErrorContains(t, err, missing)
		})
	}
}
