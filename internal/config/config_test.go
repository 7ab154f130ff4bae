package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setSecrets(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "tg-token")
	t.Setenv("API_ACCESS_TOKEN", "api-token")
	t.Setenv("DATABASE_URL", "postgres://localhost/picktoss")
}

func TestLoadDefaults(t *testing.T) {
	setSecrets(t)
	dir := t.TempDir()

	cfg, err := load(dir, filepath.Join(dir, ".env"))
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "tg-token", cfg.Telegram.Token)
	assert.Equal(t, "api-token", cfg.API.AccessToken)
	assert.Equal(t, 3, cfg.API.MaxRetries)
	assert.Equal(t, 1500*time.Millisecond, cfg.Quiz.IntroDuration)
	assert.Equal(t, 600*time.Millisecond, cfg.Quiz.RevealDelay)
	assert.Equal(t, time.Second, cfg.Quiz.TickResolution)
	assert.Equal(t, 4*time.Second, cfg.Pick.PollInterval)
	assert.Equal(t, 5*time.Minute, cfg.Pick.PollTimeout)
	assert.Equal(t, "0 9 * * *", cfg.Daily.Schedule)
	assert.Equal(t, 10, cfg.Daily.MaxConcurrent)
	assert.Equal(t, 20, cfg.DB.MaxConnections)

	dsn, err := cfg.DB.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/picktoss", dsn)
}

func TestLoadFileAndEnvironment(t *testing.T) {
	setSecrets(t)
	t.Setenv("QUIZ_REVEAL_DELAY", "1s")
	dir := t.TempDir()

	yaml := []byte("env: production\nquiz:\n  intro_duration: 2s\n  reveal_delay: 300ms\ndaily:\n  max_concurrent: 4\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("REDIS_PASSWORD=secret\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("REDIS_PASSWORD") })

	cfg, err := load(dir, filepath.Join(dir, ".env"))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 2*time.Second, cfg.Quiz.IntroDuration)
	assert.Equal(t, time.Second, cfg.Quiz.RevealDelay)
	assert.Equal(t, 4, cfg.Daily.MaxConcurrent)
	assert.Equal(t, "secret", cfg.Redis.Password)
}

func TestLoadMissingSecrets(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "")
	t.Setenv("API_ACCESS_TOKEN", "")
	t.Setenv("DATABASE_URL", "")
	dir := t.TempDir()

	_, err := load(dir, filepath.Join(dir, ".env"))
	require.ErrorIs(t, err, ErrMissingEnvironmentVariables)
	assert.Contains(t, err.Error(), "API_ACCESS_TOKEN")
}
