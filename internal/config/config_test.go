package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "placenet", cfg.Database.DBName)
	assert.Equal(t, 60*time.Second, cfg.GeneratorTimeout())
	assert.Equal(t, 500*time.Millisecond, cfg.EmailSendDelay())
	assert.Equal(t, 5*time.Minute, cfg.CleanupDelay())
}

func TestLoadConfig_FileAndEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PROVISIONING_CLEANUP_DELAY", "10m")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "8081"
provisioning:
  generator_timeout: 90s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Environment wins over the file.
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 10*time.Minute, cfg.CleanupDelay())
	assert.Equal(t, 90*time.Second, cfg.GeneratorTimeout())
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PROVISIONING_GENERATOR_TIMEOUT", "soon")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
