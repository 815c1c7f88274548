package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 120, cfg.OTPTTLSeconds)
	assert.Equal(t, "cookie", cfg.SessionStore)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("db_driver: postgres\ndb_port: \"5432\"\notp_ttl_seconds: 300\nserver_port: \"9000\"\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, 300, cfg.OTPTTLSeconds)
	assert.Equal(t, "9100", cfg.ServerPort)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetEnvInt_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("JWT_TTL_MINUTES", "soon")
	assert.Equal(t, 60, getEnvInt("JWT_TTL_MINUTES", 60))
}

func TestLoad_AdminBootstrap(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ADMIN_EMAIL", "root@example.com")
	t.Setenv("ADMIN_PASSWORD", "admin-password")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", cfg.AdminEmail)
	assert.Equal(t, "admin-password", cfg.AdminPassword)
}
