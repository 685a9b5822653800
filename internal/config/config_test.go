package config_test

import (
	"os"
	"testing"
	"time"

	"tasktracker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Arrange
	chdir(t, t.TempDir())
	for _, key := range []string{"DB_HOST", "DB_PORT", "SERVER_PORT", "PORT", "JWT_EXPIRY", "REDIS_ADDR", "APP_TIMEZONE"} {
		t.Setenv(key, "")
	}

	// Act
	cfg, err := config.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.DBAutoMigrate)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_FromEnvironment(t *testing.T) {
	// Arrange
	chdir(t, t.TempDir())
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PORT", "8081")
	t.Setenv("JWT_EXPIRY", "90m")
	t.Setenv("DB_DEBUG", "true")
	t.Setenv("APP_TIMEZONE", "America/Bogota")

	// Act
	cfg, err := config.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "8081", cfg.ServerPort)
	assert.Equal(t, 90*time.Minute, cfg.JWTExpiry)
	assert.True(t, cfg.DBDebug)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Bogota", loc.String())
}

func TestLoad_InvalidTimezone(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")

	_, err := config.Load()

	assert.ErrorContains(t, err, "APP_TIMEZONE")
}

func TestDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost: "h", DBPort: "1", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "require",
	}

	assert.Equal(t, "host=h port=1 user=u password=p dbname=n sslmode=require", cfg.DSN())
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
