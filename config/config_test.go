package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "models", cfg.Models.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MODEL_DIR", "/srv/models")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:8501,http://example.com")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/srv/models", cfg.Models.Dir)
	assert.Equal(t, []string{"http://localhost:8501", "http://example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	// godotenv sets process variables, so register cleanups for them
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")
	t.Setenv("PORT", "7000")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LOG_LEVEL=debug\nPORT=1234\n"), 0644))

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "7000", cfg.Server.Port, "environment should win over the env file")
}

func TestLoadConfigInvalidDuration(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestDefaultFormOptions(t *testing.T) {
	options := DefaultFormOptions()

	assert.Len(t, options.Cities, 16)
	assert.Contains(t, options.Cities, "warszawa")
	assert.ElementsMatch(t, []string{"blockOfFlats", "tenement", "apartmentBuilding"}, options.BuildingTypes)
	assert.ElementsMatch(t, []string{"condominium", "cooperative", "municipal"}, options.Ownerships)
	assert.Contains(t, options.BuildingMaterials, "brick")
	assert.Contains(t, options.Conditions, "unknown")

	// callers get their own copy
	options.Cities[0] = "berlin"
	assert.Equal(t, "szczecin", SupportedCities[0])
}
