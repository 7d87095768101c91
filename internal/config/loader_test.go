package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := NewLoader().Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))

		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		content := `
project:
  domain: shop.local
ssl:
  keySize: 2048
container:
  driver: sdk
application:
  environment:
    APP_DEBUG: "true"
    DB_PORT: 6432
log:
  timestamps: false
`
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

		cfg, err := NewLoader().Load(configFile)
		require.NoError(t, err)

		assert.Equal(t, "shop.local", cfg.Project.Domain)
		assert.Equal(t, 2048, cfg.SSL.KeySize)
		assert.Equal(t, 365, cfg.SSL.ValidityDays, "unset keys keep defaults")
		assert.Equal(t, DriverSDK, cfg.Container.Driver)
		assert.Equal(t, "true", cfg.Application.Environment["APP_DEBUG"])
		assert.Equal(t, "6432", cfg.Application.Environment["DB_PORT"])
		assert.Equal(t, "pgsql", cfg.Application.Environment["DB_CONNECTION"])
		require.NotNil(t, cfg.Log.Timestamps)
		assert.False(t, *cfg.Log.Timestamps)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("git:\n  branch: main\n"), 0o644))

		t.Setenv("LARAVEL_DOCKER_GIT_BRANCH", "develop")
		t.Setenv("LARAVEL_DOCKER_SERVICES_SELENIUM_PORT", "5555")
		t.Setenv("LARAVEL_DOCKER_DATABASE_ENABLED", "true")

		cfg, err := NewLoader().Load(configFile)
		require.NoError(t, err)

		assert.Equal(t, "develop", cfg.Git.Branch)
		assert.Equal(t, 5555, cfg.Services.Selenium.Port)
		assert.True(t, cfg.Database.Enabled)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("project: [unclosed\n"), 0o644))

		_, err := NewLoader().Load(configFile)
		assert.Error(t, err)
	})
}

func TestDefaultSettings(t *testing.T) {
	settings := defaultSettings()

	assert.Equal(t, "application.local", settings["project.domain"])
	assert.Equal(t, 4096, settings["ssl.keySize"])
	assert.Equal(t, "pgsql", settings["application.environment.DB_CONNECTION"])
	assert.NotContains(t, settings, "log.timestamps")
}
