package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPaths(t *testing.T) {
	paths, err := DefaultPaths()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".laravel-docker"), paths.HomeDir)
	assert.Equal(t, filepath.Join(home, ".laravel-docker", "config.yaml"), paths.ConfigFile)
}

func TestGetConfigFile_Env(t *testing.T) {
	t.Setenv("LARAVEL_DOCKER_CONFIG", "/custom/config.yaml")

	path, err := GetConfigFile()
	require.NoError(t, err)
	assert.Equal(t, "/custom/config.yaml", path)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"~", home},
		{"~/config.yaml", filepath.Join(home, "config.yaml")},
		{"~other/config.yaml", "~other/config.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	exists, err := FileExists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, os.WriteFile(path, nil, 0o644))
	exists, err = FileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)
}
