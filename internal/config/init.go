package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	oerrors "github.com/merchant-prince/laravel-docker/internal/errors"
)

const fileHeader = "# laravel-docker configuration\n" +
	"# Environment variables prefixed with LARAVEL_DOCKER_ override these values,\n" +
	"# e.g. LARAVEL_DOCKER_CONTAINER_DRIVER=sdk.\n\n"

// WriteDefault writes the default configuration to path. An existing file
// is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	exists, err := FileExists(path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if exists && !force {
		return oerrors.NewConflictError(
			fmt.Sprintf("config file already exists at %s", path),
			path,
			"Use --force to overwrite it",
		)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(fileHeader), data...), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
