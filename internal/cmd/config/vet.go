package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/merchant-prince/laravel-docker/internal/cmdtypes"
	"github.com/merchant-prince/laravel-docker/internal/config"
	oerrors "github.com/merchant-prince/laravel-docker/internal/errors"
	"github.com/merchant-prince/laravel-docker/internal/templates"
)

func newVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the configuration file",
		Long: `Validate the laravel-docker configuration file against the internal schema.

Unknown keys and wrongly typed values in the file are reported, as are values
of the effective configuration (file plus LARAVEL_DOCKER_* overrides) that are
out of range.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runVet(c, cfg)
		},
	}
}

func runVet(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	path, err := config.ExpandPath(cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	validator, err := config.NewValidator()
	if err != nil {
		return fmt.Errorf("creating validator: %w", err)
	}

	if err := validator.ValidateFile(path); err != nil {
		var validationErrs config.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			fmt.Fprintln(c.ErrOrStderr(), "Error: config validation failed")
			fmt.Fprintf(c.ErrOrStderr(), "  File: %s\n\n", path)
			for _, e := range validationErrs {
				fmt.Fprintf(c.ErrOrStderr(), "  %s: %s\n", e.Field, e.Message)
			}
			return &cmdtypes.ExitError{Err: err, Code: cmdtypes.ExitValidationError, Printed: true}
		case errors.Is(err, fs.ErrNotExist):
			return cmdtypes.NewExitError(
				oerrors.NewNotFoundError("config file not found: "+path, path, "Run 'laravel-docker config init' to create it"),
				cmdtypes.ExitNotFound,
			)
		}
		return fmt.Errorf("validating config: %w", err)
	}

	if err := vetTemplates(path); err != nil {
		fmt.Fprintln(c.ErrOrStderr(), "Error: config validation failed")
		fmt.Fprintf(c.ErrOrStderr(), "  File: %s\n\n", path)
		fmt.Fprintf(c.ErrOrStderr(), "  %s\n", err)
		return &cmdtypes.ExitError{Err: err, Code: cmdtypes.ExitValidationError, Printed: true}
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file is valid: %s\n", path)
	return nil
}

// vetTemplates checks that a configured templates directory provides every
// template a project needs.
func vetTemplates(path string) error {
	loaded, err := config.NewLoader().Load(path)
	if err != nil {
		return err
	}
	if loaded.Templates.Dir == "" {
		return nil
	}

	dir, err := config.ExpandPath(loaded.Templates.Dir)
	if err != nil {
		return err
	}
	missing, err := templates.Missing(templates.Root(dir))
	if err != nil {
		return fmt.Errorf("templates.dir: %w", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("templates.dir: %s lacks %s", dir, strings.Join(missing, ", "))
	}
	return nil
}
