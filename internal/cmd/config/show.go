package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/merchant-prince/laravel-docker/internal/cmdtypes"
	"github.com/merchant-prince/laravel-docker/internal/config"
	oerrors "github.com/merchant-prince/laravel-docker/internal/errors"
	"github.com/merchant-prince/laravel-docker/internal/output"
)

func newShowCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration: built-in defaults, overridden by the
configuration file, overridden by LARAVEL_DOCKER_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runShow(c, cfg, format)
		},
	}

	c.Flags().StringVarP(&format, "output", "o", "yaml",
		"Output format: "+strings.Join(output.ValidFormats(), ", "))

	return c
}

func runShow(c *cobra.Command, cfg *cmdtypes.GlobalConfig, format string) error {
	if !output.Format(strings.ToLower(format)).IsValid() {
		return cmdtypes.NewExitError(
			oerrors.NewValidationError(
				fmt.Sprintf("invalid output format %q", format), "", "--output",
				"Valid formats: "+strings.Join(output.ValidFormats(), ", "),
			),
			cmdtypes.ExitValidationError,
		)
	}
	f := output.ParseFormat(format)

	effective, err := cfg.EffectiveConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	data, err := config.Render(effective, f)
	if err != nil {
		return err
	}

	_, err = c.OutOrStdout().Write(data)
	return err
}
