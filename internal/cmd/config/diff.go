package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/merchant-prince/laravel-docker/internal/cmdtypes"
	"github.com/merchant-prince/laravel-docker/internal/config"
	"github.com/merchant-prince/laravel-docker/internal/output"
)

func newDiffCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var noColor bool

	c := &cobra.Command{
		Use:   "diff",
		Short: "Show how the effective configuration differs from the defaults",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runDiff(c, cfg, !noColor && output.IsTTY())
		},
	}

	c.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return c
}

func runDiff(c *cobra.Command, cfg *cmdtypes.GlobalConfig, useColor bool) error {
	effective, err := cfg.EffectiveConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	report, err := config.Diff(effective, useColor)
	if err != nil {
		return err
	}

	if report == "" {
		fmt.Fprintln(c.OutOrStdout(), "No differences from the built-in defaults.")
		return nil
	}
	fmt.Fprint(c.OutOrStdout(), report)
	return nil
}
