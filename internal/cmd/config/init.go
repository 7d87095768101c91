package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/merchant-prince/laravel-docker/internal/cmdtypes"
	"github.com/merchant-prince/laravel-docker/internal/cmdutil"
	"github.com/merchant-prince/laravel-docker/internal/config"
	"github.com/merchant-prince/laravel-docker/internal/output"
)

func newInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new configuration file",
		Long: `Create a new laravel-docker configuration file with default values.

The configuration file is created at ~/.laravel-docker/config.yaml by default.
Use --config flag to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return c
}

func runInit(c *cobra.Command, cfg *cmdtypes.GlobalConfig, force bool) error {
	path, err := config.ExpandPath(cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	if err := config.WriteDefault(path, force); err != nil {
		return cmdutil.Fail(nil, "config init failed", err)
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Config file created: "+output.StyleNoun.Render(path)))
	return nil
}
