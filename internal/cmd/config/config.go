// Package config provides CLI command implementations for the config command group.
package config

import (
	"github.com/spf13/cobra"

	"github.com/merchant-prince/laravel-docker/internal/cmdtypes"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long: `Configuration management for the laravel-docker CLI.

The configuration file is read from ~/.laravel-docker/config.yaml by default.
Use --config or LARAVEL_DOCKER_CONFIG to point at another file.`,
	}

	c.AddCommand(newInitCmd(cfg))
	c.AddCommand(newVetCmd(cfg))
	c.AddCommand(newShowCmd(cfg))
	c.AddCommand(newDiffCmd(cfg))

	return c
}
