// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	cmdconfig "github.com/merchant-prince/laravel-docker/internal/cmd/config"
	"github.com/merchant-prince/laravel-docker/internal/cmdtypes"
	"github.com/merchant-prince/laravel-docker/internal/config"
	"github.com/merchant-prince/laravel-docker/internal/output"
	"github.com/merchant-prince/laravel-docker/internal/version"
)

// rootFlags holds the persistent flags of the root command.
type rootFlags struct {
	config     string
	verbose    bool
	timestamps bool
}

// NewRootCmd creates the root command for the laravel-docker CLI.
func NewRootCmd() *cobra.Command {
	var flags rootFlags
	cfg := &cmdtypes.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "laravel-docker",
		Short: "Scaffold Laravel projects running on Docker",
		Long: `laravel-docker creates a Laravel project wired for a Docker stack.

It provides commands to:
  - Create the project layout, TLS material and container configuration
  - Install the framework through a one-off composer container
  - Run artisan, composer, yarn and phpunit inside the project's containers
  - Manage the tool's own configuration file`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, &flags, cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "Path to config file (env: LARAVEL_DOCKER_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewInitCmd(cfg))
	rootCmd.AddCommand(NewRunCmd(cfg))
	rootCmd.AddCommand(cmdconfig.NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

// initializeGlobals resolves and loads the configuration and sets up logging.
func initializeGlobals(c *cobra.Command, flags *rootFlags, cfg *cmdtypes.GlobalConfig) error {
	resolved, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: flags.config,
	})
	if err != nil {
		return err
	}

	cfg.ConfigPath = resolved.ConfigPath
	cfg.Source = resolved.Source
	cfg.Verbose = flags.verbose

	loader := config.NewLoader()
	loaded, err := loader.Load(resolved.ConfigPath)
	if err != nil {
		// Commands that need the config report this; config vet does not.
		cfg.LoadErr = err
	}
	cfg.Config = loaded

	// Resolve timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: flags.verbose}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if loaded != nil && loaded.Log.Timestamps != nil {
		logCfg.Timestamps = loaded.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	resolved.LogResolved()
	if err != nil {
		output.Debug("config load error", "error", err)
	} else if used := loader.UsedFile(); used != "" {
		output.Debug("config loaded", "file", used)
	}
	output.Debug("laravel-docker started", "version", version.Version)

	return nil
}
