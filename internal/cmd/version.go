package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/merchant-prince/laravel-docker/internal/cmdtypes"
	"github.com/merchant-prince/laravel-docker/internal/output"
	"github.com/merchant-prince/laravel-docker/internal/shell"
	"github.com/merchant-prince/laravel-docker/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show laravel-docker version information.

Displays:
  - laravel-docker version, commit, and build date
  - versions of the container runtime and git found in PATH`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runVersion(c, cfg, shell.Exec{})
		},
	}
}

func runVersion(c *cobra.Command, cfg *cmdtypes.GlobalConfig, exec shell.Executor) error {
	info := version.Get()
	out := c.OutOrStdout()

	fmt.Fprintf(out, "laravel-docker version %s\n", info.Version)
	fmt.Fprintf(out, "  Commit:    %s\n", info.GitCommit)
	fmt.Fprintf(out, "  Built:     %s\n", info.BuildDate)
	fmt.Fprintf(out, "  Go:        %s\n", info.GoVersion)

	runtime := "docker"
	if tool, err := cfg.EffectiveConfig(); err == nil && tool.Container.Runtime != "" {
		runtime = tool.Container.Runtime
	}

	deps := output.NewTable("TOOL", "VERSION", "PATH")
	for _, name := range []string{runtime, "git"} {
		bin := version.DetectBinary(c.Context(), exec, name)
		switch {
		case !bin.Found:
			deps.Row(bin.Name, "not found", "-")
		case bin.Version == "":
			deps.Row(bin.Name, "unknown", bin.Path)
		default:
			deps.Row(bin.Name, bin.Version, bin.Path)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Dependencies:")
	fmt.Fprintln(out, deps.String())

	return nil
}
