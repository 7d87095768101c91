package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/merchant-prince/laravel-docker/internal/cmdtypes"
	"github.com/merchant-prince/laravel-docker/internal/cmdutil"
	"github.com/merchant-prince/laravel-docker/internal/config"
	"github.com/merchant-prince/laravel-docker/internal/container"
	oerrors "github.com/merchant-prince/laravel-docker/internal/errors"
	"github.com/merchant-prince/laravel-docker/internal/output"
	"github.com/merchant-prince/laravel-docker/internal/prompt"
	"github.com/merchant-prince/laravel-docker/internal/runner"
	"github.com/merchant-prince/laravel-docker/internal/scaffold"
	"github.com/merchant-prince/laravel-docker/internal/shell"
)

// initDeps holds the external collaborators of the init command.
type initDeps struct {
	newRunner func(config.ContainerConfig) (container.Runner, func() error, error)
	git       shell.Executor
	lookPath  func(name string) (string, error)
}

// NewInitCmd creates the init command.
func NewInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var flags cmdutil.ScaffoldFlags

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new Laravel project",
		Long: `Create a new Laravel project in the current directory.

The command asks for the project name and domain (and optionally the database
credentials), then:
  - creates the directory structure
  - generates a self-signed TLS certificate for the domain
  - writes the nginx, php, docker-compose and .env files
  - installs Laravel through a one-off composer container
  - initializes a git repository
  - rewrites the application's .env with the project settings

Answers given with --name and --domain are validated like prompt answers and
their questions are skipped.`,
		Example: `  # Interactive
  laravel-docker init

  # Non-interactive, without installing the framework
  laravel-docker init --name Shop --domain shop.local --skip-install`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runInit(c, cfg, &flags, initDeps{
				newRunner: cmdutil.NewContainerRunner,
				git:       shell.Exec{},
				lookPath:  shell.LookPath,
			})
		},
	}

	flags.AddTo(c)

	return c
}

func runInit(c *cobra.Command, cfg *cmdtypes.GlobalConfig, flags *cmdutil.ScaffoldFlags, deps initDeps) error {
	tool, err := cfg.EffectiveConfig()
	if err != nil {
		return cmdutil.Fail(nil, "loading config", err)
	}

	base, err := cmdutil.ResolveBaseDir(flags.Dir)
	if err != nil {
		return fmt.Errorf("resolving base directory: %w", err)
	}

	if err := preflight(tool, flags, deps.lookPath); err != nil {
		return cmdutil.Fail(nil, "missing dependency", err)
	}

	in := c.InOrStdin()
	out := c.OutOrStdout()
	interactive := isTerminal(in) && output.IsInteractive()

	var installer container.Runner
	if !flags.SkipInstall {
		r, closeRunner, err := deps.newRunner(tool.Container)
		if err != nil {
			return cmdutil.Fail(nil, "creating container runner", err)
		}
		defer func() {
			if err := closeRunner(); err != nil {
				output.Debug("closing container runner", "error", err)
			}
		}()
		installer = r
	}

	s := scaffold.New(scaffold.Options{
		BaseDir:     base,
		Tool:        *tool,
		Name:        flags.Name,
		Domain:      flags.Domain,
		Database:    flags.WithDatabase || tool.Database.Enabled,
		SkipInstall: flags.SkipInstall,
		SkipGit:     flags.SkipGit,
		Container:   installer,
		Git:         deps.git,
		Interactive: interactive,
		Out:         out,
	})

	result, err := s.Run(c.Context(), prompt.NewTerminalAsker(in, out, interactive))
	if err != nil {
		if result != nil && result.ProjectDir != "" {
			output.Warn("project left partially created", "dir", result.ProjectDir)
		}
		return cmdutil.Fail(nil, "project creation failed", err)
	}

	printSummary(out, result)
	return nil
}

func printSummary(out io.Writer, result *scaffold.Result) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, result.Tree())
	fmt.Fprintln(out)
	fmt.Fprintln(out, output.FormatCheckmark(fmt.Sprintf("Project %s created at %s",
		output.StyleNoun.Render(result.Config.Project.Name), result.ProjectDir)))
	for _, rewritten := range result.Rewritten {
		fmt.Fprintln(out, output.FormatFileLine(rewritten, output.StatusRewritten))
	}
	for _, skipped := range result.Skipped {
		fmt.Fprintln(out, output.StyleMuted.Render("  skipped: "+skipped))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, output.StyleDim.Render(runner.Usage(result.Config.Project.Name)))
}

// preflight checks the binaries the enabled steps shell out to, before
// anything is created.
func preflight(tool *config.Config, flags *cmdutil.ScaffoldFlags, lookPath func(string) (string, error)) error {
	if lookPath == nil {
		return nil
	}

	var required []string
	if !flags.SkipInstall && tool.Container.Driver != config.DriverSDK {
		required = append(required, tool.Container.Runtime)
	}
	if !flags.SkipGit && tool.Git.Enabled {
		required = append(required, "git")
	}

	for _, name := range required {
		if _, err := lookPath(name); err != nil {
			return oerrors.NewNotFoundError(
				fmt.Sprintf("%s is required but was not found in PATH", name), "",
				"Install it, or pass --skip-install / --skip-git",
			)
		}
	}
	return nil
}

// isTerminal reports whether in is the process's own stdin.
func isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && f == os.Stdin
}
