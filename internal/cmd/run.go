package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/merchant-prince/laravel-docker/internal/cmdtypes"
	"github.com/merchant-prince/laravel-docker/internal/cmdutil"
	"github.com/merchant-prince/laravel-docker/internal/output"
	"github.com/merchant-prince/laravel-docker/internal/runner"
	"github.com/merchant-prince/laravel-docker/internal/shell"
)

// NewRunCmd creates the run command.
func NewRunCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var projectDir string

	c := &cobra.Command{
		Use:   "run <tool> [args...]",
		Short: "Run a tool in the project's containers",
		Long: fmt.Sprintf(`Run a tool against the application stack of a project.

Supported tools: %v

artisan and phpunit run inside the running php service; composer and yarn run
in one-off containers with the application directory mounted. The project's
.env supplies the project name, user ids and image tags. The tool's exit code
becomes the exit code of this command.`, runner.Tools()),
		Example: `  laravel-docker run artisan migrate
  laravel-docker run composer require laravel/sanctum
  laravel-docker run -C ./Shop yarn install`,
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: runner.Tools(),
		RunE: func(c *cobra.Command, args []string) error {
			return runTool(c, cfg, projectDir, args, shell.Exec{})
		},
	}

	c.Flags().StringVarP(&projectDir, "project", "C", ".", "Project directory holding the generated .env")
	// Everything after the tool name belongs to the tool.
	c.Flags().SetInterspersed(false)

	return c
}

func runTool(c *cobra.Command, cfg *cmdtypes.GlobalConfig, projectDir string, args []string, exec shell.Executor) error {
	tool, err := cfg.EffectiveConfig()
	if err != nil {
		return cmdutil.Fail(nil, "loading config", err)
	}

	r, err := runner.New(runner.Options{
		ProjectDir:     projectDir,
		ComposeCommand: tool.Container.ComposeCommand,
		Runtime:        tool.Container.Runtime,
		Interactive:    isTerminal(c.InOrStdin()) && output.IsInteractive(),
		Exec:           exec,
		Stdin:          c.InOrStdin(),
		Stdout:         c.OutOrStdout(),
		Stderr:         c.ErrOrStderr(),
	})
	if err != nil {
		return cmdutil.Fail(nil, "loading project", err)
	}

	name, toolArgs := args[0], args[1:]
	if err := r.Run(c.Context(), name, toolArgs); err != nil {
		var exitErr *shell.ExitError
		if errors.As(err, &exitErr) {
			// The tool already reported its failure.
			code := shell.ExitCode(err)
			output.Debug("tool failed", "tool", name, "code", code)
			return &cmdtypes.ExitError{Code: code, Err: err, Printed: true}
		}
		if errors.Is(err, runner.ErrUnknownTool) {
			printTools(c.ErrOrStderr(), r.ProjectName())
		}
		return cmdutil.Fail(nil, name+" failed", err)
	}

	return nil
}

func printTools(w io.Writer, projectName string) {
	tools := output.NewTable("TOOL", "RUNS")
	for _, tool := range runner.Tools() {
		tools.Row(tool, runner.Describe(tool))
	}
	fmt.Fprint(w, runner.Usage(projectName))
	fmt.Fprintln(w, tools.String())
}
