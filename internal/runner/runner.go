// Package runner dispatches common tasks to the containers of a generated
// project: artisan, composer, yarn and phpunit.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/merchant-prince/laravel-docker/internal/container"
	"github.com/merchant-prince/laravel-docker/internal/envfile"
	"github.com/merchant-prince/laravel-docker/internal/shell"
)

var (
	// ErrUnknownTool is returned for tools other than the supported ones.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrMissingVariable is returned when the project .env lacks a value
	// the tool needs.
	ErrMissingVariable = errors.New("missing variable in project .env")
)

// Supported tools.
const (
	ToolArtisan  = "artisan"
	ToolComposer = "composer"
	ToolYarn     = "yarn"
	ToolPHPUnit  = "phpunit"
)

// Tools returns the supported tools in usage order.
func Tools() []string {
	return []string{ToolArtisan, ToolComposer, ToolYarn, ToolPHPUnit}
}

// Describe returns where tool runs, or "" for unknown tools.
func Describe(tool string) string {
	switch tool {
	case ToolArtisan:
		return "php artisan in the php service"
	case ToolComposer:
		return "one-off composer container"
	case ToolYarn:
		return "yarn in a one-off node container"
	case ToolPHPUnit:
		return "./vendor/bin/phpunit in the php service"
	default:
		return ""
	}
}

// Options configures a Runner.
type Options struct {
	// ProjectDir is the project root holding .env.
	ProjectDir string

	// ComposeCommand runs exec against the stack, e.g. "docker-compose".
	ComposeCommand string

	// Runtime is the container CLI for one-off containers.
	Runtime string

	// Interactive attaches the terminal.
	Interactive bool

	Exec shell.Executor

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runner builds and runs tool commands for one project.
type Runner struct {
	opts Options
	env  map[string]string
}

// New reads the project's .env.
func New(opts Options) (*Runner, error) {
	if opts.ComposeCommand == "" {
		opts.ComposeCommand = "docker-compose"
	}
	if opts.Runtime == "" {
		opts.Runtime = "docker"
	}
	if opts.Exec == nil {
		opts.Exec = shell.Exec{}
	}

	dir, err := filepath.Abs(opts.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("resolving project directory: %w", err)
	}
	opts.ProjectDir = dir

	env, err := envfile.Read(filepath.Join(dir, ".env"))
	if err != nil {
		return nil, fmt.Errorf("reading project environment: %w", err)
	}
	return &Runner{opts: opts, env: env}, nil
}

// ProjectName returns PROJECT_NAME from the project .env.
func (r *Runner) ProjectName() string {
	return r.env["PROJECT_NAME"]
}

// Command returns the process that runs tool with args.
func (r *Runner) Command(tool string, args []string) (shell.Cmd, error) {
	switch tool {
	case ToolArtisan:
		return r.composeExec(append([]string{"php", "artisan"}, args...)), nil
	case ToolPHPUnit:
		return r.composeExec(append([]string{"php", "./vendor/bin/phpunit"}, args...)), nil
	case ToolComposer:
		return r.oneOff("composer", "COMPOSER_IMAGE_TAG", args)
	case ToolYarn:
		return r.oneOff("node", "NODE_IMAGE_TAG", append([]string{"yarn"}, args...))
	default:
		return shell.Cmd{}, fmt.Errorf("%w: %q", ErrUnknownTool, tool)
	}
}

// Run runs tool with args. The returned error carries the tool's exit
// code as a *shell.ExitError.
func (r *Runner) Run(ctx context.Context, tool string, args []string) error {
	cmd, err := r.Command(tool, args)
	if err != nil {
		return err
	}
	cmd.Stdin, cmd.Stdout, cmd.Stderr = r.opts.Stdin, r.opts.Stdout, r.opts.Stderr
	return r.opts.Exec.Run(ctx, cmd)
}

func (r *Runner) composeExec(command []string) shell.Cmd {
	compose := strings.Fields(r.opts.ComposeCommand)
	args := append([]string{}, compose[1:]...)
	args = append(args, "exec")
	if !r.opts.Interactive {
		args = append(args, "-T")
	}
	args = append(args, "--user", "www-data", "php")
	return shell.Cmd{Dir: r.opts.ProjectDir, Name: compose[0], Args: append(args, command...)}
}

func (r *Runner) oneOff(image, tagKey string, command []string) (shell.Cmd, error) {
	values, err := r.require("PROJECT_NAME", "USER_ID", "GROUP_ID", tagKey)
	if err != nil {
		return shell.Cmd{}, err
	}
	uid, err := strconv.Atoi(values["USER_ID"])
	if err != nil {
		return shell.Cmd{}, fmt.Errorf("USER_ID %q is not a number", values["USER_ID"])
	}
	gid, err := strconv.Atoi(values["GROUP_ID"])
	if err != nil {
		return shell.Cmd{}, fmt.Errorf("GROUP_ID %q is not a number", values["GROUP_ID"])
	}

	cli := container.NewCLIRunner(r.opts.Runtime, r.opts.Exec)
	spec := container.Spec{
		Image:   container.ImageRef(image, values[tagKey]),
		Command: command,
		User:    container.User(uid, gid),
		Mounts: []container.Mount{{
			Source: filepath.Join(r.opts.ProjectDir, "application", values["PROJECT_NAME"]),
			Target: "/application",
		}},
		WorkDir:     "/application",
		Interactive: r.opts.Interactive,
	}
	return shell.Cmd{Dir: r.opts.ProjectDir, Name: cli.Binary, Args: cli.Args(spec)}, nil
}

func (r *Runner) require(keys ...string) (map[string]string, error) {
	values := make(map[string]string, len(keys))
	for _, k := range keys {
		v := r.env[k]
		if v == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingVariable, k)
		}
		values[k] = v
	}
	return values, nil
}

// Usage describes how to call the runner.
func Usage(projectName string) string {
	var sb strings.Builder
	sb.WriteString("usage: run {" + strings.Join(Tools(), "|") + "} [arguments...]\n")
	if projectName != "" {
		sb.WriteString("Perform common tasks on the " + projectName + " application stack.\n")
	}
	return sb.String()
}
