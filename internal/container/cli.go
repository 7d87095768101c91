package container

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/merchant-prince/laravel-docker/internal/shell"
)

// CLIRunner runs containers with "<binary> run".
type CLIRunner struct {
	// Binary is the container CLI, e.g. "docker" or "podman".
	Binary string

	Exec shell.Executor

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewCLIRunner creates a runner for binary. A nil exec runs real processes.
func NewCLIRunner(binary string, exec shell.Executor) *CLIRunner {
	if binary == "" {
		binary = "docker"
	}
	if exec == nil {
		exec = shell.Exec{}
	}
	return &CLIRunner{Binary: binary, Exec: exec}
}

// Args returns the arguments passed to the binary for spec.
func (r *CLIRunner) Args(spec Spec) []string {
	args := []string{"run", "--rm"}
	if spec.Interactive {
		args = append(args, "--interactive", "--tty")
	}
	if spec.User != "" {
		args = append(args, "--user", spec.User)
	}
	for _, m := range spec.Mounts {
		args = append(args, "--mount", fmt.Sprintf("type=bind,source=%s,target=%s", m.Source, m.Target))
	}
	if spec.WorkDir != "" {
		args = append(args, "--workdir", spec.WorkDir)
	}
	args = append(args, spec.Image)
	return append(args, spec.Command...)
}

// Run implements Runner.
func (r *CLIRunner) Run(ctx context.Context, spec Spec) error {
	if err := validateSpec(spec); err != nil {
		return err
	}

	err := r.Exec.Run(ctx, shell.Cmd{
		Name:   r.Binary,
		Args:   r.Args(spec),
		Stdin:  r.Stdin,
		Stdout: r.Stdout,
		Stderr: r.Stderr,
	})
	var exitErr *shell.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%w: %s exited with code %d", ErrNonZeroExit, spec.Image, exitErr.Code)
	}
	return err
}
