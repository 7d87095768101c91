// Package shell runs external processes synchronously.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/merchant-prince/laravel-docker/internal/output"
)

// ErrNotFound is returned when the executable is not in PATH.
var ErrNotFound = errors.New("executable not found")

// ExitError is returned when a process exits with a non-zero status.
type ExitError struct {
	Name string
	Args []string
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("%s %s failed with exit code %d", e.Name, strings.Join(e.Args, " "), e.Code)
}

// Cmd describes one process.
type Cmd struct {
	// Dir is the working directory. Empty means the current one.
	Dir string

	Name string
	Args []string

	// Env is appended to the environment of the current process.
	Env []string

	// Nil streams use the process's own.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// String returns the command line.
func (c Cmd) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Executor runs commands.
type Executor interface {
	Run(ctx context.Context, cmd Cmd) error
}

// Exec runs commands as child processes.
type Exec struct{}

// Run implements Executor.
func (Exec) Run(ctx context.Context, c Cmd) error {
	return Run(ctx, c)
}

// Run starts c and waits for it. A non-zero exit is returned as *ExitError.
func Run(ctx context.Context, c Cmd) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	cmd.Stdin = c.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = c.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = c.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	output.Debug("running command", "cmd", c.String(), "dir", c.Dir)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Name: c.Name, Args: c.Args, Code: exitErr.ExitCode()}
		}
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, c.Name)
		}
		return fmt.Errorf("running %s: %w", c.Name, err)
	}
	return nil
}

// LookPath finds name in PATH.
func LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return path, nil
}

// ExitCode returns the exit code carried by err, 0 for nil and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
