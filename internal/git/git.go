// Package git bootstraps the repository of a new project.
package git

import (
	"context"
	"fmt"
	"io"

	"github.com/merchant-prince/laravel-docker/internal/output"
	"github.com/merchant-prince/laravel-docker/internal/shell"
)

// Options configures Bootstrap.
type Options struct {
	// Branch is created and checked out after the first commit.
	Branch string

	// Message is the first commit's message.
	Message string

	// Exec runs git. Nil runs real processes.
	Exec shell.Executor

	// Output receives git's output. Nil discards it.
	Output io.Writer
}

// Bootstrap initializes a repository in dir, commits everything in it and
// checks out a new branch. It stops at the first failing git command.
func Bootstrap(ctx context.Context, dir string, opts Options) error {
	exec := opts.Exec
	if exec == nil {
		exec = shell.Exec{}
	}
	out := opts.Output
	if out == nil {
		out = io.Discard
	}

	steps := [][]string{
		{"init"},
		{"add", "."},
		{"commit", "-m", opts.Message},
		{"checkout", "-b", opts.Branch},
	}
	for _, args := range steps {
		cmd := shell.Cmd{Dir: dir, Name: "git", Args: args, Stdout: out, Stderr: out}
		if err := exec.Run(ctx, cmd); err != nil {
			return fmt.Errorf("git %s: %w", args[0], err)
		}
		output.Debug("git", "args", args, "dir", dir)
	}
	return nil
}
