// Package cmdutil provides shared command utilities for the laravel-docker
// subcommands. It centralizes flag groups, error classification and
// container runner selection.
package cmdutil

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// ScaffoldFlags holds the flags of the init command. Values given here are
// validated like prompt answers and the matching questions are skipped.
type ScaffoldFlags struct {
	Dir          string
	Name         string
	Domain       string
	SkipInstall  bool
	SkipGit      bool
	WithDatabase bool
}

// AddTo registers the scaffold flags on the given cobra command.
func (f *ScaffoldFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Dir, "dir", "C", "",
		"Directory to create the project in (default: current directory)")
	cmd.Flags().StringVar(&f.Name, "name", "",
		"Project name in PascalCase (skips the prompt)")
	cmd.Flags().StringVar(&f.Domain, "domain", "",
		"Project domain, e.g. shop.local (skips the prompt)")
	cmd.Flags().BoolVar(&f.SkipInstall, "skip-install", false,
		"Do not install the framework or rewrite its .env")
	cmd.Flags().BoolVar(&f.SkipGit, "skip-git", false,
		"Do not initialize a git repository")
	cmd.Flags().BoolVar(&f.WithDatabase, "with-database", false,
		"Ask for database credentials (default: from config)")
}

// ResolveBaseDir returns dir as an absolute path, defaulting to the current
// directory.
func ResolveBaseDir(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}
