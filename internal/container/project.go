package container

import (
	"context"
	"path/filepath"
)

// applicationMount is where the project's application directory is mounted.
const applicationMount = "/application"

// ProjectSpec describes a framework installation.
type ProjectSpec struct {
	// ProjectDir is the project root. The framework is created in
	// ProjectDir/application/Name.
	ProjectDir string
	Name       string

	// Package is the composer package, e.g. "laravel/laravel".
	Package string

	// Image is the composer image reference.
	Image string

	UID int
	GID int

	Interactive bool
}

// CreateProjectSpec returns the container that runs composer create-project.
func CreateProjectSpec(p ProjectSpec) Spec {
	return Spec{
		Image: p.Image,
		Command: []string{
			"composer", "create-project",
			"--prefer-dist",
			"--ignore-platform-reqs",
			p.Package, p.Name,
		},
		User:        User(p.UID, p.GID),
		Mounts:      []Mount{{Source: filepath.Join(p.ProjectDir, "application"), Target: applicationMount}},
		WorkDir:     applicationMount,
		Interactive: p.Interactive,
	}
}

// CreateProject installs a fresh framework skeleton with r.
func CreateProject(ctx context.Context, r Runner, p ProjectSpec) error {
	return r.Run(ctx, CreateProjectSpec(p))
}
