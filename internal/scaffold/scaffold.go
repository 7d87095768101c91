// Package scaffold creates a new project: it collects the configuration and
// runs every creation step in order.
package scaffold

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/merchant-prince/laravel-docker/internal/certs"
	"github.com/merchant-prince/laravel-docker/internal/config"
	"github.com/merchant-prince/laravel-docker/internal/container"
	"github.com/merchant-prince/laravel-docker/internal/envfile"
	"github.com/merchant-prince/laravel-docker/internal/git"
	"github.com/merchant-prince/laravel-docker/internal/output"
	"github.com/merchant-prince/laravel-docker/internal/project"
	"github.com/merchant-prince/laravel-docker/internal/shell"
	"github.com/merchant-prince/laravel-docker/internal/skeleton"
	"github.com/merchant-prince/laravel-docker/internal/templates"
)

// Options configures a Scaffolder.
type Options struct {
	// BaseDir is the directory the project is created in.
	BaseDir string

	// Tool is the tool configuration seeding the defaults.
	Tool config.Config

	// Name and Domain are answers given up front.
	Name   string
	Domain string

	// Database asks for database credentials.
	Database bool

	SkipInstall bool
	SkipGit     bool

	// Templates is the template root. Nil means the embedded one.
	Templates fs.FS

	// Container runs the framework installation.
	Container container.Runner

	// Git runs git. Nil runs real processes.
	Git shell.Executor

	// Interactive attaches the terminal to the installation container.
	Interactive bool

	// Out receives step banners. Nil means os.Stdout.
	Out io.Writer
}

// Result describes a created project.
type Result struct {
	Config project.Configuration

	// ProjectDir is the absolute project root.
	ProjectDir string

	// Files maps created paths, relative to ProjectDir, to descriptions. A
	// trailing "/" marks a directory.
	Files map[string]string

	// Rewritten lists existing files whose values were replaced, relative to
	// ProjectDir.
	Rewritten []string

	// Skipped lists the titles of the steps that did not run.
	Skipped []string
}

// Tree renders the created files.
func (r *Result) Tree() string {
	return output.RenderFileTree(r.Config.Project.Name, r.Files)
}

// Scaffolder runs the creation steps.
type Scaffolder struct {
	opts Options
	out  io.Writer
}

// New creates a Scaffolder.
func New(opts Options) *Scaffolder {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.Templates == nil {
		opts.Templates = templates.Root(opts.Tool.Templates.Dir)
	}
	return &Scaffolder{opts: opts, out: out}
}

// Run collects the configuration through asker and creates the project.
// A failing step stops the run and leaves what was created so far.
func (s *Scaffolder) Run(ctx context.Context, asker project.Asker) (*Result, error) {
	base, err := filepath.Abs(s.opts.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("resolving base directory: %w", err)
	}

	result := &Result{Files: map[string]string{}}

	err = s.step("configure", "Configuring the project", func() error {
		collector := project.NewCollector(project.New(s.opts.Tool), project.CollectOptions{
			BaseDir:  base,
			Name:     s.opts.Name,
			Domain:   s.opts.Domain,
			Database: s.opts.Database,
		})
		cfg, err := collector.Collect(asker)
		if err != nil {
			return err
		}
		result.Config = cfg
		result.ProjectDir = filepath.Join(base, cfg.Project.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}

	cfg := result.Config
	steps := []struct {
		name  string
		title string
		skip  bool
		run   func(ctx context.Context, cfg project.Configuration, result *Result) error
	}{
		{"skeleton", "Creating the directory structure", false, s.createSkeleton},
		{"tls", "Generating the TLS certificate", false, s.generateTLS},
		{"templates", "Writing the configuration files", false, s.renderTemplates},
		{"install", "Installing Laravel", s.opts.SkipInstall, s.install},
		{"git", "Initializing the git repository", s.opts.SkipGit || !s.opts.Tool.Git.Enabled, s.initGit},
		{"env", "Configuring the application environment", s.opts.SkipInstall, s.rewriteEnv},
	}

	for _, st := range steps {
		if st.skip {
			output.StepLogger(st.name).Debug("skipped")
			result.Skipped = append(result.Skipped, st.title)
			continue
		}
		run := st.run
		if err := s.step(st.name, st.title, func() error { return run(ctx, cfg, result) }); err != nil {
			return result, err
		}
	}

	return result, nil
}

// step brackets action with a banner and a completion line.
func (s *Scaffolder) step(name, title string, action func() error) error {
	log := output.StepLogger(name)
	fmt.Fprintln(s.out, output.StyleAction.Render(title+"..."))
	log.Debug("started")

	if err := action(); err != nil {
		log.Debug("failed", "err", err)
		return fmt.Errorf("%s: %w", strings.ToLower(title), err)
	}

	log.Debug("done")
	fmt.Fprintln(s.out, output.FormatCheckmark(title))
	return nil
}

func (s *Scaffolder) createSkeleton(_ context.Context, cfg project.Configuration, result *Result) error {
	structure, err := skeleton.Project(cfg.Project.Name)
	if err != nil {
		return err
	}
	created, err := structure.Create(filepath.Dir(result.ProjectDir))
	if err != nil {
		return err
	}

	prefix := cfg.Project.Name + "/"
	for _, p := range created {
		if rel := strings.TrimPrefix(p, prefix); rel != p && rel != "" {
			result.Files[rel] = ""
		}
	}
	return nil
}

func (s *Scaffolder) generateTLS(ctx context.Context, cfg project.Configuration, result *Result) error {
	host := hostname(cfg.Project.Domain)

	var material *certs.Material
	err := output.RunWithSpinner(ctx, func() error {
		var err error
		material, err = certs.Generate(host, certs.Options{
			KeySize:      cfg.SSL.KeySize,
			ValidityDays: cfg.SSL.ValidityDays,
		})
		return err
	}, output.WithTitle(fmt.Sprintf("Generating a %d-bit key for %s", cfg.SSL.KeySize, host)))
	if err != nil {
		return err
	}

	sslDir := path.Join("configuration", "nginx", "ssl")
	keyRel := path.Join(sslDir, cfg.SSL.KeyName)
	certRel := path.Join(sslDir, cfg.SSL.CertificateName)
	err = material.Write(
		filepath.Join(result.ProjectDir, filepath.FromSlash(keyRel)),
		filepath.Join(result.ProjectDir, filepath.FromSlash(certRel)),
	)
	if err != nil {
		return err
	}

	result.Files[keyRel] = "TLS key"
	result.Files[certRel] = "TLS certificate"
	return nil
}

func (s *Scaffolder) renderTemplates(_ context.Context, cfg project.Configuration, result *Result) error {
	generated, err := templates.NewGenerator(templates.GenerateOptions{
		Root:      s.opts.Templates,
		TargetDir: result.ProjectDir,
	}).Generate(templates.ProjectPlan(cfg.Variables()))
	if generated != nil {
		for p, desc := range generated.Descriptions() {
			result.Files[p] = desc
		}
	}
	return err
}

func (s *Scaffolder) install(ctx context.Context, cfg project.Configuration, result *Result) error {
	if s.opts.Container == nil {
		return fmt.Errorf("no container runner configured")
	}
	err := container.CreateProject(ctx, s.opts.Container, container.ProjectSpec{
		ProjectDir:  result.ProjectDir,
		Name:        cfg.Project.Name,
		Package:     s.opts.Tool.Container.FrameworkPackage,
		Image:       container.ImageRef(cfg.Services.ComposerImage, cfg.Services.ComposerTag),
		UID:         cfg.Environment.UID,
		GID:         cfg.Environment.GID,
		Interactive: s.opts.Interactive,
	})
	if err != nil {
		return err
	}
	result.Files[path.Join("application", cfg.Project.Name)+"/"] = "Laravel application"
	return nil
}

func (s *Scaffolder) initGit(ctx context.Context, _ project.Configuration, result *Result) error {
	return git.Bootstrap(ctx, result.ProjectDir, git.Options{
		Branch:  s.opts.Tool.Git.Branch,
		Message: s.opts.Tool.Git.CommitMessage,
		Exec:    s.opts.Git,
	})
}

func (s *Scaffolder) rewriteEnv(_ context.Context, cfg project.Configuration, result *Result) error {
	envPath := filepath.Join(result.ProjectDir, "application", cfg.Project.Name, ".env")
	if err := envfile.Rewrite(envPath, cfg.Replacements()); err != nil {
		return err
	}
	output.StepLogger("env").Debug("rewritten", "path", envPath, "keys", cfg.ApplicationEnvironmentKeys())
	result.Rewritten = append(result.Rewritten, path.Join("application", cfg.Project.Name, ".env"))
	return nil
}

// hostname strips the port and path from a project domain.
func hostname(domain string) string {
	u, err := url.Parse("https://" + domain)
	if err != nil || u.Hostname() == "" {
		return domain
	}
	return u.Hostname()
}
