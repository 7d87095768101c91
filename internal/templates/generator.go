package templates

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/merchant-prince/laravel-docker/internal/output"
)

const defaultFileMode = 0o644

// Generator renders a set of files into a target directory.
type Generator struct {
	opts GenerateOptions
}

// NewGenerator creates a new generator with the given options.
func NewGenerator(opts GenerateOptions) *Generator {
	if opts.Root == nil {
		opts.Root = Embedded()
	}
	if opts.Tokenizer == nil {
		opts.Tokenizer = DefaultTokenizer
	}
	return &Generator{opts: opts}
}

type renderedFile struct {
	spec     FileSpec
	template *Template
}

// Generate renders every spec and then writes them in order. Nothing is
// written unless all templates load and render.
func (g *Generator) Generate(specs []FileSpec) (*GenerateResult, error) {
	if err := g.checkTargetDir(); err != nil {
		return nil, err
	}

	rendered := make([]renderedFile, 0, len(specs))
	for _, spec := range specs {
		// Each output gets a freshly loaded template.
		tmpl, err := Load(g.opts.Root, spec.Template)
		if err != nil {
			return nil, err
		}
		if err := tmpl.Render(spec.Vars, g.opts.Tokenizer); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", spec.Template, err)
		}
		rendered = append(rendered, renderedFile{spec: spec, template: tmpl})
	}

	result := &GenerateResult{TargetDir: g.opts.TargetDir}
	for _, r := range rendered {
		targetPath := filepath.Join(g.opts.TargetDir, filepath.FromSlash(r.spec.Target))

		if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
			return result, fmt.Errorf("creating directory for %s: %w", targetPath, err)
		}

		mode := r.spec.Mode
		if mode == 0 {
			mode = defaultFileMode
		}
		if err := r.template.Write(targetPath, mode); err != nil {
			return result, err
		}

		desc := r.spec.Description
		if desc == "" {
			if e, err := Get(r.spec.Template); err == nil {
				desc = e.Description
			}
		}

		output.Debug("created file", "path", r.spec.Target, "template", r.spec.Template)
		result.Files = append(result.Files, GeneratedFile{Path: r.spec.Target, Description: desc})
	}

	return result, nil
}

// checkTargetDir validates the target directory.
func (g *Generator) checkTargetDir() error {
	info, err := os.Stat(g.opts.TargetDir)
	if err != nil {
		return fmt.Errorf("checking target directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", g.opts.TargetDir)
	}
	return nil
}
