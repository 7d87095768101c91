package project

import (
	"fmt"

	"github.com/merchant-prince/laravel-docker/internal/output"
	"github.com/merchant-prince/laravel-docker/internal/prompt"
	"github.com/merchant-prince/laravel-docker/internal/validate"
)

// Asker asks one question.
type Asker interface {
	Ask(text string, opts ...prompt.Option) (string, error)
}

// CollectOptions configures a Collector.
type CollectOptions struct {
	// BaseDir is the directory the project directory is created in.
	BaseDir string

	// Name and Domain are answers given up front. They are validated like
	// typed answers but never prompted for.
	Name   string
	Domain string

	// Database asks for the database credentials.
	Database bool
}

// Collector fills a Configuration from the user's answers.
type Collector struct {
	defaults Configuration
	opts     CollectOptions
}

// NewCollector creates a Collector starting from defaults.
func NewCollector(defaults Configuration, opts CollectOptions) *Collector {
	return &Collector{defaults: defaults, opts: opts}
}

// NameValidators checks a project name against base.
func NameValidators(base string) []validate.Validator {
	return []validate.Validator{validate.PascalCase, validate.DirectoryExists(base)}
}

// DomainValidators checks a project domain.
func DomainValidators() []validate.Validator {
	return []validate.Validator{validate.IsURL}
}

// CredentialValidators checks a database credential. Empty keeps the default.
func CredentialValidators() []validate.Validator {
	return []validate.Validator{validate.Optional(validate.IsAlphabetic, validate.MinLength(5))}
}

// Collect asks the questions and returns the finalized configuration.
func (c *Collector) Collect(asker Asker) (Configuration, error) {
	cfg := c.defaults

	name, err := c.answer(asker, "project name", c.opts.Name, "Enter the project name", "",
		NameValidators(c.opts.BaseDir))
	if err != nil {
		return Configuration{}, err
	}
	cfg.Project.Name = name

	domain, err := c.answer(asker, "project domain", c.opts.Domain, "Enter the project domain", cfg.Project.Domain,
		DomainValidators())
	if err != nil {
		return Configuration{}, err
	}
	cfg.Project.Domain = domain

	if c.opts.Database {
		credentials := []struct {
			text  string
			field *string
		}{
			{"Enter the database name", &cfg.Database.Name},
			{"Enter the database username", &cfg.Database.Username},
			{"Enter the database password", &cfg.Database.Password},
		}
		for _, q := range credentials {
			value, err := asker.Ask(q.text, prompt.WithDefault(*q.field), prompt.WithValidators(CredentialValidators()...))
			if err != nil {
				return Configuration{}, err
			}
			if value != "" {
				*q.field = value
			}
		}
	}

	output.Debug("configuration collected", "name", cfg.Project.Name, "domain", cfg.Project.Domain)
	return cfg.Finalize(), nil
}

// answer returns given after validating it, or asks when given is empty.
func (c *Collector) answer(asker Asker, what, given, text, def string, validators []validate.Validator) (string, error) {
	if given != "" {
		if err := validate.Chain(validators...)(given); err != nil {
			return "", fmt.Errorf("invalid %s %q: %w", what, given, err)
		}
		return given, nil
	}

	opts := []prompt.Option{prompt.WithValidators(validators...)}
	if def != "" {
		opts = append(opts, prompt.WithDefault(def))
	}
	return asker.Ask(text, opts...)
}
