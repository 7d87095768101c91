package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema/config.cue
var configSchemaCUE []byte

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(configSchemaCUE)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return nil, fmt.Errorf("schema has no #Config definition")
	}

	return &Validator{
		ctx:    ctx,
		schema: def,
	}, nil
}

// Validate checks a fully resolved configuration. Every field must be
// concrete and within the schema's bounds.
func (v *Validator) Validate(cfg *Config) error {
	value := v.ctx.Encode(cfg)
	if value.Err() != nil {
		return fmt.Errorf("encoding config: %w", value.Err())
	}

	return collect(v.schema.Unify(value).Validate(cue.Concrete(true)))
}

// ValidateFile checks the file at path on its own (unknown keys, wrong
// types) and then the effective configuration it produces together with
// defaults and environment overrides.
func (v *Validator) ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return ValidationErrors{{Field: "(file)", Message: err.Error()}}
	}
	if raw != nil {
		value := v.ctx.Encode(raw)
		if value.Err() != nil {
			return fmt.Errorf("encoding config file: %w", value.Err())
		}
		if err := collect(v.schema.Unify(value).Validate()); err != nil {
			return err
		}
	}

	cfg, err := NewLoader().Load(path)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}
	return v.Validate(cfg)
}

// collect converts CUE errors into ValidationErrors.
func collect(err error) error {
	if err == nil {
		return nil
	}

	var errs ValidationErrors
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		field := strings.Join(e.Path(), ".")
		if field == "" {
			field = "(root)"
		}
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}
	if len(errs) == 0 {
		return ValidationErrors{{Field: "(root)", Message: err.Error()}}
	}
	return errs
}
