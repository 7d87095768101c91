// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/config).
package cmdtypes

import (
	"github.com/merchant-prince/laravel-docker/internal/config"
	oerrors "github.com/merchant-prince/laravel-docker/internal/errors"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the effective tool configuration (defaults, file, env).
	Config *config.Config

	ConfigPath string // resolved --config path
	Source     config.ConfigSource
	Verbose    bool

	// LoadErr is set when the config file could not be loaded. Commands
	// that depend on the configuration report it.
	LoadErr error
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess         = oerrors.ExitSuccess
	ExitGeneralError    = oerrors.ExitGeneralError
	ExitValidationError = oerrors.ExitValidationError
	ExitExternalError   = oerrors.ExitExternalError
	ExitConflict        = oerrors.ExitConflict
	ExitNotFound        = oerrors.ExitNotFound
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return oerrors.NewExitError(err, code)
}

// EffectiveConfig returns the loaded configuration, the defaults when loading
// was skipped, or LoadErr.
func (g *GlobalConfig) EffectiveConfig() (*config.Config, error) {
	if g == nil {
		return config.DefaultConfig(), nil
	}
	if g.LoadErr != nil {
		return nil, g.LoadErr
	}
	if g.Config == nil {
		return config.DefaultConfig(), nil
	}
	return g.Config, nil
}
