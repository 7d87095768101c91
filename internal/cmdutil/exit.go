package cmdutil

import (
	"errors"
	"io/fs"

	"github.com/merchant-prince/laravel-docker/internal/certs"
	"github.com/merchant-prince/laravel-docker/internal/config"
	"github.com/merchant-prince/laravel-docker/internal/container"
	oerrors "github.com/merchant-prince/laravel-docker/internal/errors"
	"github.com/merchant-prince/laravel-docker/internal/prompt"
	"github.com/merchant-prince/laravel-docker/internal/runner"
	"github.com/merchant-prince/laravel-docker/internal/shell"
	"github.com/merchant-prince/laravel-docker/internal/skeleton"
	"github.com/merchant-prince/laravel-docker/internal/templates"
	"github.com/merchant-prince/laravel-docker/internal/validate"
)

// ExitCodeFromError maps package errors to CLI exit codes.
func ExitCodeFromError(err error) int {
	if err == nil {
		return oerrors.ExitSuccess
	}

	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var validationErrs config.ValidationErrors
	var shellErr *shell.ExitError

	switch {
	case validate.IsValidationError(err),
		errors.As(err, &validationErrs),
		errors.Is(err, prompt.ErrTooManyAttempts),
		errors.Is(err, skeleton.ErrIllFormed),
		errors.Is(err, templates.ErrUnresolvedToken),
		errors.Is(err, runner.ErrUnknownTool),
		errors.Is(err, runner.ErrMissingVariable):
		return oerrors.ExitValidationError
	case errors.Is(err, templates.ErrFileAlreadyExists),
		errors.Is(err, certs.ErrFileAlreadyExists),
		errors.Is(err, fs.ErrExist):
		return oerrors.ExitConflict
	case errors.Is(err, templates.ErrTemplateNotFound),
		errors.Is(err, shell.ErrNotFound),
		errors.Is(err, fs.ErrNotExist):
		return oerrors.ExitNotFound
	case errors.Is(err, container.ErrNonZeroExit),
		errors.As(err, &shellErr):
		return oerrors.ExitExternalError
	}

	return oerrors.ExitCodeFromError(err)
}

// Explain describes known failures as a DetailError with actionable
// guidance. Other errors are returned unchanged.
func Explain(err error) error {
	var detail *oerrors.DetailError
	if err == nil || errors.As(err, &detail) {
		return err
	}

	msg := err.Error()
	var pathErr *fs.PathError
	location := ""
	if errors.As(err, &pathErr) {
		location = pathErr.Path
	}

	switch {
	case errors.Is(err, prompt.ErrTooManyAttempts):
		return oerrors.NewValidationError(msg, "", "", "Run the command again, or pass the value with a flag")
	case errors.Is(err, templates.ErrUnresolvedToken):
		return oerrors.NewValidationError(msg, location, "templates.dir", "Check the templates directory configured in templates.dir")
	case errors.Is(err, runner.ErrMissingVariable):
		return oerrors.NewValidationError(msg, ".env", "", "Run this command from a project created by laravel-docker init")
	case errors.Is(err, templates.ErrFileAlreadyExists),
		errors.Is(err, certs.ErrFileAlreadyExists),
		errors.Is(err, fs.ErrExist):
		return oerrors.NewConflictError(msg, location, "Remove the existing project directory or choose another name")
	case errors.Is(err, shell.ErrNotFound):
		return oerrors.NewNotFoundError(msg, "", "Install docker and git, or set container.runtime in the config file")
	case errors.Is(err, container.ErrNonZeroExit):
		return oerrors.NewExternalError(msg, nil, "Re-run with --verbose to see the container command")
	}
	return err
}
