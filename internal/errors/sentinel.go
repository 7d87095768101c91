package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates user input or configuration failed validation.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a template, file, or binary was not found.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the target file or directory already exists.
	ErrConflict = errors.New("already exists")

	// ErrExternal indicates an external process (docker, git) failed.
	ErrExternal = errors.New("external command failed")

	// ErrInvalidArgument indicates a programming error in how an API was called.
	ErrInvalidArgument = errors.New("invalid argument")
)
