package cmdutil

import (
	"errors"

	"github.com/charmbracelet/log"

	oerrors "github.com/merchant-prince/laravel-docker/internal/errors"
	"github.com/merchant-prince/laravel-docker/internal/output"
)

// Fail logs err under msg, adds a hint when one is known and returns an
// ExitError already marked as printed.
func Fail(logger *log.Logger, msg string, err error) *oerrors.ExitError {
	if logger == nil {
		logger = output.Logger()
	}

	var detail *oerrors.DetailError
	if errors.As(Explain(err), &detail) {
		keyvals := []any{"error", detail.Message}
		if detail.Location != "" {
			keyvals = append(keyvals, "location", detail.Location)
		}
		logger.Error(msg, keyvals...)
		if detail.Hint != "" {
			logger.Info(detail.Hint)
		}
	} else {
		logger.Error(msg, "error", err)
	}

	return &oerrors.ExitError{Code: ExitCodeFromError(err), Err: err, Printed: true}
}
