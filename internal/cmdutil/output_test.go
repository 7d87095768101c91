package cmdutil

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/merchant-prince/laravel-docker/internal/container"
	oerrors "github.com/merchant-prince/laravel-docker/internal/errors"
)

func TestFail(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	err := fmt.Errorf("installing laravel: %w", container.ErrNonZeroExit)
	exitErr := Fail(logger, "scaffolding failed", err)

	assert.True(t, exitErr.Printed)
	assert.Equal(t, oerrors.ExitExternalError, exitErr.Code)
	assert.ErrorIs(t, exitErr, container.ErrNonZeroExit)

	out := buf.String()
	assert.Contains(t, out, "scaffolding failed")
	assert.Contains(t, out, "installing laravel")
	assert.Contains(t, out, "--verbose")
}

func TestFail_DetailError(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	err := oerrors.NewConflictError("config file already exists", "/tmp/c.yaml", "Use --force to overwrite it")
	exitErr := Fail(logger, "config init failed", err)

	assert.Equal(t, oerrors.ExitConflict, exitErr.Code)
	out := buf.String()
	assert.Contains(t, out, "config file already exists")
	assert.Contains(t, out, "Use --force to overwrite it")
}

func TestFail_GeneralError(t *testing.T) {
	var buf bytes.Buffer
	exitErr := Fail(log.New(&buf), "failed", errors.New("boom"))

	assert.Equal(t, oerrors.ExitGeneralError, exitErr.Code)
	assert.Contains(t, buf.String(), "boom")
}
