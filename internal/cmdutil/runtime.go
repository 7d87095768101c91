package cmdutil

import (
	"fmt"

	"github.com/merchant-prince/laravel-docker/internal/config"
	"github.com/merchant-prince/laravel-docker/internal/container"
	"github.com/merchant-prince/laravel-docker/internal/shell"
)

// NewContainerRunner returns the runner selected by cfg.Driver and a
// function releasing its resources.
func NewContainerRunner(cfg config.ContainerConfig) (container.Runner, func() error, error) {
	switch cfg.Driver {
	case config.DriverSDK:
		r, err := container.NewSDKRunner()
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	case config.DriverCLI, "":
		return container.NewCLIRunner(cfg.Runtime, shell.Exec{}), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown container driver %q", cfg.Driver)
	}
}
