package container

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/jsonmessage"
	"github.com/docker/docker/pkg/stdcopy"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/merchant-prince/laravel-docker/internal/output"
)

// engineAPI is the part of the Docker client SDKRunner uses.
type engineAPI interface {
	ImagePull(ctx context.Context, ref string, options image.PullOptions) (io.ReadCloser, error)
	ContainerCreate(ctx context.Context, config *container.Config, hostConfig *container.HostConfig,
		networkingConfig *network.NetworkingConfig, platform *ocispec.Platform, containerName string) (container.CreateResponse, error)
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerLogs(ctx context.Context, containerID string, options container.LogsOptions) (io.ReadCloser, error)
	ContainerWait(ctx context.Context, containerID string, condition container.WaitCondition) (<-chan container.WaitResponse, <-chan error)
	ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error
	Close() error
}

// SDKRunner runs containers through the Docker Engine API. Output is
// streamed; terminal input is not attached.
type SDKRunner struct {
	api engineAPI

	Stdout io.Writer
	Stderr io.Writer
}

// NewSDKRunner connects using the DOCKER_* environment.
func NewSDKRunner() (*SDKRunner, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("creating docker client: %w", err)
	}
	return &SDKRunner{api: cli}, nil
}

// Close releases the client.
func (r *SDKRunner) Close() error {
	return r.api.Close()
}

// Run implements Runner: pull, create, start, stream logs, wait, remove.
func (r *SDKRunner) Run(ctx context.Context, spec Spec) error {
	if err := validateSpec(spec); err != nil {
		return err
	}
	if spec.Interactive {
		output.Debug("terminal input is not attached by the sdk driver", "image", spec.Image)
	}

	if err := output.RunWithSpinner(ctx, func() error {
		return r.pull(ctx, spec.Image)
	}, output.WithTitle("Pulling "+spec.Image)); err != nil {
		return err
	}

	mounts := make([]mount.Mount, 0, len(spec.Mounts))
	for _, m := range spec.Mounts {
		mounts = append(mounts, mount.Mount{Type: mount.TypeBind, Source: m.Source, Target: m.Target})
	}

	created, err := r.api.ContainerCreate(ctx,
		&container.Config{
			Image:      spec.Image,
			Cmd:        spec.Command,
			User:       spec.User,
			WorkingDir: spec.WorkDir,
		},
		&container.HostConfig{Mounts: mounts},
		nil, nil, "")
	if err != nil {
		return fmt.Errorf("container create: %w", err)
	}
	output.Debug("container created", "id", created.ID, "image", spec.Image)

	defer func() {
		if err := r.api.ContainerRemove(context.Background(), created.ID, container.RemoveOptions{Force: true}); err != nil {
			output.Warn("removing container failed", "id", created.ID, "err", err)
		}
	}()

	if err := r.api.ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		return fmt.Errorf("container start: %w", err)
	}

	logs, err := r.api.ContainerLogs(ctx, created.ID, container.LogsOptions{ShowStdout: true, ShowStderr: true, Follow: true})
	if err != nil {
		return fmt.Errorf("container logs: %w", err)
	}
	copyErr := make(chan error, 1)
	go func() {
		_, err := stdcopy.StdCopy(r.stdout(), r.stderr(), logs)
		logs.Close()
		copyErr <- err
	}()

	code, err := r.wait(ctx, created.ID)
	if err != nil {
		return err
	}
	if err := <-copyErr; err != nil {
		output.Debug("log stream ended with error", "err", err)
	}

	if code != 0 {
		return fmt.Errorf("%w: %s exited with code %d", ErrNonZeroExit, spec.Image, code)
	}
	return nil
}

func (r *SDKRunner) pull(ctx context.Context, ref string) error {
	progress, err := r.api.ImagePull(ctx, ref, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("image pull %s: %w", ref, err)
	}
	defer progress.Close()

	if err := jsonmessage.DisplayJSONMessagesStream(progress, io.Discard, 0, false, nil); err != nil {
		return fmt.Errorf("image pull %s: %w", ref, err)
	}
	return nil
}

func (r *SDKRunner) wait(ctx context.Context, id string) (int64, error) {
	statusCh, errCh := r.api.ContainerWait(ctx, id, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		return 0, fmt.Errorf("container wait: %w", err)
	case status := <-statusCh:
		if status.Error != nil && status.Error.Message != "" {
			return 0, fmt.Errorf("container wait: %s", status.Error.Message)
		}
		return status.StatusCode, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (r *SDKRunner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *SDKRunner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}
