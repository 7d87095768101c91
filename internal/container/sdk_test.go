package container

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/pkg/stdcopy"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	calls []string

	pullBody   string
	pullErr    error
	config     *container.Config
	hostConfig *container.HostConfig
	stdout     string
	stderr     string
	statusCode int64
	waitErr    error
	removed    bool
}

func (f *fakeEngine) ImagePull(_ context.Context, ref string, _ image.PullOptions) (io.ReadCloser, error) {
	f.calls = append(f.calls, "pull "+ref)
	if f.pullErr != nil {
		return nil, f.pullErr
	}
	return io.NopCloser(strings.NewReader(f.pullBody)), nil
}

func (f *fakeEngine) ContainerCreate(_ context.Context, config *container.Config, hostConfig *container.HostConfig,
	_ *network.NetworkingConfig, _ *ocispec.Platform, _ string) (container.CreateResponse, error) {
	f.calls = append(f.calls, "create")
	f.config = config
	f.hostConfig = hostConfig
	return container.CreateResponse{ID: "abc123"}, nil
}

func (f *fakeEngine) ContainerStart(_ context.Context, id string, _ container.StartOptions) error {
	f.calls = append(f.calls, "start "+id)
	return nil
}

func (f *fakeEngine) ContainerLogs(_ context.Context, id string, _ container.LogsOptions) (io.ReadCloser, error) {
	f.calls = append(f.calls, "logs "+id)
	var buf bytes.Buffer
	if f.stdout != "" {
		_, _ = stdcopy.NewStdWriter(&buf, stdcopy.Stdout).Write([]byte(f.stdout))
	}
	if f.stderr != "" {
		_, _ = stdcopy.NewStdWriter(&buf, stdcopy.Stderr).Write([]byte(f.stderr))
	}
	return io.NopCloser(&buf), nil
}

func (f *fakeEngine) ContainerWait(_ context.Context, id string, _ container.WaitCondition) (<-chan container.WaitResponse, <-chan error) {
	f.calls = append(f.calls, "wait "+id)
	statusCh := make(chan container.WaitResponse, 1)
	errCh := make(chan error, 1)
	if f.waitErr != nil {
		errCh <- f.waitErr
	} else {
		statusCh <- container.WaitResponse{StatusCode: f.statusCode}
	}
	return statusCh, errCh
}

func (f *fakeEngine) ContainerRemove(_ context.Context, id string, _ container.RemoveOptions) error {
	f.calls = append(f.calls, "remove "+id)
	f.removed = true
	return nil
}

func (f *fakeEngine) Close() error { return nil }

func testSpec() Spec {
	return Spec{
		Image:   "composer:latest",
		Command: []string{"composer", "--version"},
		User:    "1000:1000",
		Mounts:  []Mount{{Source: "/tmp/Shop/application", Target: "/application"}},
		WorkDir: "/application",
	}
}

func TestSDKRunner_Run(t *testing.T) {
	engine := &fakeEngine{
		pullBody: `{"status":"Pulling from library/composer"}` + "\n" + `{"status":"Download complete"}` + "\n",
		stdout:   "Composer version 2\n",
		stderr:   "warning\n",
	}
	var stdout, stderr bytes.Buffer
	r := &SDKRunner{api: engine, Stdout: &stdout, Stderr: &stderr}

	require.NoError(t, r.Run(context.Background(), testSpec()))

	assert.Equal(t, []string{
		"pull composer:latest",
		"create",
		"start abc123",
		"logs abc123",
		"wait abc123",
		"remove abc123",
	}, engine.calls)

	assert.Equal(t, "composer:latest", engine.config.Image)
	assert.Equal(t, []string{"composer", "--version"}, []string(engine.config.Cmd))
	assert.Equal(t, "1000:1000", engine.config.User)
	assert.Equal(t, "/application", engine.config.WorkingDir)
	assert.Equal(t, []mount.Mount{{Type: mount.TypeBind, Source: "/tmp/Shop/application", Target: "/application"}}, engine.hostConfig.Mounts)
	assert.False(t, engine.hostConfig.AutoRemove)

	assert.Equal(t, "Composer version 2\n", stdout.String())
	assert.Equal(t, "warning\n", stderr.String())
}

func TestSDKRunner_NonZeroExit(t *testing.T) {
	engine := &fakeEngine{statusCode: 1}
	r := &SDKRunner{api: engine, Stdout: io.Discard, Stderr: io.Discard}

	err := r.Run(context.Background(), testSpec())
	assert.ErrorIs(t, err, ErrNonZeroExit)
	assert.True(t, engine.removed)
}

func TestSDKRunner_PullError(t *testing.T) {
	engine := &fakeEngine{pullErr: errors.New("no such image")}
	r := &SDKRunner{api: engine}

	err := r.Run(context.Background(), testSpec())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such image")
	assert.Equal(t, []string{"pull composer:latest"}, engine.calls)
}

func TestSDKRunner_PullStreamError(t *testing.T) {
	engine := &fakeEngine{pullBody: `{"errorDetail":{"message":"manifest unknown"},"error":"manifest unknown"}` + "\n"}
	r := &SDKRunner{api: engine}

	err := r.Run(context.Background(), testSpec())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest unknown")
}

func TestSDKRunner_WaitError(t *testing.T) {
	engine := &fakeEngine{waitErr: errors.New("daemon gone")}
	r := &SDKRunner{api: engine, Stdout: io.Discard, Stderr: io.Discard}

	err := r.Run(context.Background(), testSpec())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daemon gone")
	assert.True(t, engine.removed)
}
