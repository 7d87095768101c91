package scaffold

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchant-prince/laravel-docker/internal/config"
	"github.com/merchant-prince/laravel-docker/internal/container"
	"github.com/merchant-prince/laravel-docker/internal/prompt"
	"github.com/merchant-prince/laravel-docker/internal/shell"
	"github.com/merchant-prince/laravel-docker/internal/templates"
	"github.com/merchant-prince/laravel-docker/internal/testutil"
)

const frameworkEnv = `APP_NAME=Laravel
APP_ENV=local
APP_URL=http://localhost

DB_CONNECTION=mysql    # driver
DB_HOST=127.0.0.1
DB_DATABASE=laravel
DB_USERNAME=root
DB_PASSWORD=
`

// fakeInstaller creates the framework directory the way composer would.
type fakeInstaller struct {
	specs []container.Spec
	err   error
}

func (f *fakeInstaller) Run(_ context.Context, spec container.Spec) error {
	f.specs = append(f.specs, spec)
	if f.err != nil {
		return f.err
	}
	name := spec.Command[len(spec.Command)-1]
	dir := filepath.Join(spec.Mounts[0].Source, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ".env"), []byte(frameworkEnv), 0o644)
}

type recordingExec struct {
	cmds []shell.Cmd
}

func (e *recordingExec) Run(_ context.Context, cmd shell.Cmd) error {
	e.cmds = append(e.cmds, cmd)
	return nil
}

func toolConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.SSL.KeySize = 1024
	return *cfg
}

func asker(input string) (*prompt.Asker, *bytes.Buffer) {
	var out bytes.Buffer
	return prompt.NewAsker(prompt.NewPlainReader(strings.NewReader(input), &out), &out), &out
}

func TestScaffolder_Run(t *testing.T) {
	base := t.TempDir()
	installer := &fakeInstaller{}
	gitExec := &recordingExec{}
	var out bytes.Buffer

	s := New(Options{
		BaseDir:   base,
		Tool:      toolConfig(),
		Container: installer,
		Git:       gitExec,
		Out:       &out,
	})
	a, _ := asker("Shop\nshop.local\n")

	result, err := s.Run(context.Background(), a)
	require.NoError(t, err)

	projectDir := filepath.Join(base, "Shop")
	assert.Equal(t, projectDir, result.ProjectDir)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, []string{"application/Shop/.env"}, result.Rewritten)

	for _, dir := range []string{"application", "configuration/nginx/conf.d", "configuration/nginx/ssl", "dockerfiles/php"} {
		assert.DirExists(t, filepath.Join(projectDir, filepath.FromSlash(dir)))
	}
	for _, file := range []string{
		"configuration/nginx/ssl/key.pem",
		"configuration/nginx/ssl/certificate.pem",
		"configuration/nginx/conf.d/default.conf",
		"docker-compose.yml",
		".env",
		".env.example",
		"run",
		"README.md",
	} {
		assert.FileExists(t, filepath.Join(projectDir, filepath.FromSlash(file)))
		assert.Contains(t, result.Files, file)
	}

	require.Len(t, installer.specs, 1)
	spec := installer.specs[0]
	assert.Equal(t, "composer:latest", spec.Image)
	assert.Equal(t, filepath.Join(projectDir, "application"), spec.Mounts[0].Source)
	assert.Contains(t, result.Files, "application/Shop/")

	require.Len(t, gitExec.cmds, 4)
	assert.Equal(t, projectDir, gitExec.cmds[0].Dir)
	assert.Equal(t, "git checkout -b development", gitExec.cmds[3].String())

	env, err := os.ReadFile(filepath.Join(projectDir, "application", "Shop", ".env"))
	require.NoError(t, err)
	assert.Equal(t, `APP_NAME=Shop
APP_ENV=local
APP_URL=https://shop.local

DB_CONNECTION=pgsql    # driver
DB_HOST=postgresql
DB_DATABASE=application
DB_USERNAME=username
DB_PASSWORD=password
`, string(env))

	banners := out.String()
	assert.Contains(t, banners, "Configuring the project")
	assert.Contains(t, banners, "Installing Laravel")

	tree := result.Tree()
	assert.Contains(t, tree, "Shop/")
	assert.Contains(t, tree, "docker-compose.yml")
}

func TestScaffolder_SkipInstallAndGit(t *testing.T) {
	base := t.TempDir()
	installer := &fakeInstaller{}
	gitExec := &recordingExec{}

	s := New(Options{
		BaseDir:     base,
		Tool:        toolConfig(),
		Name:        "Shop",
		Domain:      "shop.local:8443",
		SkipInstall: true,
		SkipGit:     true,
		Container:   installer,
		Git:         gitExec,
		Out:         &bytes.Buffer{},
	})
	a, promptOut := asker("")

	result, err := s.Run(context.Background(), a)
	require.NoError(t, err)

	assert.Empty(t, promptOut.String())
	assert.Empty(t, installer.specs)
	assert.Empty(t, gitExec.cmds)
	assert.Equal(t, []string{
		"Installing Laravel",
		"Initializing the git repository",
		"Configuring the application environment",
	}, result.Skipped)

	nginx, err := os.ReadFile(filepath.Join(base, "Shop", "configuration", "nginx", "conf.d", "default.conf"))
	require.NoError(t, err)
	assert.Contains(t, string(nginx), "server_name shop.local:8443;")

	assert.Equal(t, []string{
		".env",
		".env.example",
		".gitignore",
		"LICENSE",
		"README.md",
		"application/",
		"configuration/",
		"configuration/nginx/",
		"configuration/nginx/conf.d/",
		"configuration/nginx/conf.d/default.conf",
		"configuration/nginx/conf.d/utils.conf",
		"configuration/nginx/ssl/",
		"configuration/nginx/ssl/certificate.pem",
		"configuration/nginx/ssl/key.pem",
		"docker-compose.yml",
		"dockerfiles/",
		"dockerfiles/php/",
		"dockerfiles/php/Dockerfile",
		"dockerfiles/php/entrypoint.sh",
		"run",
	}, testutil.ListTree(t, filepath.Join(base, "Shop")))
}

func TestScaffolder_GitDisabledInConfig(t *testing.T) {
	tool := toolConfig()
	tool.Git.Enabled = false
	gitExec := &recordingExec{}

	s := New(Options{
		BaseDir:   t.TempDir(),
		Tool:      tool,
		Name:      "Shop",
		Container: &fakeInstaller{},
		Git:       gitExec,
		Out:       &bytes.Buffer{},
	})
	a, _ := asker("\n")

	result, err := s.Run(context.Background(), a)
	require.NoError(t, err)
	assert.Empty(t, gitExec.cmds)
	assert.Equal(t, []string{"Initializing the git repository"}, result.Skipped)
}

func TestScaffolder_ExistingProject(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "Shop"), 0o755))

	s := New(Options{BaseDir: base, Tool: toolConfig(), Name: "Shop", Out: &bytes.Buffer{}})
	a, _ := asker("")

	_, err := s.Run(context.Background(), a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuring the project")
}

func TestScaffolder_StopsAtFailingStep(t *testing.T) {
	base := t.TempDir()
	installer := &fakeInstaller{err: container.ErrNonZeroExit}
	gitExec := &recordingExec{}

	s := New(Options{
		BaseDir:   base,
		Tool:      toolConfig(),
		Name:      "Shop",
		Domain:    "shop.local",
		Container: installer,
		Git:       gitExec,
		Out:       &bytes.Buffer{},
	})
	a, _ := asker("")

	result, err := s.Run(context.Background(), a)
	require.Error(t, err)
	assert.True(t, errors.Is(err, container.ErrNonZeroExit))
	assert.Contains(t, err.Error(), "installing laravel")
	assert.Empty(t, gitExec.cmds)

	// Earlier steps stay in place.
	assert.FileExists(t, filepath.Join(result.ProjectDir, "docker-compose.yml"))
}

func TestScaffolder_TemplateOverride(t *testing.T) {
	base := t.TempDir()
	dir := t.TempDir()
	root, err := os.MkdirTemp(dir, "templates")
	require.NoError(t, err)

	// Copy the embedded root, then break one template.
	files, err := templates.ListTemplateFiles(templates.Embedded())
	require.NoError(t, err)
	for _, f := range files {
		tmpl, err := templates.Load(templates.Embedded(), f)
		require.NoError(t, err)
		target := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
		require.NoError(t, os.WriteFile(target, []byte(tmpl.Raw()), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "LICENSE"), []byte("[[LICENSE_HOLDER]]\n"), 0o644))

	tool := toolConfig()
	tool.Templates.Dir = root
	s := New(Options{BaseDir: base, Tool: tool, Name: "Shop", SkipInstall: true, SkipGit: true, Out: &bytes.Buffer{}})
	a, _ := asker("\n")

	_, err = s.Run(context.Background(), a)
	require.ErrorIs(t, err, templates.ErrUnresolvedToken)

	_, statErr := os.Stat(filepath.Join(base, "Shop", "docker-compose.yml"))
	assert.True(t, os.IsNotExist(statErr), "no template is written when one fails to render")
}

func TestHostname(t *testing.T) {
	assert.Equal(t, "shop.local", hostname("shop.local"))
	assert.Equal(t, "shop.local", hostname("shop.local:8443"))
	assert.Equal(t, "shop.local", hostname("shop.local/path"))
	assert.Equal(t, "127.0.0.1", hostname("127.0.0.1:8000"))
}
