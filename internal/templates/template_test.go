package templates

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_UnresolvedToken(t *testing.T) {
	tmpl := FromString("Hi [[NAME]], bye [[OTHER]]")

	err := tmpl.Render(Variables{Var("NAME", "Bob")}, nil)

	require.ErrorIs(t, err, ErrUnresolvedToken)
	assert.Contains(t, err.Error(), "[[OTHER]]")
	assert.Empty(t, tmpl.Content())
}

func TestRender_AllResolved(t *testing.T) {
	tmpl := FromString("Hi [[NAME]], bye [[OTHER]]")

	err := tmpl.Render(Variables{Var("NAME", "Bob"), Var("OTHER", "x")}, nil)

	require.NoError(t, err)
	assert.Equal(t, "Hi Bob, bye x", tmpl.Content())
}

func TestRender_Deterministic(t *testing.T) {
	vars := Variables{Var("NAME", "Bob"), Var("PORT", 4444)}
	raw := "[[NAME]] listens on [[PORT]]\n[[NAME]] again"

	first := FromString(raw)
	require.NoError(t, first.Render(vars, nil))
	second := FromString(raw)
	require.NoError(t, second.Render(vars, nil))

	assert.Equal(t, first.Content(), second.Content())
	assert.Equal(t, "Bob listens on 4444\nBob again", first.Content())

	// Rendering again starts from the raw text.
	require.NoError(t, first.Render(Variables{Var("NAME", "Ann"), Var("PORT", 1)}, nil))
	assert.Equal(t, "Ann listens on 1\nAnn again", first.Content())
}

func TestRender_ChecksEveryLine(t *testing.T) {
	tmpl := FromString("first line\nsecond [[MISSING]] line\n")
	assert.ErrorIs(t, tmpl.Render(nil, nil), ErrUnresolvedToken)
}

func TestRender_IgnoresNonIdentifierBrackets(t *testing.T) {
	tmpl := FromString("if [[ -f x ]]; then [[lower]] [[1ABC]]; fi")
	require.NoError(t, tmpl.Render(nil, nil))
	assert.Equal(t, tmpl.Raw(), tmpl.Content())
}

func TestRender_CustomTokenizer(t *testing.T) {
	braces := func(name string) string { return "{{" + name + "}}" }

	tmpl := FromString("server_name {{DOMAIN}}; [[DOMAIN]]")
	require.NoError(t, tmpl.Render(Variables{Var("DOMAIN", "shop.local")}, braces))
	assert.Equal(t, "server_name shop.local; [[DOMAIN]]", tmpl.Content())

	tmpl = FromString("{{DOMAIN}} {{PORT}}")
	assert.ErrorIs(t, tmpl.Render(Variables{Var("DOMAIN", "shop.local")}, braces), ErrUnresolvedToken)
}

func TestRender_InvalidTokenizer(t *testing.T) {
	tests := map[string]Tokenizer{
		"drops the name":   func(string) string { return "[[]]" },
		"does not delimit": func(name string) string { return name },
	}

	for name, tokenize := range tests {
		t.Run(name, func(t *testing.T) {
			err := FromString("x").Render(nil, tokenize)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestRender_CoercesValues(t *testing.T) {
	tmpl := FromString("[[UID]]:[[GID]] [[ON]] [[EMPTY]]")
	require.NoError(t, tmpl.Render(Variables{
		Var("UID", 1000),
		Var("GID", int64(1000)),
		Var("ON", true),
		Var("EMPTY", nil),
	}, nil))
	assert.Equal(t, "1000:1000 true ", tmpl.Content())
}

func TestRender_UncoercibleValue(t *testing.T) {
	tmpl := FromString("[[X]]")
	err := tmpl.Render(Variables{Var("X", struct{ A int }{1})}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestLoad(t *testing.T) {
	root := fstest.MapFS{
		"nginx/default.conf": {Data: []byte("server_name [[PROJECT_DOMAIN]];")},
		"nginx/empty":        {Mode: os.ModeDir},
	}

	tmpl, err := Load(root, "nginx/default.conf")
	require.NoError(t, err)
	assert.Equal(t, "nginx/default.conf", tmpl.Name())
	assert.Equal(t, "server_name [[PROJECT_DOMAIN]];", tmpl.Raw())

	for _, missing := range []string{"nginx/missing.conf", "nginx", "../etc/passwd", "/abs"} {
		t.Run(missing, func(t *testing.T) {
			_, err := Load(root, missing)
			assert.ErrorIs(t, err, ErrTemplateNotFound)
		})
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "entrypoint.sh")

	tmpl := FromString("#!/bin/sh\n")
	require.NoError(t, tmpl.Render(nil, nil))
	require.NoError(t, tmpl.Write(path, 0o755))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestWrite_ExistingFileUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o600))

	tmpl := FromString("replacement")
	require.NoError(t, tmpl.Render(nil, nil))

	for i := 0; i < 2; i++ {
		err := tmpl.Write(path, 0o644)
		require.ErrorIs(t, err, ErrFileAlreadyExists)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWrite_ExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	tmpl := FromString("x")
	require.NoError(t, tmpl.Render(nil, nil))

	assert.ErrorIs(t, tmpl.Write(dir, 0o644), ErrFileAlreadyExists)
}

func TestWrite_RequiresRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x")
	err := FromString("x").Write(path, 0o644)

	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.NoFileExists(t, path)
}

func TestVariables(t *testing.T) {
	vars := Variables{Var("A", 1), Var("B", "two")}

	assert.Equal(t, []string{"A", "B"}, vars.Names())
	assert.Equal(t, Variables{Var("A", ""), Var("B", "")}, vars.Blank())
	assert.Equal(t, 1, vars[0].Value, "Blank does not modify the receiver")
}
