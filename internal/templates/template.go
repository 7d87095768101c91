package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cast"
)

var (
	// ErrTemplateNotFound is returned when a template path does not name a
	// regular file under the template root.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrFileAlreadyExists is returned by Write when the target exists.
	ErrFileAlreadyExists = errors.New("another file with the same name already exists")

	// ErrUnresolvedToken is returned by Render when tokens remain after
	// substitution.
	ErrUnresolvedToken = errors.New("there are still unparsed variables in the template")

	// ErrInvalidArgument is returned for values or tokenizers Render cannot use.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Tokenizer wraps a variable name into the placeholder that stands for it in
// a template.
type Tokenizer func(name string) string

// DefaultTokenizer produces "[[NAME]]".
func DefaultTokenizer(name string) string {
	return "[[" + name + "]]"
}

// Variable is a named template value. Values are converted to strings when
// rendering.
type Variable struct {
	Name  string
	Value any
}

// Var creates a Variable.
func Var(name string, value any) Variable {
	return Variable{Name: name, Value: value}
}

// Variables is an ordered list of template values. Substitution happens in
// list order.
type Variables []Variable

// Names returns the variable names in order.
func (v Variables) Names() []string {
	names := make([]string, len(v))
	for i, variable := range v {
		names[i] = variable.Name
	}
	return names
}

// Blank returns a copy of v with every value set to "".
func (v Variables) Blank() Variables {
	blank := make(Variables, len(v))
	for i, variable := range v {
		blank[i] = Variable{Name: variable.Name, Value: ""}
	}
	return blank
}

// identifierPattern is the shape of a variable name inside a placeholder.
const identifierPattern = `[A-Z][A-Z0-9_]*`

// tokenSentinel is a valid identifier used to discover how a tokenizer
// wraps names.
const tokenSentinel = "TOKENIZERSENTINEL"

// Template is a single-use text template: load it, render it, write it.
type Template struct {
	name     string
	raw      string
	content  string
	rendered bool
}

// Load reads the template at path from root.
func Load(root fs.FS, path string) (*Template, error) {
	if !fs.ValidPath(path) {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
	}

	info, err := fs.Stat(root, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a file", ErrTemplateNotFound, path)
	}

	data, err := fs.ReadFile(root, path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}

	return &Template{name: path, raw: string(data)}, nil
}

// FromString creates a template from raw text.
func FromString(raw string) *Template {
	return &Template{name: "<string>", raw: raw}
}

// Name returns the template path, or "<string>" for FromString templates.
func (t *Template) Name() string {
	return t.name
}

// Raw returns the unrendered text.
func (t *Template) Raw() string {
	return t.raw
}

// Content returns the rendered text, or "" before Render succeeds.
func (t *Template) Content() string {
	return t.content
}

// Render substitutes every tokenize(name) in the raw text with its value.
// A nil tokenize uses DefaultTokenizer. Render fails with ErrUnresolvedToken
// if any placeholder shaped like tokenize(IDENTIFIER) remains afterwards.
// Rendering always starts from the raw text, so the result depends only on
// the template, vars and tokenize.
func (t *Template) Render(vars Variables, tokenize Tokenizer) error {
	if tokenize == nil {
		tokenize = DefaultTokenizer
	}

	leftover, err := leftoverPattern(tokenize)
	if err != nil {
		return err
	}

	content := t.raw
	for _, v := range vars {
		value, err := cast.ToStringE(v.Value)
		if err != nil {
			return fmt.Errorf("%w: value of %s: %v", ErrInvalidArgument, v.Name, err)
		}
		content = strings.ReplaceAll(content, tokenize(v.Name), value)
	}

	if token := leftover.FindString(content); token != "" {
		return fmt.Errorf("%w: %s in %s", ErrUnresolvedToken, token, t.name)
	}

	t.content = content
	t.rendered = true
	return nil
}

// Write creates path with the rendered content. It never touches an existing
// file: if anything exists at path, Write returns ErrFileAlreadyExists.
func (t *Template) Write(path string, perm fs.FileMode) error {
	if !t.rendered {
		return fmt.Errorf("%w: template %s has not been rendered", ErrInvalidArgument, t.name)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrFileAlreadyExists, path)
		}
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if _, err := f.WriteString(t.content); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	// Apply perm exactly, regardless of umask.
	if err := f.Chmod(perm); err != nil {
		f.Close()
		return fmt.Errorf("setting mode of %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// leftoverPattern builds a regexp matching any placeholder tokenize can
// produce for an identifier.
func leftoverPattern(tokenize Tokenizer) (*regexp.Regexp, error) {
	wrapped := tokenize(tokenSentinel)
	idx := strings.Index(wrapped, tokenSentinel)
	if idx < 0 {
		return nil, fmt.Errorf("%w: tokenizer must embed the variable name", ErrInvalidArgument)
	}

	prefix := wrapped[:idx]
	suffix := wrapped[idx+len(tokenSentinel):]
	if prefix == "" && suffix == "" {
		return nil, fmt.Errorf("%w: tokenizer must delimit the variable name", ErrInvalidArgument)
	}

	return regexp.Compile(regexp.QuoteMeta(prefix) + identifierPattern + regexp.QuoteMeta(suffix))
}
