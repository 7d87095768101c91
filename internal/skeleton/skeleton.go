// Package skeleton creates directory structures described in YAML.
//
// In a structure, a mapping is a directory holding its entries and an empty
// string is an empty file:
//
//	application: {}
//	configuration:
//	  nginx:
//	    conf.d: {}
//	README.md: ""
package skeleton

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/merchant-prince/laravel-docker/internal/output"
	"github.com/merchant-prince/laravel-docker/internal/templates"
)

// ErrIllFormed is returned for structures that are not made only of
// mappings and empty strings.
var ErrIllFormed = errors.New("the directory structure provided is ill-formed")

//go:embed project.yaml
var projectStructure string

// Node is a directory or file of a structure.
type Node struct {
	Name string

	// Dir is true for directories.
	Dir bool

	// Children are the entries of a directory, in document order.
	Children []Node
}

// Structure is an ordered list of top-level nodes.
type Structure []Node

// Parse reads a structure from YAML. The whole document is checked before
// Parse returns; an empty document is an empty structure.
func Parse(data []byte) (Structure, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIllFormed, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return Structure{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: the top level must be a mapping", ErrIllFormed)
	}
	return parseMapping(root, "")
}

func parseMapping(m *yaml.Node, parent string) ([]Node, error) {
	nodes := make([]Node, 0, len(m.Content)/2)
	seen := make(map[string]bool, len(m.Content)/2)

	for i := 0; i+1 < len(m.Content); i += 2 {
		key, value := m.Content[i], m.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: non-scalar name in %q (line %d)", ErrIllFormed, parent, key.Line)
		}
		name := key.Value
		path := name
		if parent != "" {
			path = parent + "/" + name
		}
		if err := checkName(name); err != nil {
			return nil, fmt.Errorf("%w: %q %v (line %d)", ErrIllFormed, path, err, key.Line)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %q is listed twice (line %d)", ErrIllFormed, path, key.Line)
		}
		seen[name] = true

		switch {
		case value.Kind == yaml.MappingNode:
			children, err := parseMapping(value, path)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, Node{Name: name, Dir: true, Children: children})
		case value.Kind == yaml.ScalarNode && value.Tag == "!!str" && value.Value == "":
			nodes = append(nodes, Node{Name: name})
		default:
			return nil, fmt.Errorf("%w: %q is neither a mapping nor an empty string (line %d)", ErrIllFormed, path, value.Line)
		}
	}
	return nodes, nil
}

func checkName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return errors.New("is not a valid name")
	case strings.ContainsAny(name, `/\`):
		return errors.New("contains a path separator")
	}
	return nil
}

// Create creates s under base, which must exist. Nothing that already
// exists is reused. It returns the created paths relative to base,
// slash-separated, with a trailing "/" on directories.
func (s Structure) Create(base string) ([]string, error) {
	info, err := os.Stat(base)
	if err != nil {
		return nil, fmt.Errorf("checking base directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", base)
	}

	var created []string
	err = create(base, "", s, &created)
	return created, err
}

func create(base, rel string, nodes []Node, created *[]string) error {
	for _, n := range nodes {
		relPath := n.Name
		if rel != "" {
			relPath = rel + "/" + n.Name
		}
		path := filepath.Join(base, filepath.FromSlash(relPath))

		if n.Dir {
			if err := os.Mkdir(path, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", path, err)
			}
			*created = append(*created, relPath+"/")
			output.Debug("created directory", "path", relPath)
			if err := create(base, relPath, n.Children, created); err != nil {
				return err
			}
			continue
		}

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			return fmt.Errorf("creating file %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", path, err)
		}
		*created = append(*created, relPath)
		output.Debug("created file", "path", relPath)
	}
	return nil
}

// Project returns the skeleton of a project named name.
func Project(name string) (Structure, error) {
	tmpl := templates.FromString(projectStructure)
	if err := tmpl.Render(templates.Variables{templates.Var("PROJECT_NAME", name)}, nil); err != nil {
		return nil, fmt.Errorf("rendering project skeleton: %w", err)
	}
	return Parse([]byte(tmpl.Content()))
}
