// Package templates renders the project's configuration files from text
// templates containing "[[NAME]]" placeholders.
package templates

import (
	"embed"
	"io/fs"
	"os"
	"sort"
)

//go:embed files
var filesFS embed.FS

// Embedded returns the template root compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(filesFS, "files")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return sub
}

// Root returns the template root: dir when set, the embedded root otherwise.
func Root(dir string) fs.FS {
	if dir == "" {
		return Embedded()
	}
	return os.DirFS(dir)
}

// ListTemplateFiles returns the slash-separated paths of all files in root,
// sorted.
func ListTemplateFiles(root fs.FS) ([]string, error) {
	var files []string

	err := fs.WalkDir(root, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// Missing returns the names of registered templates absent from root.
func Missing(root fs.FS) ([]string, error) {
	files, err := ListTemplateFiles(root)
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f] = true
	}

	var missing []string
	for _, e := range List() {
		if !present[e.Name] {
			missing = append(missing, e.Name)
		}
	}
	return missing, nil
}
