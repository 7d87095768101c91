package templates

import "io/fs"

// FileSpec describes one file to generate.
type FileSpec struct {
	// Template is the template path under the root.
	Template string

	// Target is the output path relative to the generator's target directory.
	Target string

	// Vars are substituted into the template.
	Vars Variables

	// Mode is the file mode of the output. Zero means 0644.
	Mode fs.FileMode

	// Description is shown next to the file. Empty means the registry's.
	Description string
}

// GenerateOptions configures file generation.
type GenerateOptions struct {
	// Root is the template root. Nil means the embedded root.
	Root fs.FS

	// TargetDir is the existing directory the files are created in.
	TargetDir string

	// Tokenizer wraps variable names. Nil means DefaultTokenizer.
	Tokenizer Tokenizer
}

// GeneratedFile is a file created by the generator.
type GeneratedFile struct {
	// Path is relative to the target directory, slash-separated.
	Path string

	// Description is a short human description.
	Description string
}

// GenerateResult contains the result of generation.
type GenerateResult struct {
	// Files lists created files in creation order.
	Files []GeneratedFile

	// TargetDir is the directory where files were created.
	TargetDir string
}

// Descriptions maps created paths to their descriptions, for tree rendering.
func (r *GenerateResult) Descriptions() map[string]string {
	m := make(map[string]string, len(r.Files))
	for _, f := range r.Files {
		m[f.Path] = f.Description
	}
	return m
}
