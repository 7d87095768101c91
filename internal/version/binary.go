package version

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"github.com/merchant-prince/laravel-docker/internal/shell"
)

// versionRegex matches output like "Docker version 27.3.1, build ce12230"
// or "git version 2.43.0".
var versionRegex = regexp.MustCompile(`v?\d+\.\d+(?:\.\d+)?(?:-[a-zA-Z0-9.]+)?`)

// BinaryInfo describes an external tool the CLI shells out to.
type BinaryInfo struct {
	Name string `json:"name"`

	// Version is empty when the binary was not found or did not report one.
	Version string `json:"version"`

	Path  string `json:"path"`
	Found bool   `json:"found"`

	// Message explains why detection failed.
	Message string `json:"message,omitempty"`
}

// DetectBinary finds name in PATH and asks it for its version.
func DetectBinary(ctx context.Context, exec shell.Executor, name string) BinaryInfo {
	path, err := shell.LookPath(name)
	if err != nil {
		return BinaryInfo{Name: name, Message: name + " not found in PATH"}
	}

	info := BinaryInfo{Name: name, Path: path, Found: true}

	var out bytes.Buffer
	err = exec.Run(ctx, shell.Cmd{
		Name:   path,
		Args:   []string{"--version"},
		Stdin:  strings.NewReader(""),
		Stdout: &out,
		Stderr: &out,
	})
	if err != nil {
		info.Message = "failed to get version: " + err.Error()
		return info
	}

	version, err := extractVersion(out.String())
	if err != nil {
		info.Message = err.Error()
		return info
	}
	info.Version = version
	return info
}

// extractVersion pulls the first version number out of output.
func extractVersion(output string) (string, error) {
	match := versionRegex.FindString(output)
	if match == "" {
		return "", &versionParseError{output: strings.TrimSpace(output)}
	}
	return strings.TrimPrefix(match, "v"), nil
}

// versionParseError indicates failure to parse version output.
type versionParseError struct {
	output string
}

func (e *versionParseError) Error() string {
	return "failed to parse version from output: " + e.output
}
