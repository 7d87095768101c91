// Package envfile reads and rewrites KEY=VALUE environment files.
package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cast"
	"github.com/subosito/gotenv"
)

// ErrInvalidArgument is returned when the replacement values are unusable.
var ErrInvalidArgument = errors.New("invalid argument")

// commentGap separates a value from its trailing comment on rewritten lines.
const commentGap = "    "

var lineRegex = regexp.MustCompile(`^(\w+)=(\S+)?\s*(#.*)?$`)

// Rewrite replaces the values of the keys in replacement in the file at path.
// Lines that are not KEY=VALUE assignments are kept verbatim, and the line
// count and order never change.
func Rewrite(path string, replacement map[string]any) error {
	values, err := normalize(replacement)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading env file: %w", err)
	}

	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reading env file: %w", err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temporary env file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := rewriteLines(in, tmp, values); err != nil {
		return fmt.Errorf("rewriting %s: %w", path, err)
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		return fmt.Errorf("setting mode of %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temporary env file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	committed = true
	return nil
}

// RewriteLines copies r to w, replacing the values of the keys in
// replacement.
func RewriteLines(r io.Reader, w io.Writer, replacement map[string]any) error {
	values, err := normalize(replacement)
	if err != nil {
		return err
	}
	return rewriteLines(r, w, values)
}

func rewriteLines(r io.Reader, w io.Writer, values map[string]string) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	bw := bufio.NewWriter(w)

	for scanner.Scan() {
		if _, err := bw.WriteString(RewriteLine(scanner.Text(), values) + "\n"); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return bw.Flush()
}

// RewriteLine rewrites a single line. Trailing whitespace is removed before
// matching; a line that is not an assignment is returned unchanged.
func RewriteLine(line string, values map[string]string) string {
	trimmed := strings.TrimRightFunc(line, isSpace)
	m := lineRegex.FindStringSubmatch(trimmed)
	if m == nil {
		return line
	}

	key, value, comment := m[1], m[2], m[3]
	if v, ok := values[key]; ok {
		value = v
	}

	out := key + "=" + value
	if comment != "" {
		out += commentGap + comment
	}
	return out
}

// Read parses the KEY=VALUE assignments of the file at path.
func Read(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading env file: %w", err)
	}
	defer f.Close()

	env, err := gotenv.StrictParse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return env, nil
}

func normalize(replacement map[string]any) (map[string]string, error) {
	if replacement == nil {
		return nil, fmt.Errorf("%w: the replacement argument should be a mapping", ErrInvalidArgument)
	}

	values := make(map[string]string, len(replacement))
	for k, v := range replacement {
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, fmt.Errorf("%w: value of %s: %v", ErrInvalidArgument, k, err)
		}
		values[k] = s
	}
	return values, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\v' || r == '\f'
}
