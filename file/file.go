// Package file reads the CLI inputs.
package file

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Stdin is the path that reads standard input.
const Stdin = "-"

// ReadText returns the content of path, or of stdin when path is "-".
func ReadText(path string, stdin io.Reader) (string, error) {
	if path == Stdin {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Expand replaces every directory in paths by the regular files it
// contains, sorted and without hidden ones. Other paths are kept as given.
func Expand(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		if path == Stdin {
			files = append(files, path)
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		var dir []string
		for _, e := range entries {
			if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
				continue
			}
			dir = append(dir, filepath.Join(path, e.Name()))
		}
		slices.Sort(dir)
		files = append(files, dir...)
	}
	return files, nil
}

// Title returns the doc title for path: the base name without extension.
func Title(path string) string {
	if path == Stdin {
		return "stdin"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WriteJSON writes v indented, followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
