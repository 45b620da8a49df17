package file

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quijote.txt")
	require.NoError(t, os.WriteFile(path, []byte("En un lugar"), 0o600))

	text, err := ReadText(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "En un lugar", text)

	text, err = ReadText(Stdin, strings.NewReader("de la Mancha"))
	require.NoError(t, err)
	assert.Equal(t, "de la Mancha", text)

	_, err = ReadText(filepath.Join(t.TempDir(), "missing"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "quijote", Title("/a/b/quijote.txt"))
	assert.Equal(t, "stdin", Title(Stdin))
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt", ".hidden"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o700))

	single := filepath.Join(t.TempDir(), "c.txt")
	require.NoError(t, os.WriteFile(single, []byte("x"), 0o600))

	files, err := Expand([]string{single, dir, Stdin})
	require.NoError(t, err)
	assert.Equal(t, []string{single, filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"), Stdin}, files)

	_, err = Expand([]string{filepath.Join(dir, "missing")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}
