package vfs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadTextRoundTrip(t *testing.T) {
	a := NewAccessor()
	path := filepath.Join(t.TempDir(), "note.md")
	content := "# Title\n\nsome *markdown* text\n"

	require.NoError(t, a.Write(path, []byte(content)))

	got, err := a.ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestWriteAutoVivifiesParents(t *testing.T) {
	a := NewAccessor()
	path := filepath.Join(t.TempDir(), "deep", "nested", "dirs", "f.txt")

	require.NoError(t, a.Write(path, []byte("x")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestWriteOverwrites(t *testing.T) {
	a := NewAccessor()
	path := filepath.Join(t.TempDir(), "f.txt")

	require.NoError(t, a.Write(path, []byte("first version")))
	require.NoError(t, a.Write(path, []byte("second")))

	got, err := a.ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestReadTextRejectsBinaryExtensions(t *testing.T) {
	a := NewAccessor()
	dir := t.TempDir()

	for _, name := range []string{"img.png", "img.jpg", "img.jpeg", "img.gif", "img.svg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, a.Write(path, []byte("data")))

		_, err := a.ReadText(path)
		assert.ErrorIs(t, err, ErrNotText, "file %s", name)
	}
}

func TestReadTextMissing(t *testing.T) {
	a := NewAccessor()

	_, err := a.ReadText(filepath.Join(t.TempDir(), "ghost.txt"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadBinary(t *testing.T) {
	a := NewAccessor()
	path := filepath.Join(t.TempDir(), "img.png")
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	require.NoError(t, a.Write(path, payload))

	content, err := a.ReadBinary(path)
	require.NoError(t, err)
	assert.Equal(t, payload, content.Data)
	assert.Equal(t, "image/png", content.MIMEType)
	assert.Equal(t, int64(len(payload)), content.Size)
}

func TestReadBinarySniffsUnknownExtension(t *testing.T) {
	a := NewAccessor()
	path := filepath.Join(t.TempDir(), "data.xyz")
	require.NoError(t, a.Write(path, []byte("plain words here")))

	content, err := a.ReadBinary(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(content.MIMEType, "text/plain"), "got %s", content.MIMEType)
}

func TestReadBinaryMissing(t *testing.T) {
	a := NewAccessor()

	_, err := a.ReadBinary(filepath.Join(t.TempDir(), "ghost.bin"))
	assert.ErrorIs(t, err, ErrNotFound)
}
