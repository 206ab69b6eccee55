package vfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTree() *Tree {
	return NewTree(zap.NewNop())
}

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestIsDirectory(t *testing.T) {
	tree := newTestTree()
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	writeFixture(t, file, "x")

	assert.True(t, tree.IsDirectory(dir))
	assert.False(t, tree.IsDirectory(file))
	assert.False(t, tree.IsDirectory(filepath.Join(dir, "missing")))
}

func TestListMissingOrFileReturnsEmpty(t *testing.T) {
	tree := newTestTree()
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	writeFixture(t, file, "x")

	assert.Empty(t, tree.List(filepath.Join(dir, "missing")))
	assert.Empty(t, tree.List(file))
}

func TestListEntries(t *testing.T) {
	tree := newTestTree()
	dir := t.TempDir()
	writeFixture(t, filepath.Join(dir, "b.txt"), "hello")
	writeFixture(t, filepath.Join(dir, "a.png"), "\x89PNG")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	nodes := tree.List(dir)
	require.Len(t, nodes, 3)

	// os.ReadDir returns entries sorted by name
	assert.Equal(t, "a.png", nodes[0].Name)
	assert.Equal(t, "b.txt", nodes[1].Name)
	assert.Equal(t, "sub", nodes[2].Name)

	assert.False(t, nodes[0].IsDir)
	assert.Equal(t, int64(4), nodes[0].Size)
	assert.Equal(t, "image/png", nodes[0].MIMEType)

	assert.Equal(t, int64(5), nodes[1].Size)
	assert.Equal(t, "text/plain", nodes[1].MIMEType)
	assert.False(t, nodes[1].Modified.IsZero())

	assert.True(t, nodes[2].IsDir)
	assert.Equal(t, int64(0), nodes[2].Size)
}

func TestCreateDirectoryIdempotent(t *testing.T) {
	tree := newTestTree()
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, tree.CreateDirectory(dir))
	require.NoError(t, tree.CreateDirectory(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDeleteRecursive(t *testing.T) {
	tree := newTestTree()
	dir := t.TempDir()
	target := filepath.Join(dir, "docs")
	writeFixture(t, filepath.Join(target, "a.txt"), "1")
	writeFixture(t, filepath.Join(target, "sub", "b.txt"), "2")

	require.NoError(t, tree.DeleteRecursive(target))

	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err))

	for _, node := range tree.List(dir) {
		assert.NotEqual(t, "docs", node.Name)
	}
}

func TestRenameFile(t *testing.T) {
	tree := newTestTree()
	dir := t.TempDir()
	old := filepath.Join(dir, "old.txt")
	writeFixture(t, old, "content")

	require.NoError(t, tree.Rename(old, filepath.Join(dir, "new.txt")))

	_, err := os.Stat(old)
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(filepath.Join(dir, "new.txt"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestRenameDirectory(t *testing.T) {
	tree := newTestTree()
	dir := t.TempDir()
	writeFixture(t, filepath.Join(dir, "src", "deep", "f.txt"), "x")

	require.NoError(t, tree.Rename(filepath.Join(dir, "src"), filepath.Join(dir, "dst")))

	data, err := os.ReadFile(filepath.Join(dir, "dst", "deep", "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestRenameMissingSource(t *testing.T) {
	tree := newTestTree()
	dir := t.TempDir()

	err := tree.Rename(filepath.Join(dir, "ghost"), filepath.Join(dir, "new"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRenameNeverClobbers(t *testing.T) {
	tree := newTestTree()
	dir := t.TempDir()
	old := filepath.Join(dir, "old.txt")
	existing := filepath.Join(dir, "existing.txt")
	writeFixture(t, old, "old content")
	writeFixture(t, existing, "keep me")

	err := tree.Rename(old, existing)
	assert.ErrorIs(t, err, ErrExists)

	// Neither path was modified
	data, err := os.ReadFile(old)
	require.NoError(t, err)
	assert.Equal(t, "old content", string(data))
	data, err = os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))
}

func TestRenameCreatesDestinationParent(t *testing.T) {
	tree := newTestTree()
	dir := t.TempDir()
	old := filepath.Join(dir, "f.txt")
	writeFixture(t, old, "x")

	target := filepath.Join(dir, "a", "b", "f.txt")
	require.NoError(t, tree.Rename(old, target))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestDirectorySize(t *testing.T) {
	tree := newTestTree()
	dir := t.TempDir()
	writeFixture(t, filepath.Join(dir, "a.txt"), "12345")
	writeFixture(t, filepath.Join(dir, "sub", "b.txt"), "123")
	writeFixture(t, filepath.Join(dir, "sub", "deep", "c.txt"), "12")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "empty"), 0o755))

	assert.Equal(t, int64(10), tree.DirectorySize(dir))
}

func TestDirectorySizeMissingPath(t *testing.T) {
	tree := newTestTree()
	assert.Equal(t, int64(0), tree.DirectorySize(filepath.Join(t.TempDir(), "missing")))
}
