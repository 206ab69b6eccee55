package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStorage(t *testing.T, quota int64) *Storage {
	t.Helper()
	return New(Config{Root: t.TempDir(), QuotaBytes: quota}, zap.NewNop())
}

func (s *Storage) mustResolve(t *testing.T, tenant, sub string) string {
	t.Helper()
	path, err := s.ResolvePath(tenant, sub)
	require.NoError(t, err)
	return path
}

func TestStorageWriteReadRoundTrip(t *testing.T) {
	s := newTestStorage(t, 1<<20)
	path := s.mustResolve(t, "u1", "docs/hello.txt")

	require.NoError(t, s.Write("u1", path, []byte("hello world")))

	got, err := s.ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
}

// Ceiling 10: write 5 bytes, reject 6 more, then shrink the first file.
func TestStorageQuotaScenario(t *testing.T) {
	s := newTestStorage(t, 10)

	a := s.mustResolve(t, "u1", "a.txt")
	require.NoError(t, s.Write("u1", a, []byte("12345")))
	used, err := s.UsedBytes("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), used)

	b := s.mustResolve(t, "u1", "b.txt")
	err = s.Write("u1", b, []byte("123456"))
	var qe *QuotaError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, int64(5), qe.Used)
	assert.Equal(t, int64(10), qe.Limit)
	assert.Equal(t, int64(6), qe.Requested)

	used, err = s.UsedBytes("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), used, "rejected write must not consume quota")
	assert.False(t, s.Exists(b), "rejected write must not leave a file behind")

	// Overwrite shrinks a.txt; the delta is negative so it passes
	require.NoError(t, s.Write("u1", a, []byte("1234")))
	used, err = s.UsedBytes("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), used)
}

func TestStorageSameSizeOverwriteAtFullUsage(t *testing.T) {
	s := newTestStorage(t, 5)
	path := s.mustResolve(t, "u1", "a.txt")
	require.NoError(t, s.Write("u1", path, []byte("12345")))

	// 100% used; same-size edit is charged a zero delta
	require.NoError(t, s.Write("u1", path, []byte("abcde")))

	got, err := s.ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "abcde", got)
}

func TestStorageGrowingOverwriteChargedByDelta(t *testing.T) {
	s := newTestStorage(t, 10)
	path := s.mustResolve(t, "u1", "a.txt")
	require.NoError(t, s.Write("u1", path, []byte("12345678")))

	// used=8, new size 11: delta 3 exceeds the 2 remaining bytes
	err := s.Write("u1", path, []byte("12345678901"))
	assert.True(t, IsQuotaError(err))

	// used=8, new size 10: delta 2 fits exactly
	require.NoError(t, s.Write("u1", path, []byte("1234567890")))
}

func TestStorageStat(t *testing.T) {
	s := newTestStorage(t, 1<<20)
	path := s.mustResolve(t, "u1", "readme.md")
	require.NoError(t, s.Write("u1", path, []byte("# hi")))

	node, err := s.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, "readme.md", node.Name)
	assert.False(t, node.IsDir)
	assert.Equal(t, int64(4), node.Size)
	assert.Equal(t, "text/markdown", node.MIMEType)
	assert.False(t, node.Modified.IsZero())

	_, err = s.Stat(s.mustResolve(t, "u1", "ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorageUsage(t *testing.T) {
	s := newTestStorage(t, 10)
	path := s.mustResolve(t, "u1", "a.txt")
	require.NoError(t, s.Write("u1", path, []byte("1234567")))

	usage, err := s.Usage("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), usage.Used)
	assert.Equal(t, int64(10), usage.Limit)
	assert.Equal(t, int64(3), usage.Remaining)
}

func TestStorageDirectoriesNotCharged(t *testing.T) {
	s := newTestStorage(t, 10)
	require.NoError(t, s.CreateDirectory(s.mustResolve(t, "u1", "a/b/c")))

	used, err := s.UsedBytes("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), used)
}
