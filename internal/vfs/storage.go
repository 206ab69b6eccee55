package vfs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Config holds the storage layout and ceiling.
type Config struct {
	// Root is the directory holding one subdirectory per tenant.
	Root string
	// QuotaBytes is the maximum storage per tenant, shared by all tenants.
	QuotaBytes int64
}

// Storage composes the resolver, directory tree, quota tracker, and
// content accessor into the surface the route layer consumes.
type Storage struct {
	resolver *Resolver
	tree     *Tree
	quota    *Quota
	content  *Accessor
	log      *zap.Logger
}

// New creates a Storage rooted at cfg.Root.
func New(cfg Config, log *zap.Logger) *Storage {
	resolver := NewResolver(cfg.Root)
	tree := NewTree(log)
	return &Storage{
		resolver: resolver,
		tree:     tree,
		quota:    NewQuota(resolver, tree, cfg.QuotaBytes, log),
		content:  NewAccessor(),
		log:      log,
	}
}

// ResolvePath maps a tenant id and untrusted sub-path to an absolute path
// inside the tenant's sandbox.
func (s *Storage) ResolvePath(tenantID, subPath string) (string, error) {
	return s.resolver.Resolve(tenantID, subPath)
}

// ListDirectory lists a resolved directory.
func (s *Storage) ListDirectory(path string) []Node {
	return s.tree.List(path)
}

// IsDirectory reports whether a resolved path is an existing directory.
func (s *Storage) IsDirectory(path string) bool {
	return s.tree.IsDirectory(path)
}

// Exists reports whether a resolved path exists at all.
func (s *Storage) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Stat returns metadata for a single resolved node.
func (s *Storage) Stat(path string) (*Node, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrNotFound)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	node := &Node{
		Name:     info.Name(),
		IsDir:    info.IsDir(),
		Modified: info.ModTime(),
	}
	if !info.IsDir() {
		node.Size = info.Size()
		if mt, ok := TypeByExtension(info.Name()); ok {
			node.MIMEType = mt
		}
	}
	return node, nil
}

// CreateDirectory creates a resolved directory, parents included.
func (s *Storage) CreateDirectory(path string) error {
	return s.tree.CreateDirectory(path)
}

// DeleteRecursive removes a resolved node and all descendants.
func (s *Storage) DeleteRecursive(path string) error {
	return s.tree.DeleteRecursive(path)
}

// Rename moves a resolved node without clobbering the destination.
func (s *Storage) Rename(oldPath, newPath string) error {
	return s.tree.Rename(oldPath, newPath)
}

// ReadText reads a resolved file as text.
func (s *Storage) ReadText(path string) (string, error) {
	return s.content.ReadText(path)
}

// ReadBinary reads a resolved file as raw bytes with MIME and size.
func (s *Storage) ReadBinary(path string) (*Content, error) {
	return s.content.ReadBinary(path)
}

// Write stores data at a resolved path after a quota check. Overwrites
// are charged by the delta against the file's current size, so shrinking
// a file always succeeds even at 100% usage.
func (s *Storage) Write(tenantID, path string, data []byte) error {
	var oldSize int64
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		oldSize = info.Size()
	}
	if err := s.quota.CheckAndReserve(tenantID, int64(len(data))-oldSize); err != nil {
		return err
	}
	return s.content.Write(path, data)
}

// UsedBytes recomputes a tenant's usage from disk.
func (s *Storage) UsedBytes(tenantID string) (int64, error) {
	return s.quota.UsedBytes(tenantID)
}

// QuotaLimit returns the configured per-tenant ceiling.
func (s *Storage) QuotaLimit() int64 {
	return s.quota.Limit()
}

// Usage reports used, limit, and remaining bytes for a tenant.
func (s *Storage) Usage(tenantID string) (*Usage, error) {
	used, err := s.quota.UsedBytes(tenantID)
	if err != nil {
		return nil, err
	}
	remaining := s.quota.Limit() - used
	if remaining < 0 {
		remaining = 0
	}
	return &Usage{Used: used, Limit: s.quota.Limit(), Remaining: remaining}, nil
}

// Glob matches a doublestar pattern under a resolved directory.
func (s *Storage) Glob(dir, pattern string) ([]Node, error) {
	return s.tree.Glob(dir, pattern)
}

// ArchiveZip streams a resolved directory as a ZIP archive.
func (s *Storage) ArchiveZip(w io.Writer, dir string) error {
	return s.tree.WriteZip(w, dir)
}

// ArchiveTarGz streams a resolved directory as a gzipped tarball.
func (s *Storage) ArchiveTarGz(w io.Writer, dir string) error {
	return s.tree.WriteTarGz(w, dir)
}
