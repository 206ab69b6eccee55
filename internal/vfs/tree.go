package vfs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"
)

// Tree performs directory-level operations on already-resolved paths.
type Tree struct {
	log *zap.Logger
}

// NewTree creates a directory tree over the local filesystem.
func NewTree(log *zap.Logger) *Tree {
	return &Tree{log: log}
}

// IsDirectory reports whether path exists and is a directory. A missing
// path is false, not an error.
func (t *Tree) IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// List returns the entries of a directory sorted by name. A missing or
// non-directory path yields an empty slice; the route layer distinguishes
// "not found" with a separate existence check. Entries whose stat fails
// still appear with size 0 and a fallback timestamp, so a single corrupted
// entry cannot take down the directory view.
func (t *Tree) List(path string) []Node {
	entries, err := os.ReadDir(path)
	if err != nil {
		t.log.Debug("list skipped", zap.String("path", path), zap.Error(err))
		return []Node{}
	}

	nodes := make([]Node, 0, len(entries))
	for _, entry := range entries {
		node := Node{Name: entry.Name(), IsDir: entry.IsDir()}
		info, err := entry.Info()
		if err != nil {
			t.log.Warn("entry stat failed", zap.String("entry", entry.Name()), zap.Error(err))
			node.Modified = time.Now()
		} else {
			node.Modified = info.ModTime()
			if !entry.IsDir() {
				node.Size = info.Size()
				if mt, ok := TypeByExtension(entry.Name()); ok {
					node.MIMEType = mt
				}
			}
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// CreateDirectory creates a directory and any missing parents. Creating
// an existing directory succeeds.
func (t *Tree) CreateDirectory(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// DeleteRecursive removes a file or directory and everything beneath it.
// Existence is the caller's concern: removing a missing path succeeds.
func (t *Tree) DeleteRecursive(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

// Rename moves oldPath to newPath. It fails when the source is missing or
// the destination already exists; the destination's parent chain is
// created on demand. An atomic rename is attempted first, with a
// copy-then-delete fallback for cross-device moves where the copy
// completes before the source is removed.
func (t *Tree) Rename(oldPath, newPath string) error {
	if _, err := os.Stat(oldPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("rename source %s: %w", oldPath, ErrNotFound)
		}
		return fmt.Errorf("rename source %s: %w", oldPath, err)
	}
	if _, err := os.Stat(newPath); err == nil {
		return fmt.Errorf("rename target %s: %w", newPath, ErrExists)
	}
	if err := os.MkdirAll(filepath.Dir(newPath), 0o755); err != nil {
		return fmt.Errorf("rename target parent: %w", err)
	}

	if err := os.Rename(oldPath, newPath); err == nil {
		return nil
	}

	t.log.Debug("atomic rename unavailable, copying", zap.String("from", oldPath), zap.String("to", newPath))
	if err := copyAll(oldPath, newPath); err != nil {
		return fmt.Errorf("rename copy: %w", err)
	}
	if err := os.RemoveAll(oldPath); err != nil {
		return fmt.Errorf("rename cleanup: %w", err)
	}
	return nil
}

// DirectorySize returns the recursive sum of file sizes under path.
// Per-entry failures are skipped and the partial sum returned: an
// approximate quota figure is safer than a hard failure that blocks all
// future writes.
func (t *Tree) DirectorySize(path string) int64 {
	var total atomic.Int64
	conf := fastwalk.Config{Follow: false}

	err := fastwalk.Walk(&conf, path, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total.Add(info.Size())
		return nil
	})
	if err != nil {
		t.log.Warn("size walk incomplete", zap.String("path", path), zap.Error(err))
	}
	return total.Load()
}

func copyAll(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return copyFile(src, dst, info.Mode())
	}

	return filepath.WalkDir(src, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(p, target, info.Mode())
	})
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
