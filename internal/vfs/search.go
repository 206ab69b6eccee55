package vfs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// Glob finds files under dir whose path relative to dir matches a
// doublestar pattern (gitignore-style, ** supported). Results carry the
// relative path and are sorted by it. Per-entry errors are skipped.
func (t *Tree) Glob(dir, pattern string) ([]Node, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}

	var (
		mu    sync.Mutex
		nodes []Node
	)
	conf := fastwalk.Config{Follow: false}

	err := fastwalk.Walk(&conf, dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || p == dir {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return nil
		}
		matched, _ := doublestar.Match(pattern, filepath.ToSlash(rel))
		if !matched {
			return nil
		}

		node := Node{Name: d.Name(), Path: filepath.ToSlash(rel), IsDir: d.IsDir()}
		if info, err := d.Info(); err == nil {
			node.Modified = info.ModTime()
			if !d.IsDir() {
				node.Size = info.Size()
				if mt, ok := TypeByExtension(d.Name()); ok {
					node.MIMEType = mt
				}
			}
		}

		mu.Lock()
		nodes = append(nodes, node)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("glob walk: %w", err)
	}

	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Path < nodes[j].Path })
	return nodes, nil
}
