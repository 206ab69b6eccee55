// Package vfs implements the per-tenant virtual filesystem layer.
//
// This package is organized into specialized modules:
//   - resolver: maps untrusted relative paths into a tenant's sandbox
//   - tree: directory operations (list, create, rename, delete, size)
//   - quota: per-tenant disk usage accounting and ceiling enforcement
//   - content: file reads/writes with MIME inference
//   - search: glob matching over a tenant subtree
//   - archive: streaming ZIP / tar.gz exports of directories
//
// All operations:
//   - Take already-resolved absolute paths (except Resolve itself)
//   - Never follow a path outside the tenant root
//   - Degrade gracefully on per-entry stat failures during listings and walks
//
// Mutating call flow: resolve the path, check the quota for growth
// operations, then perform the mutation.
package vfs
