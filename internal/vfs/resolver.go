package vfs

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Resolver maps a tenant id plus an untrusted relative path onto an
// absolute filesystem path confined to that tenant's root.
type Resolver struct {
	storageRoot string
}

// NewResolver creates a resolver over the configured storage root.
func NewResolver(storageRoot string) *Resolver {
	return &Resolver{storageRoot: storageRoot}
}

// ValidateTenantID checks that a tenant id is safe to use as a single
// path segment under the storage root.
func ValidateTenantID(id string) error {
	if id == "" {
		return fmt.Errorf("tenant id cannot be empty: %w", ErrInvalidPath)
	}
	if id == "." || id == ".." {
		return fmt.Errorf("tenant id %q is a relative path segment: %w", id, ErrInvalidPath)
	}
	if filepath.IsAbs(id) {
		return fmt.Errorf("tenant id cannot be an absolute path: %w", ErrInvalidPath)
	}
	if filepath.Clean(id) != id || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("tenant id %q contains path components: %w", id, ErrInvalidPath)
	}
	return nil
}

// TenantRoot returns the root directory for a tenant without creating it.
func (r *Resolver) TenantRoot(tenantID string) string {
	return filepath.Join(r.storageRoot, tenantID)
}

// Resolve turns a raw, possibly percent-encoded relative path into an
// absolute path inside the tenant root, creating the root if absent.
// The escape check runs on the post-join relative path, never on the raw
// input: substring checks on raw input are bypassable by encoding or by
// absolute-path injection.
func (r *Resolver) Resolve(tenantID, rawPath string) (string, error) {
	if err := ValidateTenantID(tenantID); err != nil {
		return "", err
	}

	decoded, err := url.PathUnescape(rawPath)
	if err != nil {
		return "", fmt.Errorf("malformed path encoding %q: %w", rawPath, ErrInvalidPath)
	}

	norm := strings.ReplaceAll(decoded, `\`, "/")
	for strings.Contains(norm, "//") {
		norm = strings.ReplaceAll(norm, "//", "/")
	}
	norm = strings.TrimPrefix(norm, "/")

	root := r.TenantRoot(tenantID)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("create tenant root for %q: %w", tenantID, err)
	}

	abs := filepath.Join(root, norm)
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q: %w", rawPath, ErrInvalidPath)
	}

	return abs, nil
}
