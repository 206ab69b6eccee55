package vfs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the taxonomy the route layer maps onto HTTP statuses.
var (
	// ErrInvalidPath means the resolved path would escape the tenant sandbox.
	ErrInvalidPath = errors.New("path escapes tenant root")

	// ErrNotFound means the target file or directory does not exist.
	ErrNotFound = errors.New("file or directory not found")

	// ErrNotText means binary content was requested through the text read path.
	ErrNotText = errors.New("binary content requested as text")

	// ErrExists means a rename destination already exists. Rename never clobbers.
	ErrExists = errors.New("destination already exists")
)

// QuotaError reports a rejected size-increasing operation with enough
// context for the caller to render an actionable message.
type QuotaError struct {
	Used      int64
	Limit     int64
	Requested int64
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("quota exceeded: %d bytes used of %d, %d more requested", e.Used, e.Limit, e.Requested)
}

// IsQuotaError reports whether err is a quota rejection.
func IsQuotaError(err error) bool {
	var qe *QuotaError
	return errors.As(err, &qe)
}
