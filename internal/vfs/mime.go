package vfs

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// mimeBinaryDefault is the fallback when neither the extension table nor
// content sniffing yields a type.
const mimeBinaryDefault = "application/octet-stream"

// mimeByExtension is the shared extension-to-type table used by both
// directory listings and content reads.
var mimeByExtension = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".md":   "text/markdown",
	".txt":  "text/plain",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
}

// TypeByExtension returns the MIME type for a file name based on its
// extension. The second return is false when the extension is unknown.
func TypeByExtension(name string) (string, bool) {
	mt, ok := mimeByExtension[strings.ToLower(filepath.Ext(name))]
	return mt, ok
}

// BinaryByExtension reports whether the extension maps to a binary type.
// Images are always binary.
func BinaryByExtension(name string) bool {
	mt, ok := TypeByExtension(name)
	return ok && strings.HasPrefix(mt, "image/")
}

// detectType resolves a MIME type for a binary read: the extension table
// first, then content sniffing for unknown extensions.
func detectType(name string, data []byte) string {
	if mt, ok := TypeByExtension(name); ok {
		return mt
	}
	if mt := mimetype.Detect(data); mt != nil {
		return mt.String()
	}
	return mimeBinaryDefault
}
