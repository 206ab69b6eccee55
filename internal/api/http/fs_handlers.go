package http

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/rmagur1203/filehost/internal/api/middleware"
	"github.com/rmagur1203/filehost/internal/infrastructure/monitoring"
	"github.com/rmagur1203/filehost/internal/vfs"
)

// GetNode serves a directory listing or file contents.
//
// Directories: JSON listing, or a streamed archive with ?archive=zip|tgz.
// Files: JSON body with text content or base64 bytes; ?raw=1 streams the
// raw bytes under the inferred MIME type.
func (h *Handlers) GetNode(c *gin.Context) {
	timer := monitoring.NewTimer(h.metrics, "read")

	path, err := h.storage.ResolvePath(middleware.Tenant(c), c.Param("path"))
	if err != nil {
		timer.Stop("error")
		h.respondError(c, "read", err)
		return
	}

	if h.storage.IsDirectory(path) {
		if format := c.Query("archive"); format != "" {
			h.streamArchive(c, timer, path, format)
			return
		}
		entries := h.storage.ListDirectory(path)
		timer.Stop("success")
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"path":    c.Param("path"),
			"is_dir":  true,
			"entries": entries,
			"count":   len(entries),
		})
		return
	}

	if !h.storage.Exists(path) {
		timer.Stop("error")
		h.respondError(c, "read", fmt.Errorf("%s: %w", c.Param("path"), vfs.ErrNotFound))
		return
	}

	if c.Query("raw") != "" {
		content, err := h.storage.ReadBinary(path)
		if err != nil {
			timer.Stop("error")
			h.respondError(c, "read", err)
			return
		}
		timer.Stop("success")
		c.Data(http.StatusOK, content.MIMEType, content.Data)
		return
	}

	if text, err := h.storage.ReadText(path); err == nil {
		timer.Stop("success")
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"path":     c.Param("path"),
			"is_dir":   false,
			"content":  text,
			"encoding": "utf8",
			"size":     len(text),
		})
		return
	}

	content, err := h.storage.ReadBinary(path)
	if err != nil {
		timer.Stop("error")
		h.respondError(c, "read", err)
		return
	}
	timer.Stop("success")
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"path":      c.Param("path"),
		"is_dir":    false,
		"content":   content.Data, // base64 in JSON
		"encoding":  "base64",
		"mime_type": content.MIMEType,
		"size":      content.Size,
	})
}

func (h *Handlers) streamArchive(c *gin.Context, timer *monitoring.Timer, path, format string) {
	name := filepath.Base(path)
	var err error
	switch format {
	case "zip":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".zip"))
		c.Header("Content-Type", "application/zip")
		err = h.storage.ArchiveZip(c.Writer, path)
	case "tgz":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".tar.gz"))
		c.Header("Content-Type", "application/gzip")
		err = h.storage.ArchiveTarGz(c.Writer, path)
	default:
		timer.Stop("error")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "archive must be zip or tgz"})
		return
	}
	if err != nil {
		// Headers are already on the wire; all we can do is abort.
		timer.Stop("error")
		c.Abort()
		return
	}
	timer.Stop("success")
}

// WriteFile stores the raw request body at the target path, quota-checked
// by the delta against any existing file.
func (h *Handlers) WriteFile(c *gin.Context) {
	timer := monitoring.NewTimer(h.metrics, "write")
	tenant := middleware.Tenant(c)

	path, err := h.storage.ResolvePath(tenant, c.Param("path"))
	if err != nil {
		timer.Stop("error")
		h.respondError(c, "write", err)
		return
	}

	data, err := c.GetRawData()
	if err != nil {
		timer.Stop("error")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unreadable request body"})
		return
	}

	if err := h.storage.Write(tenant, path, data); err != nil {
		timer.Stop("error")
		h.respondError(c, "write", err)
		return
	}

	h.metrics.AddBytesWritten(len(data))
	timer.Stop("success")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"written": true,
		"path":    c.Param("path"),
		"size":    len(data),
	})
}

// CreateDirectory creates a directory, parents included. Idempotent.
func (h *Handlers) CreateDirectory(c *gin.Context) {
	timer := monitoring.NewTimer(h.metrics, "mkdir")

	path, err := h.storage.ResolvePath(middleware.Tenant(c), c.Param("path"))
	if err != nil {
		timer.Stop("error")
		h.respondError(c, "mkdir", err)
		return
	}

	if err := h.storage.CreateDirectory(path); err != nil {
		timer.Stop("error")
		h.respondError(c, "mkdir", err)
		return
	}

	timer.Stop("success")
	c.JSON(http.StatusOK, gin.H{"success": true, "created": true, "path": c.Param("path")})
}

// DeleteNode removes a file or directory recursively. Missing targets are
// a 404, checked here because the tree's delete treats them as success.
func (h *Handlers) DeleteNode(c *gin.Context) {
	timer := monitoring.NewTimer(h.metrics, "delete")

	path, err := h.storage.ResolvePath(middleware.Tenant(c), c.Param("path"))
	if err != nil {
		timer.Stop("error")
		h.respondError(c, "delete", err)
		return
	}

	if !h.storage.Exists(path) {
		timer.Stop("error")
		h.respondError(c, "delete", fmt.Errorf("%s: %w", c.Param("path"), vfs.ErrNotFound))
		return
	}

	if err := h.storage.DeleteRecursive(path); err != nil {
		timer.Stop("error")
		h.respondError(c, "delete", err)
		return
	}

	timer.Stop("success")
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": true, "path": c.Param("path")})
}

// RenameNode moves a node within the tenant sandbox. The destination is
// never clobbered.
func (h *Handlers) RenameNode(c *gin.Context) {
	timer := monitoring.NewTimer(h.metrics, "rename")
	tenant := middleware.Tenant(c)

	var req struct {
		From string `json:"from" binding:"required"`
		To   string `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		timer.Stop("error")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "from and to are required"})
		return
	}

	from, err := h.storage.ResolvePath(tenant, req.From)
	if err != nil {
		timer.Stop("error")
		h.respondError(c, "rename", err)
		return
	}
	to, err := h.storage.ResolvePath(tenant, req.To)
	if err != nil {
		timer.Stop("error")
		h.respondError(c, "rename", err)
		return
	}

	if err := h.storage.Rename(from, to); err != nil {
		timer.Stop("error")
		h.respondError(c, "rename", err)
		return
	}

	timer.Stop("success")
	c.JSON(http.StatusOK, gin.H{"success": true, "renamed": true, "from": req.From, "to": req.To})
}

// StatNode returns metadata for a single node.
func (h *Handlers) StatNode(c *gin.Context) {
	path, err := h.storage.ResolvePath(middleware.Tenant(c), c.Param("path"))
	if err != nil {
		h.respondError(c, "stat", err)
		return
	}

	node, err := h.storage.Stat(path)
	if err != nil {
		h.respondError(c, "stat", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "path": c.Param("path"), "node": node})
}

// Search matches a glob pattern under a directory in the tenant sandbox.
func (h *Handlers) Search(c *gin.Context) {
	timer := monitoring.NewTimer(h.metrics, "search")

	pattern := c.Query("pattern")
	if pattern == "" {
		timer.Stop("error")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "pattern is required"})
		return
	}

	dir, err := h.storage.ResolvePath(middleware.Tenant(c), c.Query("dir"))
	if err != nil {
		timer.Stop("error")
		h.respondError(c, "search", err)
		return
	}
	if !h.storage.IsDirectory(dir) {
		timer.Stop("error")
		h.respondError(c, "search", fmt.Errorf("%s: %w", c.Query("dir"), vfs.ErrNotFound))
		return
	}

	matches, err := h.storage.Glob(dir, pattern)
	if err != nil {
		timer.Stop("error")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	timer.Stop("success")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"pattern": pattern,
		"matches": matches,
		"count":   len(matches),
	})
}

// Usage reports the tenant's current storage consumption.
func (h *Handlers) Usage(c *gin.Context) {
	usage, err := h.storage.Usage(middleware.Tenant(c))
	if err != nil {
		h.respondError(c, "usage", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"used":      usage.Used,
		"limit":     usage.Limit,
		"remaining": usage.Remaining,
	})
}
