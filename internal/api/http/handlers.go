package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rmagur1203/filehost/internal/infrastructure/logging"
	"github.com/rmagur1203/filehost/internal/infrastructure/monitoring"
	"github.com/rmagur1203/filehost/internal/vfs"
)

// Handlers holds dependencies for the HTTP route layer.
type Handlers struct {
	storage *vfs.Storage
	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// NewHandlers creates the route layer over the storage facade.
func NewHandlers(storage *vfs.Storage, metrics *monitoring.Metrics, logger *logging.Logger) *Handlers {
	return &Handlers{storage: storage, metrics: metrics, logger: logger}
}

// Root returns service identification.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "filehost",
		"status":  "running",
	})
}

// Health returns service health.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

// respondError maps the storage error taxonomy onto HTTP statuses.
func (h *Handlers) respondError(c *gin.Context, op string, err error) {
	var qe *vfs.QuotaError

	switch {
	case errors.Is(err, vfs.ErrInvalidPath):
		// Potential sandbox escape attempt; log for security review.
		h.metrics.IncPathViolations()
		h.metrics.RecordFSOpError(op, "invalid_path")
		h.logger.Warn("rejected path outside tenant sandbox",
			zap.String("op", op),
			zap.String("client", c.ClientIP()),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid path"})

	case errors.As(err, &qe):
		h.metrics.IncQuotaRejections()
		h.metrics.RecordFSOpError(op, "quota_exceeded")
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"success":   false,
			"error":     "quota exceeded",
			"used":      qe.Used,
			"limit":     qe.Limit,
			"requested": qe.Requested,
		})

	case errors.Is(err, vfs.ErrNotFound):
		h.metrics.RecordFSOpError(op, "not_found")
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "not found"})

	case errors.Is(err, vfs.ErrNotText):
		h.metrics.RecordFSOpError(op, "not_text")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "binary file cannot be read as text"})

	case errors.Is(err, vfs.ErrExists):
		h.metrics.RecordFSOpError(op, "exists")
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "destination already exists"})

	default:
		h.metrics.RecordFSOpError(op, "io")
		h.logger.Error("filesystem operation failed",
			zap.String("op", op),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
	}
}
