package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/royalty_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/royalty_settlement_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

type importHandler struct {
	csvImportService portssvc.CsvImportSvc
	maxUploadBytes   int64
}

// RegisterImportRoutes registers the bulk earnings preview. uploadLimiter may be nil.
func RegisterImportRoutes(rg *gin.RouterGroup, csvImportService portssvc.CsvImportSvc, uploadLimiter *limiter.Limiter, maxUploadBytes int64) {
	h := &importHandler{csvImportService: csvImportService, maxUploadBytes: maxUploadBytes}

	handlers := []gin.HandlerFunc{}
	if uploadLimiter != nil {
		handlers = append(handlers, middleware.RateLimit(uploadLimiter))
	}
	handlers = append(handlers, h.previewEarnings)
	rg.POST("/earnings/import/preview", handlers...)
}

// previewEarnings matches an uploaded CSV or XLSX file against the tenant's catalog. Nothing is written.
func (h *importHandler) previewEarnings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := requireTenant(c, logger)
	if !ok {
		return
	}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Uploaded file is too large"})
			return
		}
		logger.Warn("Missing upload for earnings preview", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file must be uploaded in the 'file' field"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	logger = logger.With(slog.String("file_name", fileHeader.Filename), slog.Int64("size", fileHeader.Size))
	logger.Info("Received earnings file for preview")

	preview, err := h.csvImportService.PreviewEarningsFile(c.Request.Context(), tenantID, fileHeader.Filename, data)
	if err != nil {
		respondError(c, logger, err, "Failed to preview earnings file")
		return
	}

	c.JSON(http.StatusOK, preview)
}
