package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/royalty_settlement_app/internal/apperrors"
	portssvc "github.com/SscSPs/royalty_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/royalty_settlement_app/internal/dto"
	"github.com/SscSPs/royalty_settlement_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const feePendingWarning = "Earning recorded but the platform fee could not be computed; retry via POST /earnings/{earningID}/platform-fee"

// earningHandler handles HTTP requests related to earnings.
type earningHandler struct {
	earningService portssvc.EarningSvcFacade
}

func newEarningHandler(es portssvc.EarningSvcFacade) *earningHandler {
	return &earningHandler{earningService: es}
}

// RegisterEarningRoutes registers earning ingestion and fee retry routes.
func RegisterEarningRoutes(rg *gin.RouterGroup, earningService portssvc.EarningSvcFacade) {
	h := newEarningHandler(earningService)

	rg.POST("/releases/:releaseID/earnings", h.ingestEarning)
	rg.POST("/earnings/:earningID/platform-fee", h.retryPlatformFee)
}

// ingestEarning records one earning and, when requested, runs recoupment and royalty allocation.
// A fee hook failure still answers 201: the ledger write committed and the fee is left pending.
func (h *earningHandler) ingestEarning(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	releaseID := c.Param("releaseID")

	var req dto.IngestEarningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IngestEarning", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + bindingErrorMessage(err)})
		return
	}

	tenantID, ok := requireTenant(c, logger)
	if !ok {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	logger = logger.With(slog.String("release_id", releaseID))
	logger.Info("Received request to ingest earning",
		slog.String("category", req.Category),
		slog.Bool("run_allocation", req.RunAllocation))

	result, err := h.earningService.IngestEarning(c.Request.Context(), tenantID, releaseID, req, userID)
	if err != nil {
		if result != nil && errors.Is(err, apperrors.ErrDependencyFailure) {
			logger.Warn("Earning committed with pending platform fee",
				slog.String("earning_id", result.Earning.EarningID),
				slog.String("error", err.Error()))
			resp := dto.ToIngestEarningResponse(result)
			resp.Warning = feePendingWarning
			c.JSON(http.StatusCreated, resp)
			return
		}
		respondError(c, logger, err, "Failed to ingest earning")
		return
	}

	logger.Info("Earning ingested", slog.String("earning_id", result.Earning.EarningID), slog.String("fee_status", string(result.FeeStatus)))
	c.JSON(http.StatusCreated, dto.ToIngestEarningResponse(result))
}

// retryPlatformFee finalizes a pending fee without re-running allocation.
func (h *earningHandler) retryPlatformFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	earningID := c.Param("earningID")

	tenantID, ok := requireTenant(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("earning_id", earningID))
	logger.Info("Received request to retry platform fee")

	result, err := h.earningService.RetryPlatformFee(c.Request.Context(), tenantID, earningID)
	if err != nil {
		respondError(c, logger, err, "Failed to finalize platform fee")
		return
	}

	c.JSON(http.StatusOK, dto.ToIngestEarningResponse(result))
}
