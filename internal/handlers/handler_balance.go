package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/royalty_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/royalty_settlement_app/internal/dto"
	"github.com/SscSPs/royalty_settlement_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newBalanceHandler(bs portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: bs}
}

// RegisterBalanceRoutes registers artist and sub-label balance routes and the payout-readiness listings.
func RegisterBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	rg.GET("/artists/:artistID/balance", h.getArtistBalance)
	rg.GET("/sub-labels/:subLabelID/balance", h.getSubLabelBalance)

	payouts := rg.Group("/payouts")
	{
		payouts.GET("/ready-artists", h.listReadyArtists)
		payouts.GET("/ready-sub-labels", h.listReadySubLabels)
	}
}

func (h *balanceHandler) getArtistBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	artistID := c.Param("artistID")

	tenantID, ok := requireTenant(c, logger)
	if !ok {
		return
	}

	balance, err := h.balanceService.ArtistBalance(c.Request.Context(), tenantID, artistID)
	if err != nil {
		respondError(c, logger.With(slog.String("artist_id", artistID)), err, "Failed to compute artist balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToArtistBalanceResponse(*balance))
}

func (h *balanceHandler) getSubLabelBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	subLabelID := c.Param("subLabelID")

	tenantID, ok := requireTenant(c, logger)
	if !ok {
		return
	}

	balance, err := h.balanceService.SubLabelBalance(c.Request.Context(), tenantID, subLabelID)
	if err != nil {
		respondError(c, logger.With(slog.String("sub_label_id", subLabelID)), err, "Failed to compute sub-label balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubLabelBalanceResponse(*balance))
}

func (h *balanceHandler) listReadyArtists(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := requireTenant(c, logger)
	if !ok {
		return
	}

	var params dto.ListReadyPayoutsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query parameters for ready artists", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + bindingErrorMessage(err)})
		return
	}
	q, err := dto.ToPayoutQuery(params)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.balanceService.ListReadyArtists(c.Request.Context(), tenantID, q)
	if err != nil {
		respondError(c, logger, err, "Failed to list artists ready for payout")
		return
	}
	c.JSON(http.StatusOK, dto.ToListArtistBalancesResponse(*page))
}

func (h *balanceHandler) listReadySubLabels(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := requireTenant(c, logger)
	if !ok {
		return
	}

	var params dto.ListReadyPayoutsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query parameters for ready sub-labels", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + bindingErrorMessage(err)})
		return
	}
	q, err := dto.ToPayoutQuery(params)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.balanceService.ListReadySubLabels(c.Request.Context(), tenantID, q)
	if err != nil {
		respondError(c, logger, err, "Failed to list sub-labels ready for payout")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSubLabelBalancesResponse(*page))
}
