package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/royalty_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/royalty_settlement_app/internal/dto"
	"github.com/SscSPs/royalty_settlement_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type recuperableHandler struct {
	recuperableService portssvc.RecuperableSvcFacade
}

func newRecuperableHandler(rs portssvc.RecuperableSvcFacade) *recuperableHandler {
	return &recuperableHandler{recuperableService: rs}
}

// RegisterRecuperableRoutes registers the recoupable ledger routes.
func RegisterRecuperableRoutes(rg *gin.RouterGroup, recuperableService portssvc.RecuperableSvcFacade) {
	h := newRecuperableHandler(recuperableService)

	releases := rg.Group("/releases/:releaseID")
	{
		releases.POST("/recuperable-expenses", h.recordExpense)
		releases.GET("/recuperable-balance", h.getBalance)
	}
}

func (h *recuperableHandler) recordExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	releaseID := c.Param("releaseID")

	var req dto.RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + bindingErrorMessage(err)})
		return
	}

	tenantID, ok := requireTenant(c, logger)
	if !ok {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	logger = logger.With(slog.String("release_id", releaseID))
	expense, err := h.recuperableService.RecordExpense(c.Request.Context(), tenantID, releaseID, *req.Amount, req.Description, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record recuperable expense")
		return
	}

	logger.Info("Recuperable expense recorded", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToRecuperableExpenseResponse(*expense))
}

func (h *recuperableHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	releaseID := c.Param("releaseID")

	tenantID, ok := requireTenant(c, logger)
	if !ok {
		return
	}

	balance, err := h.recuperableService.CurrentBalance(c.Request.Context(), tenantID, releaseID)
	if err != nil {
		respondError(c, logger.With(slog.String("release_id", releaseID)), err, "Failed to compute recuperable balance")
		return
	}

	c.JSON(http.StatusOK, dto.RecuperableBalanceResponse{ReleaseID: releaseID, Balance: balance})
}
