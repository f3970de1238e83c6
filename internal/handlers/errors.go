package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/royalty_settlement_app/internal/apperrors"
	"github.com/SscSPs/royalty_settlement_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps a service error onto its status code. 5xx bodies carry fallbackMsg only.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	status := apperrors.StatusCode(err)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallbackMsg})
	default:
		logger.Warn(fallbackMsg, slog.Int("status", status), slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": err.Error()})
	}
}

// requireTenant reads the brand claim set by AuthMiddleware.
func requireTenant(c *gin.Context, logger *slog.Logger) (string, bool) {
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return tenantID, true
}

// bindingErrorMessage turns validator failures into "field: rule" pairs; other bind errors pass through.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
