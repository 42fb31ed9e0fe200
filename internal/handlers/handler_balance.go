package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/splitpal/splitpal_backend/internal/apperrors"
	portssvc "github.com/splitpal/splitpal_backend/internal/core/ports/services"
	"github.com/splitpal/splitpal_backend/internal/dto"
	"github.com/splitpal/splitpal_backend/internal/middleware"
)

// balanceHandler handles HTTP requests related to balance computation
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

// newBalanceHandler creates a new balanceHandler
func newBalanceHandler(bs portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{
		balanceService: bs,
	}
}

// registerBalanceRoutes registers routes related to balances
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	rg.GET("/balances", h.getBalances)
}

// getBalances godoc
// @Summary Compute balances for the authenticated user
// @Description Recomputes who-owes-whom balances from stored expenses, splits and settlements. Without group_id, covers every group the user belongs to.
// @Tags balances
// @Produce json
// @Param group_id query string false "Scope the response to one group (UUID)"
// @Success 200 {object} dto.BalancesResponse
// @Failure 400 {object} map[string]string "Invalid group_id"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (viewer not a member of the group)"
// @Failure 500 {object} map[string]string "Failed to compute balances"
// @Security BearerAuth
// @Router /balances [get]
func (h *balanceHandler) getBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	viewerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var groupID *string
	if raw := c.Query("group_id"); raw != "" {
		if _, err := uuid.Parse(raw); err != nil {
			logger.Warn("Invalid group_id format", slog.String("group_id", raw))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group_id. Must be a UUID"})
			return
		}
		groupID = &raw
	}

	sheet, err := h.balanceService.ComputeOverallBalances(c.Request.Context(), viewerID, groupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("Viewer not a member of requested group")
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Requested group not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		} else {
			logger.Error("Failed to compute balances", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balances"})
		}
		return
	}

	response := dto.ToBalancesResponse(sheet)

	logger.Info("Balances computed successfully",
		slog.Int("group_count", len(response.GroupBalances)))
	c.JSON(http.StatusOK, response)
}
