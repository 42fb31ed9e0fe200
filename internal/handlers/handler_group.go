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

// groupHandler handles HTTP requests related to groups
type groupHandler struct {
	groupService portssvc.GroupSvcFacade
}

// newGroupHandler creates a new groupHandler
func newGroupHandler(gs portssvc.GroupSvcFacade) *groupHandler {
	return &groupHandler{
		groupService: gs,
	}
}

// registerGroupRoutes registers routes related to groups
func registerGroupRoutes(rg *gin.RouterGroup, groupService portssvc.GroupSvcFacade) {
	h := newGroupHandler(groupService)

	groups := rg.Group("/groups")
	{
		groups.GET("/", h.listGroups)
		groups.GET("/:group_id", h.getGroup)
	}
}

// listGroups godoc
// @Summary List the authenticated user's groups
// @Tags groups
// @Produce json
// @Success 200 {array} dto.GroupResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list groups"
// @Security BearerAuth
// @Router /groups [get]
func (h *groupHandler) listGroups(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	groups, err := h.groupService.ListUserGroups(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list groups", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list groups"})
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupListResponse(groups))
}

// getGroup godoc
// @Summary Get one group and its participant roster
// @Tags groups
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {object} dto.GroupDetailResponse
// @Failure 400 {object} map[string]string "Invalid group_id"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (user not a member)"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{group_id} [get]
func (h *groupHandler) getGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	groupID := c.Param("group_id")
	if _, err := uuid.Parse(groupID); err != nil {
		logger.Warn("Invalid group_id format", slog.String("group_id", groupID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group_id. Must be a UUID"})
		return
	}

	group, err := h.groupService.GetGroupByID(c.Request.Context(), groupID, userID)
	if err != nil {
		h.writeGroupError(c, logger, err)
		return
	}

	participants, err := h.groupService.ListGroupParticipants(c.Request.Context(), groupID, userID)
	if err != nil {
		h.writeGroupError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupDetailResponse(group, participants))
}

func (h *groupHandler) writeGroupError(c *gin.Context, logger *slog.Logger, err error) {
	if errors.Is(err, apperrors.ErrForbidden) {
		logger.Warn("User not a member of requested group")
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
	} else if errors.Is(err, apperrors.ErrNotFound) {
		logger.Warn("Group not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
	} else {
		logger.Error("Failed to load group", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load group"})
	}
}
