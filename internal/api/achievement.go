package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/tastemap/backend/internal/service"
	"github.com/pageza/tastemap/backend/internal/types"
)

type AchievementHandler struct {
	achievements service.IAchievementService
}

func NewAchievementHandler(achievements service.IAchievementService) *AchievementHandler {
	return &AchievementHandler{achievements: achievements}
}

func (h *AchievementHandler) RegisterRoutes(router *gin.RouterGroup) {
	achievements := router.Group("/achievements")
	{
		achievements.GET("", h.ListAchievements)
		achievements.GET("/me", h.GetMyAchievements)
		achievements.POST("/evaluate", h.Evaluate)
	}
}

func (h *AchievementHandler) ListAchievements(c *gin.Context) {
	defs := h.achievements.Definitions()
	c.JSON(http.StatusOK, gin.H{"achievements": defs, "count": len(defs)})
}

func (h *AchievementHandler) GetMyAchievements(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	overview, err := h.achievements.Overview(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to get achievements")
		return
	}
	c.JSON(http.StatusOK, overview)
}

// Evaluate accepts an optional stats snapshot. An empty body re-evaluates the
// stored stats.
func (h *AchievementHandler) Evaluate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var update *types.StatsUpdate
	var body types.StatsUpdate
	err := c.ShouldBindJSON(&body)
	switch {
	case err == nil:
		update = &body
	case errors.Is(err, io.EOF):
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.achievements.Evaluate(c.Request.Context(), userID, update)
	if err != nil {
		respondError(c, err, "failed to evaluate achievements")
		return
	}
	c.JSON(http.StatusOK, resp)
}
