package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/tastemap/backend/internal/service"
	"github.com/pageza/tastemap/backend/internal/types"
)

type TasteProfileHandler struct {
	profiles service.ITasteProfileService
}

func NewTasteProfileHandler(profiles service.ITasteProfileService) *TasteProfileHandler {
	return &TasteProfileHandler{profiles: profiles}
}

func (h *TasteProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/taste-profile")
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.DELETE("", h.DeleteProfile)
	}
}

func (h *TasteProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to get taste profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile merges the provided fields into the stored profile, creating
// it on first save.
func (h *TasteProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.UpdateTasteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile, err := h.profiles.SaveProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "failed to save taste profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *TasteProfileHandler) DeleteProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.profiles.DeleteProfile(c.Request.Context(), userID); err != nil {
		respondError(c, err, "failed to delete taste profile")
		return
	}
	c.Status(http.StatusNoContent)
}
