package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/tastemap/backend/internal/service"
	"github.com/pageza/tastemap/backend/internal/types"
)

const maxRecommendationLimit = 100

type RecommendationHandler struct {
	recommendations service.IRecommendationService
}

func NewRecommendationHandler(recommendations service.IRecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recommendations", h.GetRecommendations)
}

// GetRecommendations returns the ranked list, capped by ?limit= or the
// configured default.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit := 0
	if raw, present := c.GetQuery("limit"); present {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRecommendationLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer between 1 and 100"})
			return
		}
		limit = n
	}

	recs, err := h.recommendations.GetRecommendations(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err, "failed to get recommendations")
		return
	}
	c.JSON(http.StatusOK, types.RecommendationsResponse{Recommendations: recs, Count: len(recs)})
}
