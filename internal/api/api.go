package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/tastemap/backend/internal/service"
)

// Services are the collaborators behind the authenticated routes. Photos may
// be nil when no object storage is configured.
type Services struct {
	Profiles        service.ITasteProfileService
	Catalog         service.ICatalogService
	Recommendations service.IRecommendationService
	Achievements    service.IAchievementService
	Photos          service.IPhotoService
}

// RegisterRoutes mounts every authenticated handler on group.
func RegisterRoutes(group *gin.RouterGroup, s Services) {
	NewTasteProfileHandler(s.Profiles).RegisterRoutes(group)
	NewCatalogHandler(s.Catalog).RegisterRoutes(group)
	NewRecommendationHandler(s.Recommendations).RegisterRoutes(group)
	NewAchievementHandler(s.Achievements).RegisterRoutes(group)
	if s.Photos != nil {
		NewPhotoHandler(s.Photos).RegisterRoutes(group)
	}
}
