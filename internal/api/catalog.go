package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/tastemap/backend/internal/filters"
	"github.com/pageza/tastemap/backend/internal/service"
	"github.com/pageza/tastemap/backend/internal/types"
)

type CatalogHandler struct {
	catalog service.ICatalogService
}

func NewCatalogHandler(catalog service.ICatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dishes", h.ListDishes)
	router.GET("/restaurants", h.ListRestaurants)
}

func (h *CatalogHandler) ListDishes(c *gin.Context) {
	opt, sortOpt, ok := bindCatalogQuery(c)
	if !ok {
		return
	}

	dishes, err := h.catalog.ListDishes(c.Request.Context(), opt, sortOpt)
	if err != nil {
		respondError(c, err, "failed to list dishes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"dishes": dishes, "count": len(dishes)})
}

func (h *CatalogHandler) ListRestaurants(c *gin.Context) {
	opt, sortOpt, ok := bindCatalogQuery(c)
	if !ok {
		return
	}

	restaurants, err := h.catalog.ListRestaurants(c.Request.Context(), opt, sortOpt)
	if err != nil {
		respondError(c, err, "failed to list restaurants")
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants, "count": len(restaurants)})
}

// bindCatalogQuery parses and validates the filter/sort query, answering 400
// on failure.
func bindCatalogQuery(c *gin.Context) (filters.FilterOption, *filters.SortOption, bool) {
	var q types.CatalogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return filters.FilterOption{}, nil, false
	}

	opt := q.FilterOption()
	if err := opt.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return filters.FilterOption{}, nil, false
	}
	sortOpt := q.SortOption()
	if sortOpt != nil {
		if err := sortOpt.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return filters.FilterOption{}, nil, false
		}
	}
	return opt, sortOpt, true
}
