package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/tastemap/backend/internal/filters"
	"github.com/pageza/tastemap/backend/internal/models"
)

// CatalogService reads dishes and restaurants and applies list filters
type CatalogService struct {
	db *gorm.DB
}

// Ensure CatalogService implements ICatalogService
var _ ICatalogService = (*CatalogService)(nil)

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// Dishes returns every dish in insertion order.
func (s *CatalogService) Dishes(ctx context.Context) ([]models.Dish, error) {
	var dishes []models.Dish
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&dishes).Error; err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}
	return dishes, nil
}

// Restaurants returns every restaurant in insertion order.
func (s *CatalogService) Restaurants(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&restaurants).Error; err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	return restaurants, nil
}

// ListDishes filters then sorts. A nil sortOpt keeps catalog order.
func (s *CatalogService) ListDishes(ctx context.Context, opt filters.FilterOption, sortOpt *filters.SortOption) ([]models.Dish, error) {
	dishes, err := s.Dishes(ctx)
	if err != nil {
		return nil, err
	}
	dishes = filters.FilterDishes(dishes, opt)
	if sortOpt != nil {
		dishes = filters.SortDishes(dishes, sortOpt.SortBy, sortOpt.Order)
	}
	return dishes, nil
}

// ListRestaurants filters then sorts. A nil sortOpt keeps catalog order.
func (s *CatalogService) ListRestaurants(ctx context.Context, opt filters.FilterOption, sortOpt *filters.SortOption) ([]models.Restaurant, error) {
	restaurants, err := s.Restaurants(ctx)
	if err != nil {
		return nil, err
	}
	restaurants = filters.FilterRestaurants(restaurants, opt)
	if sortOpt != nil {
		restaurants = filters.SortRestaurants(restaurants, sortOpt.SortBy, sortOpt.Order)
	}
	return restaurants, nil
}
