package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/tastemap/backend/internal/achievement"
	"github.com/pageza/tastemap/backend/internal/filters"
	"github.com/pageza/tastemap/backend/internal/models"
	"github.com/pageza/tastemap/backend/internal/recommendation"
	"github.com/pageza/tastemap/backend/internal/types"
)

// ITasteProfileService defines the interface for taste profile operations
type ITasteProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.TasteProfile, error)
	SaveProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateTasteProfileRequest) (*models.TasteProfile, error)
	DeleteProfile(ctx context.Context, userID uuid.UUID) error
}

// ICatalogService defines the interface for read access to dishes and restaurants
type ICatalogService interface {
	ListDishes(ctx context.Context, opt filters.FilterOption, sortOpt *filters.SortOption) ([]models.Dish, error)
	ListRestaurants(ctx context.Context, opt filters.FilterOption, sortOpt *filters.SortOption) ([]models.Restaurant, error)
}

// IRecommendationService defines the interface for ranked recommendations
type IRecommendationService interface {
	GetRecommendations(ctx context.Context, userID uuid.UUID, limit int) ([]recommendation.Recommendation, error)
}

// IAchievementService defines the interface for achievement operations
type IAchievementService interface {
	Definitions() []achievement.Definition
	Overview(ctx context.Context, userID uuid.UUID) (*types.AchievementsResponse, error)
	Evaluate(ctx context.Context, userID uuid.UUID, update *types.StatsUpdate) (*types.EvaluateResponse, error)
	RecordPhotoUpload(ctx context.Context, userID uuid.UUID) ([]types.UnlockedAchievement, error)
}

// IPhotoService defines the interface for review photo uploads
type IPhotoService interface {
	CreateUploadURL(ctx context.Context, userID uuid.UUID, req *types.UploadURLRequest) (*types.UploadURLResponse, error)
	ConfirmUpload(ctx context.Context, userID, uploadID uuid.UUID) (*types.ConfirmPhotoResponse, error)
}

// ITokenService defines the interface for access token operations
type ITokenService interface {
	GenerateToken(userID uuid.UUID, username string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// Locker serializes work on a key across callers. Acquire fails fast with
// database.ErrLockHeld instead of waiting.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// Cache stores serialized values with a TTL. Get returns database.ErrCacheMiss
// for absent keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ObjectStore is the blob storage used for review photos.
type ObjectStore interface {
	PresignUpload(ctx context.Context, objectKey, contentType string, expiration time.Duration) (string, error)
	GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error)
	Exists(ctx context.Context, objectKey string) (bool, error)
}

// ProfileListener is notified after a taste profile is saved or deleted.
type ProfileListener interface {
	ProfileChanged(ctx context.Context, userID uuid.UUID)
}
