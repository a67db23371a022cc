package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/tastemap/backend/internal/database"
	"github.com/pageza/tastemap/backend/internal/logger"
	"github.com/pageza/tastemap/backend/internal/metrics"
	"github.com/pageza/tastemap/backend/internal/models"
	"github.com/pageza/tastemap/backend/internal/recommendation"
)

// RecommendationService ranks the catalog against a user's taste profile
type RecommendationService struct {
	profiles     ITasteProfileService
	catalog      *CatalogService
	ranker       *recommendation.Ranker
	cache        Cache
	cacheTTL     time.Duration
	defaultLimit int
	metrics      *metrics.Metrics
	log          *logger.Logger
}

// RecommendationOptions configures RecommendationService. Cache may be nil.
type RecommendationOptions struct {
	Cache        Cache
	CacheTTL     time.Duration
	DefaultLimit int
	Metrics      *metrics.Metrics
	Logger       *logger.Logger
}

var (
	_ IRecommendationService = (*RecommendationService)(nil)
	_ ProfileListener        = (*RecommendationService)(nil)
)

// NewRecommendationService creates a new RecommendationService instance
func NewRecommendationService(profiles ITasteProfileService, catalog *CatalogService, ranker *recommendation.Ranker, opts RecommendationOptions) *RecommendationService {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 20
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	return &RecommendationService{
		profiles:     profiles,
		catalog:      catalog,
		ranker:       ranker,
		cache:        opts.Cache,
		cacheTTL:     opts.CacheTTL,
		defaultLimit: opts.DefaultLimit,
		metrics:      opts.Metrics,
		log:          opts.Logger,
	}
}

// GetRecommendations returns at most limit recommendations, best first. A user
// without a taste profile gets an empty list. limit <= 0 uses the default.
func (s *RecommendationService) GetRecommendations(ctx context.Context, userID uuid.UUID, limit int) ([]recommendation.Recommendation, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if errors.Is(err, ErrProfileNotFound) {
		s.metrics.ObserveRecommendations(0)
		return []recommendation.Recommendation{}, nil
	}
	if err != nil {
		return nil, err
	}

	version := profile.UpdatedAt.UnixNano()
	ranked, ok := s.fromCache(ctx, userID, version)
	if !ok {
		ranked, err = s.rank(ctx, profile)
		if err != nil {
			return nil, err
		}
		s.toCache(ctx, userID, version, ranked)
	}

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	s.metrics.ObserveRecommendations(len(ranked))
	return ranked, nil
}

// ProfileChanged drops the cached ranking for the user.
func (s *RecommendationService) ProfileChanged(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey(userID)); err != nil {
		s.log.Warn("failed to invalidate recommendation cache", "user_id", userID, "error", err)
	}
}

func (s *RecommendationService) rank(ctx context.Context, profile *models.TasteProfile) ([]recommendation.Recommendation, error) {
	dishes, err := s.catalog.Dishes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dishes: %w", err)
	}
	restaurants, err := s.catalog.Restaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurants: %w", err)
	}
	ranked := s.ranker.Rank(profile, dishes, restaurants)
	if ranked == nil {
		ranked = []recommendation.Recommendation{}
	}
	return ranked, nil
}

// cachedRanking tags a ranking with the profile version it was computed from.
// A write that raced a profile update carries an old version and is ignored.
type cachedRanking struct {
	Version int64                           `json:"version"`
	Items   []recommendation.Recommendation `json:"items"`
}

func (s *RecommendationService) fromCache(ctx context.Context, userID uuid.UUID, version int64) ([]recommendation.Recommendation, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, cacheKey(userID))
	if errors.Is(err, database.ErrCacheMiss) {
		s.metrics.RecordCache(metrics.CacheMiss)
		return nil, false
	}
	if err != nil {
		s.metrics.RecordCache(metrics.CacheError)
		s.log.Warn("recommendation cache read failed", "user_id", userID, "error", err)
		return nil, false
	}
	var entry cachedRanking
	if err := json.Unmarshal(raw, &entry); err != nil {
		s.metrics.RecordCache(metrics.CacheError)
		s.log.Warn("discarding corrupt recommendation cache entry", "user_id", userID, "error", err)
		return nil, false
	}
	if entry.Version != version || entry.Items == nil {
		s.metrics.RecordCache(metrics.CacheMiss)
		return nil, false
	}
	s.metrics.RecordCache(metrics.CacheHit)
	return entry.Items, true
}

func (s *RecommendationService) toCache(ctx context.Context, userID uuid.UUID, version int64, ranked []recommendation.Recommendation) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(cachedRanking{Version: version, Items: ranked})
	if err != nil {
		s.log.Warn("failed to encode recommendations for cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, cacheKey(userID), raw, s.cacheTTL); err != nil {
		s.log.Warn("recommendation cache write failed", "user_id", userID, "error", err)
	}
}

func cacheKey(userID uuid.UUID) string {
	return userID.String()
}
