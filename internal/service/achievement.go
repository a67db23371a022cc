package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/tastemap/backend/internal/achievement"
	"github.com/pageza/tastemap/backend/internal/database"
	"github.com/pageza/tastemap/backend/internal/logger"
	"github.com/pageza/tastemap/backend/internal/metrics"
	"github.com/pageza/tastemap/backend/internal/models"
	"github.com/pageza/tastemap/backend/internal/types"
)

// AchievementService persists user statistics and runs the evaluator under a
// per-user lock.
type AchievementService struct {
	db        *gorm.DB
	evaluator *achievement.Evaluator
	locker    Locker
	metrics   *metrics.Metrics
	log       *logger.Logger
}

// Ensure AchievementService implements IAchievementService
var _ IAchievementService = (*AchievementService)(nil)

// NewAchievementService creates a new AchievementService instance
func NewAchievementService(db *gorm.DB, evaluator *achievement.Evaluator, locker Locker, m *metrics.Metrics, log *logger.Logger) *AchievementService {
	return &AchievementService{db: db, evaluator: evaluator, locker: locker, metrics: m, log: log}
}

// Definitions returns the static rule set in display order.
func (s *AchievementService) Definitions() []achievement.Definition {
	return s.evaluator.Rules().All()
}

// GetStats returns the stored snapshot, or zero counters when none was saved.
func (s *AchievementService) GetStats(ctx context.Context, userID uuid.UUID) (*models.UserStats, error) {
	var stats models.UserStats
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserStats{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}
	return &stats, nil
}

// Overview returns unlocked achievements and per-achievement progress computed
// from the stored stats.
func (s *AchievementService) Overview(ctx context.Context, userID uuid.UUID) (*types.AchievementsResponse, error) {
	stats, err := s.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress, err := s.evaluator.Progress(ctx, userID, toEvaluatorStats(stats))
	if err != nil {
		return nil, err
	}

	unlocked := []types.UnlockedAchievement{}
	for _, p := range progress {
		if p.Unlocked && p.UnlockedAt != nil {
			unlocked = append(unlocked, types.UnlockedAchievement{Definition: p.Definition, UnlockedAt: *p.UnlockedAt})
		}
	}
	return &types.AchievementsResponse{Unlocked: unlocked, Progress: progress, Stats: stats}, nil
}

// Evaluate merges update into the stored stats, persists them and records any
// newly satisfied achievements. A nil update re-evaluates the stored stats.
func (s *AchievementService) Evaluate(ctx context.Context, userID uuid.UUID, update *types.StatsUpdate) (*types.EvaluateResponse, error) {
	if update != nil {
		if err := update.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidStats, err.Error())
		}
	}

	var resp *types.EvaluateResponse
	err := s.withLock(ctx, userID, func() error {
		stats, unlocked, err := s.updateAndEvaluate(ctx, userID, update.Apply)
		if err != nil {
			return err
		}
		resp = &types.EvaluateResponse{Unlocked: unlocked, Stats: stats}
		return nil
	})
	return resp, err
}

// RecordPhotoUpload bumps photos_uploaded by one and evaluates. Once the
// counter is saved the photo stays credited: an evaluation failure is logged
// and the missed unlocks are picked up by the next evaluation.
func (s *AchievementService) RecordPhotoUpload(ctx context.Context, userID uuid.UUID) ([]types.UnlockedAchievement, error) {
	var unlocked []types.UnlockedAchievement
	err := s.withLock(ctx, userID, func() error {
		stats, err := s.updateStats(ctx, userID, func(st *models.UserStats) {
			st.PhotosUploaded++
		})
		if err != nil {
			return err
		}
		unlocked, err = s.evaluate(ctx, userID, stats)
		if err != nil {
			s.log.Error("achievement evaluation failed after photo upload", "user_id", userID, "error", err)
		}
		return nil
	})
	return unlocked, err
}

func (s *AchievementService) updateAndEvaluate(ctx context.Context, userID uuid.UUID, mutate func(*models.UserStats)) (*models.UserStats, []types.UnlockedAchievement, error) {
	stats, err := s.updateStats(ctx, userID, mutate)
	if err != nil {
		return nil, nil, err
	}
	unlocked, err := s.evaluate(ctx, userID, stats)
	if err != nil {
		return nil, unlocked, err
	}
	return stats, unlocked, nil
}

func (s *AchievementService) updateStats(ctx context.Context, userID uuid.UUID, mutate func(*models.UserStats)) (*models.UserStats, error) {
	stats, err := s.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	mutate(stats)
	if err := s.saveStats(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *AchievementService) evaluate(ctx context.Context, userID uuid.UUID, stats *models.UserStats) ([]types.UnlockedAchievement, error) {
	records, err := s.evaluator.Evaluate(ctx, userID, toEvaluatorStats(stats))
	// Records returned alongside an error were persisted and still count.
	unlocked := s.describe(userID, records)
	if err != nil {
		return unlocked, fmt.Errorf("failed to evaluate achievements: %w", err)
	}
	return unlocked, nil
}

func (s *AchievementService) saveStats(ctx context.Context, stats *models.UserStats) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(stats).Error
	if err != nil {
		return fmt.Errorf("failed to save user stats: %w", err)
	}
	return nil
}

func (s *AchievementService) withLock(ctx context.Context, userID uuid.UUID, fn func() error) error {
	release, err := s.locker.Acquire(ctx, "achievements:"+userID.String())
	if errors.Is(err, database.ErrLockHeld) {
		s.metrics.RecordLockConflict()
		s.log.Warn("achievement evaluation already running", "user_id", userID)
		return ErrEvaluationInProgress
	}
	if err != nil {
		return fmt.Errorf("failed to acquire evaluation lock: %w", err)
	}
	defer release()
	return fn()
}

func (s *AchievementService) describe(userID uuid.UUID, records []models.UserAchievement) []types.UnlockedAchievement {
	out := make([]types.UnlockedAchievement, 0, len(records))
	for _, r := range records {
		def, ok := s.evaluator.Rules().Get(r.AchievementID)
		if !ok {
			continue
		}
		s.metrics.RecordUnlock(r.AchievementID)
		s.log.Info("achievement unlocked", "user_id", userID, "achievement", r.AchievementID)
		out = append(out, types.UnlockedAchievement{Definition: def, UnlockedAt: r.UnlockedAt})
	}
	return out
}

func toEvaluatorStats(s *models.UserStats) achievement.Stats {
	return achievement.Stats{
		ReviewsCount:   s.ReviewsCount,
		CuisinesTried:  s.CuisinesTried,
		PhotosUploaded: s.PhotosUploaded,
		TrustScore:     s.TrustScore,
		DishesAdded:    s.DishesAdded,
		FollowersCount: s.FollowersCount,
	}
}
