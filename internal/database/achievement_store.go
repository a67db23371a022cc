package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/tastemap/backend/internal/achievement"
	"github.com/pageza/tastemap/backend/internal/models"
)

// AchievementStore persists unlocks in user_achievements. The unique index on
// (user_id, achievement_id) makes AppendIfAbsent safe across instances.
type AchievementStore struct {
	db *gorm.DB
}

var _ achievement.Store = (*AchievementStore)(nil)

func NewAchievementStore(db *gorm.DB) *AchievementStore {
	return &AchievementStore{db: db}
}

func (s *AchievementStore) Get(ctx context.Context, userID uuid.UUID) ([]models.UserAchievement, error) {
	var records []models.UserAchievement
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get achievements: %w", err)
	}
	return records, nil
}

func (s *AchievementStore) AppendIfAbsent(ctx context.Context, ua models.UserAchievement) (bool, error) {
	if ua.ID == uuid.Nil {
		ua.ID = uuid.New()
	}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
			DoNothing: true,
		}).
		Create(&ua)
	if result.Error != nil {
		return false, fmt.Errorf("failed to append achievement: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}
