package models

import (
	"time"

	"github.com/google/uuid"
)

// UserAchievement records a one-time unlock. Rows are append-only.
type UserAchievement struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID string    `gorm:"size:64;not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	Progress      int       `gorm:"not null;default:100" json:"progress"`
	UnlockedAt    time.Time `gorm:"not null" json:"unlocked_at"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}

// UserStats is the last known snapshot of a user's cumulative counters.
type UserStats struct {
	UserID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"user_id"`
	ReviewsCount   int       `gorm:"not null;default:0" json:"reviews_count"`
	CuisinesTried  int       `gorm:"not null;default:0" json:"cuisines_tried"`
	PhotosUploaded int       `gorm:"not null;default:0" json:"photos_uploaded"`
	TrustScore     float64   `gorm:"not null;default:0" json:"trust_score"`
	DishesAdded    int       `gorm:"not null;default:0" json:"dishes_added"`
	FollowersCount int       `gorm:"not null;default:0" json:"followers_count"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (UserStats) TableName() string {
	return "user_stats"
}
