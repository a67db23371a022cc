package types

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/pageza/tastemap/backend/internal/achievement"
	"github.com/pageza/tastemap/backend/internal/models"
)

// StatsUpdate carries absolute counter values. Nil fields keep the stored value.
type StatsUpdate struct {
	ReviewsCount   *int     `json:"reviews_count"`
	CuisinesTried  *int     `json:"cuisines_tried"`
	PhotosUploaded *int     `json:"photos_uploaded"`
	TrustScore     *float64 `json:"trust_score"`
	DishesAdded    *int     `json:"dishes_added"`
	FollowersCount *int     `json:"followers_count"`
}

// Apply merges the update onto s.
func (u *StatsUpdate) Apply(s *models.UserStats) {
	if u == nil {
		return
	}
	if u.ReviewsCount != nil {
		s.ReviewsCount = *u.ReviewsCount
	}
	if u.CuisinesTried != nil {
		s.CuisinesTried = *u.CuisinesTried
	}
	if u.PhotosUploaded != nil {
		s.PhotosUploaded = *u.PhotosUploaded
	}
	if u.TrustScore != nil {
		s.TrustScore = *u.TrustScore
	}
	if u.DishesAdded != nil {
		s.DishesAdded = *u.DishesAdded
	}
	if u.FollowersCount != nil {
		s.FollowersCount = *u.FollowersCount
	}
}

// UnlockedAchievement pairs an unlock record with its definition.
type UnlockedAchievement struct {
	achievement.Definition
	UnlockedAt time.Time `json:"unlocked_at"`
}

type EvaluateResponse struct {
	Unlocked []UnlockedAchievement `json:"unlocked"`
	Stats    *models.UserStats     `json:"stats"`
}

type AchievementsResponse struct {
	Unlocked []UnlockedAchievement       `json:"unlocked"`
	Progress []achievement.ProgressEntry `json:"progress"`
	Stats    *models.UserStats           `json:"stats"`
}

// Validate rejects negative counters and trust scores outside [0,5].
func (u StatsUpdate) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.ReviewsCount, validation.Min(0)),
		validation.Field(&u.CuisinesTried, validation.Min(0)),
		validation.Field(&u.PhotosUploaded, validation.Min(0)),
		validation.Field(&u.TrustScore, validation.Min(0.0), validation.Max(5.0)),
		validation.Field(&u.DishesAdded, validation.Min(0)),
		validation.Field(&u.FollowersCount, validation.Min(0)),
	)
}
