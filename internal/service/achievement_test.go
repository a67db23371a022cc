package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/tastemap/backend/internal/achievement"
	"github.com/pageza/tastemap/backend/internal/database"
	"github.com/pageza/tastemap/backend/internal/logger"
	"github.com/pageza/tastemap/backend/internal/metrics"
	"github.com/pageza/tastemap/backend/internal/testhelpers"
	"github.com/pageza/tastemap/backend/internal/types"
)

func newAchievementService(t *testing.T) (*AchievementService, *database.LocalLocker, *gorm.DB) {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	rules, err := achievement.DefaultRuleSet()
	require.NoError(t, err)
	locker := database.NewLocalLocker()
	ev := achievement.NewEvaluator(rules, database.NewAchievementStore(db))
	return NewAchievementService(db, ev, locker, metrics.New(), logger.Nop()), locker, db
}

func unlockedIDs(list []types.UnlockedAchievement) []string {
	out := make([]string, len(list))
	for i, u := range list {
		out[i] = u.ID
	}
	return out
}

func TestEvaluatePersistsStatsAndUnlocks(t *testing.T) {
	svc, _, _ := newAchievementService(t)
	ctx := context.Background()
	user := uuid.New()

	resp, err := svc.Evaluate(ctx, user, &types.StatsUpdate{ReviewsCount: intPtr(29)})
	require.NoError(t, err)
	assert.Equal(t, []string{"first_review"}, unlockedIDs(resp.Unlocked))
	assert.Equal(t, 29, resp.Stats.ReviewsCount)

	resp, err = svc.Evaluate(ctx, user, &types.StatsUpdate{ReviewsCount: intPtr(30), TrustScore: floatPtr(4.49)})
	require.NoError(t, err)
	assert.Equal(t, []string{"food_critic"}, unlockedIDs(resp.Unlocked))

	resp, err = svc.Evaluate(ctx, user, &types.StatsUpdate{TrustScore: floatPtr(4.5)})
	require.NoError(t, err)
	assert.Equal(t, []string{"trusted_reviewer"}, unlockedIDs(resp.Unlocked))
	assert.Equal(t, 30, resp.Stats.ReviewsCount)

	resp, err = svc.Evaluate(ctx, user, nil)
	require.NoError(t, err)
	assert.Empty(t, resp.Unlocked)

	stats, err := svc.GetStats(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 30, stats.ReviewsCount)
	assert.Equal(t, 4.5, stats.TrustScore)
}

func TestEvaluateRejectsInvalidStats(t *testing.T) {
	svc, _, _ := newAchievementService(t)
	ctx := context.Background()

	_, err := svc.Evaluate(ctx, uuid.New(), &types.StatsUpdate{ReviewsCount: intPtr(-1)})
	assert.ErrorIs(t, err, ErrInvalidStats)

	_, err = svc.Evaluate(ctx, uuid.New(), &types.StatsUpdate{TrustScore: floatPtr(7)})
	assert.ErrorIs(t, err, ErrInvalidStats)
}

func TestEvaluateWhileLocked(t *testing.T) {
	svc, locker, _ := newAchievementService(t)
	ctx := context.Background()
	user := uuid.New()

	release, err := locker.Acquire(ctx, "achievements:"+user.String())
	require.NoError(t, err)

	_, err = svc.Evaluate(ctx, user, &types.StatsUpdate{ReviewsCount: intPtr(1)})
	assert.ErrorIs(t, err, ErrEvaluationInProgress)

	stats, err := svc.GetStats(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.ReviewsCount)

	release()
	resp, err := svc.Evaluate(ctx, user, &types.StatsUpdate{ReviewsCount: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, []string{"first_review"}, unlockedIDs(resp.Unlocked))
}

func TestOverview(t *testing.T) {
	svc, _, _ := newAchievementService(t)
	ctx := context.Background()
	user := uuid.New()

	empty, err := svc.Overview(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, empty.Unlocked)
	assert.Len(t, empty.Progress, len(svc.Definitions()))

	_, err = svc.Evaluate(ctx, user, &types.StatsUpdate{CuisinesTried: intPtr(6), FollowersCount: intPtr(5)})
	require.NoError(t, err)

	overview, err := svc.Overview(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, []string{"explorer"}, unlockedIDs(overview.Unlocked))
	for _, p := range overview.Progress {
		switch p.Definition.ID {
		case "explorer":
			assert.True(t, p.Unlocked)
			assert.Equal(t, 100, p.Progress)
		case "globetrotter":
			assert.Equal(t, 40, p.Progress)
		case "social_butterfly":
			assert.Equal(t, 50, p.Progress)
			assert.False(t, p.Unlocked)
		}
	}
}

func TestRecordPhotoUpload(t *testing.T) {
	svc, _, _ := newAchievementService(t)
	ctx := context.Background()
	user := uuid.New()

	_, err := svc.Evaluate(ctx, user, &types.StatsUpdate{PhotosUploaded: intPtr(9)})
	require.NoError(t, err)

	unlocked, err := svc.RecordPhotoUpload(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, []string{"photographer"}, unlockedIDs(unlocked))

	stats, err := svc.GetStats(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.PhotosUploaded)
}
