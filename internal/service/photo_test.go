package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/tastemap/backend/internal/achievement"
	"github.com/pageza/tastemap/backend/internal/database"
	"github.com/pageza/tastemap/backend/internal/logger"
	"github.com/pageza/tastemap/backend/internal/metrics"
	"github.com/pageza/tastemap/backend/internal/models"
	"github.com/pageza/tastemap/backend/internal/testhelpers"
	"github.com/pageza/tastemap/backend/internal/types"
)

func newPhotoService(t *testing.T) (*PhotoService, *testhelpers.MockObjectStore, *AchievementService) {
	t.Helper()
	achievements, _, db := newAchievementService(t)
	store := &testhelpers.MockObjectStore{}
	store.On("PresignUpload", mock.Anything, mock.Anything).Return("https://s3.test/upload", nil)
	store.On("GeneratePresignedURL", mock.Anything).Return("https://s3.test/photo", nil)
	svc := NewPhotoService(db, store, achievements, metrics.New(), logger.Nop())
	return svc, store, achievements
}

func TestCreateUploadURL(t *testing.T) {
	svc, store, _ := newPhotoService(t)
	user := uuid.New()

	resp, err := svc.CreateUploadURL(context.Background(), user, &types.UploadURLRequest{ContentType: "image/PNG"})
	require.NoError(t, err)

	assert.Equal(t, "https://s3.test/upload", resp.UploadURL)
	assert.True(t, strings.HasPrefix(resp.ObjectKey, "reviews/"+user.String()+"/"))
	assert.True(t, strings.HasSuffix(resp.ObjectKey, ".png"))
	store.AssertCalled(t, "PresignUpload", resp.ObjectKey, "image/png")

	var upload models.PhotoUpload
	require.NoError(t, svc.db.First(&upload, "id = ?", resp.UploadID).Error)
	assert.Equal(t, models.PhotoPending, upload.Status)
}

func TestCreateUploadURLRejectsContentType(t *testing.T) {
	svc, _, _ := newPhotoService(t)
	_, err := svc.CreateUploadURL(context.Background(), uuid.New(), &types.UploadURLRequest{ContentType: "image/gif"})
	assert.Error(t, err)
}

func TestConfirmUploadCreditsOnce(t *testing.T) {
	svc, store, achievements := newPhotoService(t)
	ctx := context.Background()
	user := uuid.New()

	resp, err := svc.CreateUploadURL(ctx, user, &types.UploadURLRequest{ContentType: "image/jpeg"})
	require.NoError(t, err)
	store.On("Exists", resp.ObjectKey).Return(false, nil).Once()
	store.On("Exists", resp.ObjectKey).Return(true, nil)

	_, err = svc.ConfirmUpload(ctx, user, resp.UploadID)
	assert.ErrorIs(t, err, ErrUploadIncomplete)

	confirmed, err := svc.ConfirmUpload(ctx, user, resp.UploadID)
	require.NoError(t, err)
	assert.Equal(t, models.PhotoConfirmed, confirmed.Upload.Status)
	assert.Equal(t, "https://s3.test/photo", confirmed.PhotoURL)

	again, err := svc.ConfirmUpload(ctx, user, resp.UploadID)
	require.NoError(t, err)
	assert.Empty(t, again.Unlocked)

	stats, err := achievements.GetStats(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PhotosUploaded)
}

func TestConfirmUploadOtherUser(t *testing.T) {
	svc, _, _ := newPhotoService(t)
	ctx := context.Background()

	resp, err := svc.CreateUploadURL(ctx, uuid.New(), &types.UploadURLRequest{ContentType: "image/webp"})
	require.NoError(t, err)

	_, err = svc.ConfirmUpload(ctx, uuid.New(), resp.UploadID)
	assert.ErrorIs(t, err, ErrUploadNotFound)
	_, err = svc.ConfirmUpload(ctx, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrUploadNotFound)
}

func TestConfirmUploadRevertsWhenEvaluationBusy(t *testing.T) {
	achievements, locker, db := newAchievementService(t)
	store := &testhelpers.MockObjectStore{}
	store.On("PresignUpload", mock.Anything, mock.Anything).Return("https://s3.test/upload", nil)
	store.On("Exists", mock.Anything).Return(true, nil)
	svc := NewPhotoService(db, store, achievements, metrics.New(), logger.Nop())
	ctx := context.Background()
	user := uuid.New()

	resp, err := svc.CreateUploadURL(ctx, user, &types.UploadURLRequest{ContentType: "image/jpeg"})
	require.NoError(t, err)

	release, err := locker.Acquire(ctx, "achievements:"+user.String())
	require.NoError(t, err)
	_, err = svc.ConfirmUpload(ctx, user, resp.UploadID)
	assert.True(t, errors.Is(err, ErrEvaluationInProgress))
	release()

	var upload models.PhotoUpload
	require.NoError(t, db.First(&upload, "id = ?", resp.UploadID).Error)
	assert.Equal(t, models.PhotoPending, upload.Status)
	assert.Nil(t, upload.ConfirmedAt)
}

type failingAchievementStore struct {
	achievement.Store
	fail bool
}

func (s *failingAchievementStore) AppendIfAbsent(ctx context.Context, ua models.UserAchievement) (bool, error) {
	if s.fail {
		return false, errors.New("db down")
	}
	return s.Store.AppendIfAbsent(ctx, ua)
}

func TestConfirmUploadKeepsCreditWhenUnlockFails(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	rules, err := achievement.DefaultRuleSet()
	require.NoError(t, err)
	achStore := &failingAchievementStore{Store: database.NewAchievementStore(db)}
	achievements := NewAchievementService(db, achievement.NewEvaluator(rules, achStore), database.NewLocalLocker(), metrics.New(), logger.Nop())

	store := &testhelpers.MockObjectStore{}
	store.On("PresignUpload", mock.Anything, mock.Anything).Return("https://s3.test/upload", nil)
	store.On("GeneratePresignedURL", mock.Anything).Return("https://s3.test/photo", nil)
	store.On("Exists", mock.Anything).Return(true, nil)
	svc := NewPhotoService(db, store, achievements, metrics.New(), logger.Nop())
	ctx := context.Background()
	user := uuid.New()

	_, err = achievements.Evaluate(ctx, user, &types.StatsUpdate{PhotosUploaded: intPtr(9)})
	require.NoError(t, err)
	resp, err := svc.CreateUploadURL(ctx, user, &types.UploadURLRequest{ContentType: "image/jpeg"})
	require.NoError(t, err)

	achStore.fail = true
	confirmed, err := svc.ConfirmUpload(ctx, user, resp.UploadID)
	require.NoError(t, err)
	assert.Equal(t, models.PhotoConfirmed, confirmed.Upload.Status)
	assert.Empty(t, confirmed.Unlocked)

	achStore.fail = false
	again, err := svc.ConfirmUpload(ctx, user, resp.UploadID)
	require.NoError(t, err)
	assert.Empty(t, again.Unlocked)

	stats, err := achievements.GetStats(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.PhotosUploaded)

	evaluated, err := achievements.Evaluate(ctx, user, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"photographer"}, unlockedIDs(evaluated.Unlocked))
}
