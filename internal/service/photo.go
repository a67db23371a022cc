package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/tastemap/backend/internal/logger"
	"github.com/pageza/tastemap/backend/internal/metrics"
	"github.com/pageza/tastemap/backend/internal/models"
	"github.com/pageza/tastemap/backend/internal/types"
)

const (
	uploadURLExpiry = 15 * time.Minute
	photoURLExpiry  = time.Hour
)

var photoExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// PhotoService issues presigned uploads for review photos and credits
// confirmed uploads to the user's stats.
type PhotoService struct {
	db           *gorm.DB
	store        ObjectStore
	achievements IAchievementService
	metrics      *metrics.Metrics
	log          *logger.Logger
	now          func() time.Time
}

// Ensure PhotoService implements IPhotoService
var _ IPhotoService = (*PhotoService)(nil)

// NewPhotoService creates a new PhotoService instance
func NewPhotoService(db *gorm.DB, store ObjectStore, achievements IAchievementService, m *metrics.Metrics, log *logger.Logger) *PhotoService {
	return &PhotoService{db: db, store: store, achievements: achievements, metrics: m, log: log, now: time.Now}
}

// CreateUploadURL records a pending upload and returns a presigned PUT URL.
func (s *PhotoService) CreateUploadURL(ctx context.Context, userID uuid.UUID, req *types.UploadURLRequest) (*types.UploadURLResponse, error) {
	ext, ok := photoExtensions[strings.ToLower(req.ContentType)]
	if !ok {
		return nil, fmt.Errorf("unsupported content type %q", req.ContentType)
	}

	upload := &models.PhotoUpload{
		ID:          uuid.New(),
		UserID:      userID,
		DishID:      req.DishID,
		ContentType: strings.ToLower(req.ContentType),
		Status:      models.PhotoPending,
	}
	upload.ObjectKey = fmt.Sprintf("reviews/%s/%s.%s", userID, upload.ID, ext)

	url, err := s.store.PresignUpload(ctx, upload.ObjectKey, upload.ContentType, uploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload url: %w", err)
	}
	if err := s.db.WithContext(ctx).Create(upload).Error; err != nil {
		return nil, fmt.Errorf("failed to record photo upload: %w", err)
	}

	s.metrics.RecordPhoto("presigned")
	return &types.UploadURLResponse{
		UploadID:  upload.ID,
		ObjectKey: upload.ObjectKey,
		UploadURL: url,
		ExpiresAt: s.now().Add(uploadURLExpiry).UTC(),
	}, nil
}

// ConfirmUpload marks the upload confirmed once the object exists and credits
// photos_uploaded. Confirming twice credits once.
func (s *PhotoService) ConfirmUpload(ctx context.Context, userID, uploadID uuid.UUID) (*types.ConfirmPhotoResponse, error) {
	var upload models.PhotoUpload
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", uploadID, userID).First(&upload).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUploadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get photo upload: %w", err)
	}

	unlocked := []types.UnlockedAchievement{}
	if upload.Status != models.PhotoConfirmed {
		exists, err := s.store.Exists(ctx, upload.ObjectKey)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrUploadIncomplete
		}

		claimed, err := s.markConfirmed(ctx, &upload)
		if err != nil {
			return nil, err
		}
		if claimed {
			unlocked, err = s.achievements.RecordPhotoUpload(ctx, userID)
			if err != nil {
				// The photo was not credited; let the client retry the confirm.
				if rerr := s.markPending(ctx, &upload); rerr != nil {
					s.log.Error("failed to revert photo upload", "upload_id", upload.ID, "error", rerr)
				}
				return nil, err
			}
			s.metrics.RecordPhoto("confirmed")
			s.log.Info("photo upload confirmed", "user_id", userID, "upload_id", upload.ID)
		}
	}

	photoURL, err := s.store.GeneratePresignedURL(ctx, upload.ObjectKey, photoURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to create photo url: %w", err)
	}
	return &types.ConfirmPhotoResponse{Upload: &upload, PhotoURL: photoURL, Unlocked: unlocked}, nil
}

// markConfirmed flips pending to confirmed and reports whether this call won.
func (s *PhotoService) markConfirmed(ctx context.Context, upload *models.PhotoUpload) (bool, error) {
	now := s.now().UTC()
	result := s.db.WithContext(ctx).Model(&models.PhotoUpload{}).
		Where("id = ? AND status = ?", upload.ID, models.PhotoPending).
		Updates(map[string]interface{}{"status": models.PhotoConfirmed, "confirmed_at": now})
	if result.Error != nil {
		return false, fmt.Errorf("failed to confirm photo upload: %w", result.Error)
	}
	upload.Status = models.PhotoConfirmed
	upload.ConfirmedAt = &now
	return result.RowsAffected == 1, nil
}

func (s *PhotoService) markPending(ctx context.Context, upload *models.PhotoUpload) error {
	upload.Status = models.PhotoPending
	upload.ConfirmedAt = nil
	return s.db.WithContext(ctx).Model(&models.PhotoUpload{}).
		Where("id = ?", upload.ID).
		Updates(map[string]interface{}{"status": models.PhotoPending, "confirmed_at": nil}).Error
}
