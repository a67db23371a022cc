package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/tastemap/backend/internal/models"
)

type UploadURLRequest struct {
	ContentType string     `json:"content_type" binding:"required,oneof=image/jpeg image/png image/webp"`
	DishID      *uuid.UUID `json:"dish_id"`
}

type UploadURLResponse struct {
	UploadID  uuid.UUID `json:"upload_id"`
	ObjectKey string    `json:"object_key"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ConfirmPhotoRequest struct {
	UploadID uuid.UUID `json:"upload_id" binding:"required"`
}

type ConfirmPhotoResponse struct {
	Upload   *models.PhotoUpload   `json:"upload"`
	PhotoURL string                `json:"photo_url"`
	Unlocked []UnlockedAchievement `json:"unlocked"`
}
