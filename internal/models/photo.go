package models

import (
	"time"

	"github.com/google/uuid"
)

type PhotoStatus string

const (
	PhotoPending   PhotoStatus = "pending"
	PhotoConfirmed PhotoStatus = "confirmed"
)

// PhotoUpload tracks a review photo from presign to confirmed upload.
type PhotoUpload struct {
	ID          uuid.UUID   `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      uuid.UUID   `gorm:"type:varchar(36);not null;index" json:"user_id"`
	DishID      *uuid.UUID  `gorm:"type:varchar(36);index" json:"dish_id,omitempty"`
	ObjectKey   string      `gorm:"size:512;not null;uniqueIndex" json:"object_key"`
	ContentType string      `gorm:"size:64;not null" json:"content_type"`
	Status      PhotoStatus `gorm:"size:16;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	ConfirmedAt *time.Time  `json:"confirmed_at,omitempty"`
}

func (PhotoUpload) TableName() string {
	return "photo_uploads"
}
