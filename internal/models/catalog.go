package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dish is a catalog entry users rate and review.
type Dish struct {
	ID            uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	RestaurantID  *uuid.UUID     `gorm:"type:varchar(36);index" json:"restaurant_id,omitempty"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Cuisine       string         `gorm:"size:100;not null;default:'';index" json:"cuisine,omitempty"`
	Category      *string        `gorm:"size:100" json:"category,omitempty"`
	Ingredients   StringList     `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients,omitempty"`
	Price         *float64       `json:"price,omitempty"`
	SpicyLevel    SpicyLevel     `gorm:"size:16" json:"spicy_level,omitempty"`
	AverageRating float64        `gorm:"not null;default:0" json:"average_rating"`
	ReviewCount   int            `gorm:"not null;default:0" json:"review_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Dish) TableName() string {
	return "dishes"
}

// Restaurant is a venue serving dishes.
type Restaurant struct {
	ID            uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Cuisines      StringList     `gorm:"type:jsonb;not null;default:'[]'" json:"cuisines,omitempty"`
	AverageCheck  *float64       `json:"average_check,omitempty"`
	AverageRating *float64       `json:"average_rating,omitempty"`
	Distance      *float64       `json:"distance,omitempty"`
	ReviewCount   int            `gorm:"not null;default:0" json:"review_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}
