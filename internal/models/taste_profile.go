package models

import (
	"time"

	"github.com/google/uuid"
)

// SpicyLevel is a user's spice tolerance or a dish's heat.
type SpicyLevel string

const (
	SpicyNone    SpicyLevel = "none"
	SpicyMild    SpicyLevel = "mild"
	SpicyMedium  SpicyLevel = "medium"
	SpicyHot     SpicyLevel = "hot"
	SpicyExtreme SpicyLevel = "extreme"
)

var spicyRank = map[SpicyLevel]int{
	SpicyNone:    0,
	SpicyMild:    1,
	SpicyMedium:  2,
	SpicyHot:     3,
	SpicyExtreme: 4,
}

// Rank returns the ordinal of the level and false for unknown or empty levels.
func (l SpicyLevel) Rank() (int, bool) {
	r, ok := spicyRank[l]
	return r, ok
}

// SpicyLevels lists the accepted values in ascending order.
func SpicyLevels() []interface{} {
	return []interface{}{SpicyNone, SpicyMild, SpicyMedium, SpicyHot, SpicyExtreme}
}

// DietaryRestrictions lists the accepted dietary restriction values.
func DietaryRestrictions() []interface{} {
	return []interface{}{
		"vegetarian", "vegan", "pescatarian", "keto", "paleo",
		"gluten-free", "dairy-free", "halal", "kosher",
	}
}

// TastePreferences holds the five taste axes, each in [0,10].
type TastePreferences struct {
	Sweet  float64 `gorm:"not null;default:5" json:"sweet"`
	Salty  float64 `gorm:"not null;default:5" json:"salty"`
	Sour   float64 `gorm:"not null;default:5" json:"sour"`
	Bitter float64 `gorm:"not null;default:5" json:"bitter"`
	Umami  float64 `gorm:"not null;default:5" json:"umami"`
}

// PriceRange is a closed price interval.
type PriceRange struct {
	Min float64 `gorm:"column:price_min;not null;default:0" json:"min"`
	Max float64 `gorm:"column:price_max;not null;default:0" json:"max"`
}

// Contains reports whether price lies inside the closed interval.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// TasteProfile is a user's stored food preferences. At most one per user.
type TasteProfile struct {
	ID                  uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID              uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	FavoriteCuisines    StringList       `gorm:"type:jsonb;not null;default:'[]'" json:"favorite_cuisines"`
	FavoriteIngredients StringList       `gorm:"type:jsonb;not null;default:'[]'" json:"favorite_ingredients"`
	ExcludedIngredients StringList       `gorm:"type:jsonb;not null;default:'[]'" json:"excluded_ingredients"`
	SpicyLevel          SpicyLevel       `gorm:"size:16;not null;default:'medium'" json:"spicy_level"`
	DietaryRestrictions StringList       `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_restrictions"`
	PriceRange          PriceRange       `gorm:"embedded" json:"preferred_price_range"`
	TastePreferences    TastePreferences `gorm:"embedded;embeddedPrefix:taste_" json:"taste_preferences"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

func (TasteProfile) TableName() string {
	return "taste_profiles"
}

// NewTasteProfile returns the defaults used when a profile is first saved.
func NewTasteProfile(userID uuid.UUID) *TasteProfile {
	return &TasteProfile{
		ID:                  uuid.New(),
		UserID:              userID,
		FavoriteCuisines:    StringList{},
		FavoriteIngredients: StringList{},
		ExcludedIngredients: StringList{},
		DietaryRestrictions: StringList{},
		SpicyLevel:          SpicyMedium,
		PriceRange:          PriceRange{Min: 0, Max: 5000},
		TastePreferences:    TastePreferences{Sweet: 5, Salty: 5, Sour: 5, Bitter: 5, Umami: 5},
	}
}
