package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/tastemap/backend/internal/logger"
	"github.com/pageza/tastemap/backend/internal/models"
	"github.com/pageza/tastemap/backend/internal/types"
)

// TasteProfileService handles taste profile persistence
type TasteProfileService struct {
	db        *gorm.DB
	log       *logger.Logger
	listeners []ProfileListener
}

// Ensure TasteProfileService implements ITasteProfileService
var _ ITasteProfileService = (*TasteProfileService)(nil)

// NewTasteProfileService creates a new TasteProfileService instance
func NewTasteProfileService(db *gorm.DB, log *logger.Logger, listeners ...ProfileListener) *TasteProfileService {
	return &TasteProfileService{db: db, log: log, listeners: listeners}
}

// GetProfile returns the user's profile or ErrProfileNotFound
func (s *TasteProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.TasteProfile, error) {
	var profile models.TasteProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get taste profile: %w", err)
	}
	return &profile, nil
}

// SaveProfile merges req onto the stored profile, creating it with defaults
// on first save. Nothing is written when the merged profile is invalid.
func (s *TasteProfileService) SaveProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateTasteProfileRequest) (*models.TasteProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	created := false
	switch {
	case errors.Is(err, ErrProfileNotFound):
		profile = models.NewTasteProfile(userID)
		created = true
	case err != nil:
		return nil, err
	}

	req.Apply(profile)
	normalize(profile)
	if err := ValidateTasteProfile(profile); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidProfile, err.Error())
	}

	db := s.db.WithContext(ctx)
	if created {
		// A concurrent first save for the same user turns into an update.
		err = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(profileColumns),
		}).Create(profile).Error
	} else {
		err = db.Save(profile).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save taste profile: %w", err)
	}

	s.log.Info("taste profile saved", "user_id", userID, "created", created)
	s.notify(ctx, userID)
	return s.GetProfile(ctx, userID)
}

// DeleteProfile removes the user's profile
func (s *TasteProfileService) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.TasteProfile{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete taste profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	s.log.Info("taste profile deleted", "user_id", userID)
	s.notify(ctx, userID)
	return nil
}

func (s *TasteProfileService) notify(ctx context.Context, userID uuid.UUID) {
	for _, l := range s.listeners {
		l.ProfileChanged(ctx, userID)
	}
}

var profileColumns = []string{
	"favorite_cuisines", "favorite_ingredients", "excluded_ingredients", "spicy_level",
	"dietary_restrictions", "price_min", "price_max", "taste_sweet", "taste_salty",
	"taste_sour", "taste_bitter", "taste_umami", "updated_at",
}

// normalize trims and dedupes the string sets.
func normalize(p *models.TasteProfile) {
	p.FavoriteCuisines = p.FavoriteCuisines.Dedupe()
	p.FavoriteIngredients = p.FavoriteIngredients.Dedupe()
	p.ExcludedIngredients = p.ExcludedIngredients.Dedupe()
	restrictions := p.DietaryRestrictions.Dedupe()
	for i, r := range restrictions {
		restrictions[i] = strings.ToLower(r)
	}
	p.DietaryRestrictions = restrictions
}

// ValidateTasteProfile checks the enum fields, the taste axes and the price range.
func ValidateTasteProfile(p *models.TasteProfile) error {
	axes := &p.TastePreferences
	axis := []validation.Rule{validation.Min(0.0), validation.Max(10.0)}
	return validation.ValidateStruct(p,
		validation.Field(&p.SpicyLevel, validation.Required, validation.In(models.SpicyLevels()...)),
		validation.Field(&p.DietaryRestrictions, validation.Each(validation.In(models.DietaryRestrictions()...))),
		validation.Field(&p.PriceRange, validation.By(func(interface{}) error {
			return validation.ValidateStruct(&p.PriceRange,
				validation.Field(&p.PriceRange.Min, validation.Min(0.0)),
				validation.Field(&p.PriceRange.Max, validation.By(func(interface{}) error {
					if p.PriceRange.Max < p.PriceRange.Min {
						return errors.New("must be no less than min")
					}
					return nil
				})),
			)
		})),
		validation.Field(&p.TastePreferences, validation.By(func(interface{}) error {
			return validation.ValidateStruct(axes,
				validation.Field(&axes.Sweet, axis...),
				validation.Field(&axes.Salty, axis...),
				validation.Field(&axes.Sour, axis...),
				validation.Field(&axes.Bitter, axis...),
				validation.Field(&axes.Umami, axis...),
			)
		})),
	)
}
