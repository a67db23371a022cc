package types

import "github.com/pageza/tastemap/backend/internal/models"

// UpdateTasteProfileRequest is a partial update. Nil fields keep their stored
// value; a provided list replaces the stored list.
type UpdateTasteProfileRequest struct {
	FavoriteCuisines    *[]string               `json:"favorite_cuisines"`
	FavoriteIngredients *[]string               `json:"favorite_ingredients"`
	ExcludedIngredients *[]string               `json:"excluded_ingredients"`
	SpicyLevel          *models.SpicyLevel      `json:"spicy_level"`
	DietaryRestrictions *[]string               `json:"dietary_restrictions"`
	PreferredPriceRange *PriceRangeUpdate       `json:"preferred_price_range"`
	TastePreferences    *TastePreferencesUpdate `json:"taste_preferences"`
}

type PriceRangeUpdate struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

type TastePreferencesUpdate struct {
	Sweet  *float64 `json:"sweet"`
	Salty  *float64 `json:"salty"`
	Sour   *float64 `json:"sour"`
	Bitter *float64 `json:"bitter"`
	Umami  *float64 `json:"umami"`
}

// Apply merges the request onto p.
func (r *UpdateTasteProfileRequest) Apply(p *models.TasteProfile) {
	if r.FavoriteCuisines != nil {
		p.FavoriteCuisines = models.StringList(*r.FavoriteCuisines)
	}
	if r.FavoriteIngredients != nil {
		p.FavoriteIngredients = models.StringList(*r.FavoriteIngredients)
	}
	if r.ExcludedIngredients != nil {
		p.ExcludedIngredients = models.StringList(*r.ExcludedIngredients)
	}
	if r.SpicyLevel != nil {
		p.SpicyLevel = *r.SpicyLevel
	}
	if r.DietaryRestrictions != nil {
		p.DietaryRestrictions = models.StringList(*r.DietaryRestrictions)
	}
	if pr := r.PreferredPriceRange; pr != nil {
		if pr.Min != nil {
			p.PriceRange.Min = *pr.Min
		}
		if pr.Max != nil {
			p.PriceRange.Max = *pr.Max
		}
	}
	if tp := r.TastePreferences; tp != nil {
		setIf(&p.TastePreferences.Sweet, tp.Sweet)
		setIf(&p.TastePreferences.Salty, tp.Salty)
		setIf(&p.TastePreferences.Sour, tp.Sour)
		setIf(&p.TastePreferences.Bitter, tp.Bitter)
		setIf(&p.TastePreferences.Umami, tp.Umami)
	}
}

func setIf(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
