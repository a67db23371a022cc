package filters

import (
	"strings"

	"github.com/pageza/tastemap/backend/internal/models"
)

// FilterDishes applies every active clause of f in sequence: category, rating,
// price, ingredient exclude, ingredient include.
func FilterDishes(dishes []models.Dish, f FilterOption) []models.Dish {
	out := make([]models.Dish, 0, len(dishes))
	for _, d := range dishes {
		if keepDish(d, f) {
			out = append(out, d)
		}
	}
	return out
}

func keepDish(d models.Dish, f FilterOption) bool {
	if len(f.Category) > 0 {
		if d.Category == nil || !ContainsFold(f.Category, *d.Category) {
			return false
		}
	}

	if f.Rating != nil && !f.Rating.Contains(d.AverageRating) {
		return false
	}

	if f.Price != nil {
		if d.Price == nil || !f.Price.Contains(*d.Price) {
			return false
		}
	}

	if f.Ingredients != nil {
		if _, hit := MatchTerm(d.Ingredients, f.Ingredients.Exclude); hit {
			return false
		}
		if hasTerms(f.Ingredients.Include) {
			if _, hit := MatchTerm(d.Ingredients, f.Ingredients.Include); !hit {
				return false
			}
		}
	}

	return true
}

// FilterRestaurants applies the rating clause only. Unrated restaurants are
// dropped while a rating clause is active.
func FilterRestaurants(restaurants []models.Restaurant, f FilterOption) []models.Restaurant {
	out := make([]models.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if f.Rating != nil {
			if r.AverageRating == nil || !f.Rating.Contains(*r.AverageRating) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func hasTerms(terms []string) bool {
	for _, t := range terms {
		if strings.TrimSpace(t) != "" {
			return true
		}
	}
	return false
}
