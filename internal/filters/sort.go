package filters

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pageza/tastemap/backend/internal/models"
)

// Names collate with Russian rules. A Collator is not safe for concurrent use,
// so each sort call builds its own.
func newCollator() *collate.Collator {
	return collate.New(language.Russian)
}

// SortDishes returns a stably sorted copy of dishes. Missing numeric fields
// sort as 0. Unknown keys return the copy in input order.
func SortDishes(dishes []models.Dish, sortBy SortBy, order SortOrder) []models.Dish {
	out := make([]models.Dish, len(dishes))
	copy(out, dishes)

	var cmp func(a, b *models.Dish) int
	switch sortBy {
	case SortByRating:
		cmp = func(a, b *models.Dish) int { return compareFloat(a.AverageRating, b.AverageRating) }
	case SortByPrice:
		cmp = func(a, b *models.Dish) int { return compareFloat(deref(a.Price), deref(b.Price)) }
	case SortByDate:
		cmp = func(a, b *models.Dish) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortByPopularity:
		cmp = func(a, b *models.Dish) int { return compareInt(a.ReviewCount, b.ReviewCount) }
	case SortByDistance:
		// dishes carry no distance; every key is 0
		return out
	case SortByName:
		col := newCollator()
		cmp = func(a, b *models.Dish) int { return col.CompareString(a.Name, b.Name) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		return directed(cmp(&out[i], &out[j]), order) < 0
	})
	return out
}

// SortRestaurants is SortDishes for restaurants. Price sorts by average check.
func SortRestaurants(restaurants []models.Restaurant, sortBy SortBy, order SortOrder) []models.Restaurant {
	out := make([]models.Restaurant, len(restaurants))
	copy(out, restaurants)

	var cmp func(a, b *models.Restaurant) int
	switch sortBy {
	case SortByRating:
		cmp = func(a, b *models.Restaurant) int { return compareFloat(deref(a.AverageRating), deref(b.AverageRating)) }
	case SortByPrice:
		cmp = func(a, b *models.Restaurant) int { return compareFloat(deref(a.AverageCheck), deref(b.AverageCheck)) }
	case SortByDate:
		cmp = func(a, b *models.Restaurant) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortByPopularity:
		cmp = func(a, b *models.Restaurant) int { return compareInt(a.ReviewCount, b.ReviewCount) }
	case SortByDistance:
		cmp = func(a, b *models.Restaurant) int { return compareFloat(deref(a.Distance), deref(b.Distance)) }
	case SortByName:
		col := newCollator()
		cmp = func(a, b *models.Restaurant) int { return col.CompareString(a.Name, b.Name) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		return directed(cmp(&out[i], &out[j]), order) < 0
	})
	return out
}

// directed flips the comparison for descending order. Equal keys stay equal,
// so stability holds in both directions.
func directed(c int, order SortOrder) int {
	if order == Desc {
		return -c
	}
	return c
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
