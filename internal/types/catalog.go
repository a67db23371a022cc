package types

import (
	"math"
	"strings"

	"github.com/pageza/tastemap/backend/internal/filters"
)

// CatalogQuery is bound from the query string of the dish and restaurant list
// endpoints. List parameters accept repeated keys or comma separated values.
type CatalogQuery struct {
	Category  []string `form:"category"`
	RatingMin *float64 `form:"rating_min"`
	RatingMax *float64 `form:"rating_max"`
	PriceMin  *float64 `form:"price_min"`
	PriceMax  *float64 `form:"price_max"`
	Include   []string `form:"include"`
	Exclude   []string `form:"exclude"`
	SortBy    string   `form:"sort_by"`
	SortOrder string   `form:"sort_order"`
}

// FilterOption converts the query into filter clauses. An open interval end
// takes the widest bound.
func (q *CatalogQuery) FilterOption() filters.FilterOption {
	var opt filters.FilterOption
	if c := splitValues(q.Category); len(c) > 0 {
		opt.Category = c
	}
	opt.Rating = rangeOf(q.RatingMin, q.RatingMax, 5)
	opt.Price = rangeOf(q.PriceMin, q.PriceMax, 0)
	include, exclude := splitValues(q.Include), splitValues(q.Exclude)
	if len(include) > 0 || len(exclude) > 0 {
		opt.Ingredients = &filters.IngredientFilter{Include: include, Exclude: exclude}
	}
	return opt
}

// SortOption returns nil when no sort key was requested.
func (q *CatalogQuery) SortOption() *filters.SortOption {
	if q.SortBy == "" {
		return nil
	}
	order := filters.SortOrder(strings.ToLower(q.SortOrder))
	if order == "" {
		order = filters.Asc
	}
	return &filters.SortOption{SortBy: filters.SortBy(strings.ToLower(q.SortBy)), Order: order}
}

// rangeOf builds a Range from optional bounds. openMax of 0 means unbounded.
func rangeOf(min, max *float64, openMax float64) *filters.Range {
	if min == nil && max == nil {
		return nil
	}
	r := &filters.Range{}
	if min != nil {
		r.Min = *min
	}
	switch {
	case max != nil:
		r.Max = *max
	case openMax > 0:
		r.Max = openMax
	default:
		r.Max = math.MaxFloat64
	}
	return r
}

func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
