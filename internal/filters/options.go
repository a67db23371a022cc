// Package filters narrows and orders dish and restaurant lists for list screens.
// Every function is pure: inputs are never mutated and a new slice is returned.
package filters

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Range is a closed numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies inside the interval, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Min, validation.Min(0.0)),
		validation.Field(&r.Max, validation.By(func(interface{}) error {
			if r.Max < r.Min {
				return errors.New("must be no less than min")
			}
			return nil
		})),
	)
}

// IngredientFilter keeps dishes containing any Include term and drops dishes
// containing any Exclude term.
type IngredientFilter struct {
	Include []string `json:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
}

// FilterOption is the set of optional filter clauses. Absent clauses are no-ops.
type FilterOption struct {
	Category    []string          `json:"category,omitempty"`
	Rating      *Range            `json:"rating,omitempty"`
	Price       *Range            `json:"price,omitempty"`
	Ingredients *IngredientFilter `json:"ingredients,omitempty"`
}

func (f FilterOption) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Rating),
		validation.Field(&f.Price),
	)
}

type SortBy string

const (
	SortByRating     SortBy = "rating"
	SortByPrice      SortBy = "price"
	SortByDate       SortBy = "date"
	SortByPopularity SortBy = "popularity"
	SortByDistance   SortBy = "distance"
	SortByName       SortBy = "name"
)

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// SortOption selects the sort key and direction.
type SortOption struct {
	SortBy SortBy    `json:"sort_by"`
	Order  SortOrder `json:"sort_order"`
}

func (s SortOption) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.SortBy, validation.In(
			SortByRating, SortByPrice, SortByDate, SortByPopularity, SortByDistance, SortByName,
		)),
		validation.Field(&s.Order, validation.In(Asc, Desc)),
	)
}
