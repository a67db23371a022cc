package database

import (
	"context"
	"fmt"
	"io"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/tastemap/backend/internal/models"
)

// seedNamespace derives stable ids for seeded rows so re-seeding updates in place.
var seedNamespace = uuid.MustParse("6f0d7c1e-3a52-4b7e-9a4f-1c2d8e5b7a90")

// CatalogSeed is the YAML document read by the seed_catalog command.
type CatalogSeed struct {
	Restaurants []RestaurantSeed `yaml:"restaurants"`
	Dishes      []DishSeed       `yaml:"dishes"`
}

type RestaurantSeed struct {
	Name          string   `yaml:"name"`
	Cuisines      []string `yaml:"cuisines"`
	AverageCheck  *float64 `yaml:"average_check"`
	AverageRating *float64 `yaml:"average_rating"`
	Distance      *float64 `yaml:"distance"`
	ReviewCount   int      `yaml:"review_count"`
}

type DishSeed struct {
	Name          string            `yaml:"name"`
	Restaurant    string            `yaml:"restaurant"`
	Cuisine       string            `yaml:"cuisine"`
	Category      string            `yaml:"category"`
	Ingredients   []string          `yaml:"ingredients"`
	Price         *float64          `yaml:"price"`
	SpicyLevel    models.SpicyLevel `yaml:"spicy_level"`
	AverageRating float64           `yaml:"average_rating"`
	ReviewCount   int               `yaml:"review_count"`
}

func (r RestaurantSeed) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.AverageCheck, validation.Min(0.0)),
		validation.Field(&r.AverageRating, validation.Min(0.0), validation.Max(5.0)),
		validation.Field(&r.Distance, validation.Min(0.0)),
		validation.Field(&r.ReviewCount, validation.Min(0)),
	)
}

func (d DishSeed) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required),
		validation.Field(&d.Price, validation.Min(0.0)),
		validation.Field(&d.SpicyLevel, validation.In(models.SpicyLevels()...)),
		validation.Field(&d.AverageRating, validation.Min(0.0), validation.Max(5.0)),
		validation.Field(&d.ReviewCount, validation.Min(0)),
	)
}

// ParseCatalogSeed decodes and validates a seed document. Dishes may only
// reference restaurants declared in the same document.
func ParseCatalogSeed(r io.Reader) (*CatalogSeed, error) {
	var seed CatalogSeed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("failed to parse catalog seed: %w", err)
	}

	known := make(map[string]bool, len(seed.Restaurants))
	for i, rs := range seed.Restaurants {
		if err := rs.Validate(); err != nil {
			return nil, fmt.Errorf("restaurant %d (%s): %w", i, rs.Name, err)
		}
		known[rs.Name] = true
	}
	for i, ds := range seed.Dishes {
		if err := ds.Validate(); err != nil {
			return nil, fmt.Errorf("dish %d (%s): %w", i, ds.Name, err)
		}
		if ds.Restaurant != "" && !known[ds.Restaurant] {
			return nil, fmt.Errorf("dish %d (%s): unknown restaurant %q", i, ds.Name, ds.Restaurant)
		}
	}
	return &seed, nil
}

func restaurantID(name string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte("restaurant:"+name))
}

func dishID(restaurant, name string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte("dish:"+restaurant+"/"+name))
}

// SeedCatalog upserts the seed into the catalog tables in one transaction and
// returns the number of restaurants and dishes written.
func SeedCatalog(ctx context.Context, db *gorm.DB, seed *CatalogSeed) (int, int, error) {
	restaurants := make([]models.Restaurant, 0, len(seed.Restaurants))
	for _, rs := range seed.Restaurants {
		restaurants = append(restaurants, models.Restaurant{
			ID:            restaurantID(rs.Name),
			Name:          rs.Name,
			Cuisines:      models.StringList(rs.Cuisines).Dedupe(),
			AverageCheck:  rs.AverageCheck,
			AverageRating: rs.AverageRating,
			Distance:      rs.Distance,
			ReviewCount:   rs.ReviewCount,
		})
	}

	dishes := make([]models.Dish, 0, len(seed.Dishes))
	for _, ds := range seed.Dishes {
		d := models.Dish{
			ID:            dishID(ds.Restaurant, ds.Name),
			Name:          ds.Name,
			Cuisine:       ds.Cuisine,
			Ingredients:   models.StringList(ds.Ingredients).Dedupe(),
			Price:         ds.Price,
			SpicyLevel:    ds.SpicyLevel,
			AverageRating: ds.AverageRating,
			ReviewCount:   ds.ReviewCount,
		}
		if c := strings.TrimSpace(ds.Category); c != "" {
			d.Category = &c
		}
		if ds.Restaurant != "" {
			id := restaurantID(ds.Restaurant)
			d.RestaurantID = &id
		}
		dishes = append(dishes, d)
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := tx.Clauses(clause.OnConflict{UpdateAll: true})
		if len(restaurants) > 0 {
			if err := upsert.Create(&restaurants).Error; err != nil {
				return fmt.Errorf("failed to seed restaurants: %w", err)
			}
		}
		if len(dishes) > 0 {
			if err := upsert.Create(&dishes).Error; err != nil {
				return fmt.Errorf("failed to seed dishes: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return len(restaurants), len(dishes), nil
}
