package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/tastemap/backend/internal/filters"
	"github.com/pageza/tastemap/backend/internal/models"
	"github.com/pageza/tastemap/backend/internal/testhelpers"
)

func TestListDishesFiltersAndSorts(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	soup := "Суп"
	main := "Основное"
	borscht := seedDish(t, db, 0, models.Dish{Name: "Борщ", Category: &soup, Price: floatPtr(450), AverageRating: 4.7, Ingredients: models.StringList{"свёкла", "говядина"}})
	seedDish(t, db, 1, models.Dish{Name: "Пад тай", Category: &main, Price: floatPtr(600), AverageRating: 4.2, Ingredients: models.StringList{"лапша", "арахис"}})
	shchi := seedDish(t, db, 2, models.Dish{Name: "Щи", Category: &soup, Price: floatPtr(300), AverageRating: 4.0, Ingredients: models.StringList{"капуста"}})
	seedDish(t, db, 3, models.Dish{Name: "Без цены", Category: &soup, AverageRating: 5})
	arbuz := seedDish(t, db, 4, models.Dish{Name: "арбузный гаспачо", Category: &soup, Price: floatPtr(350), AverageRating: 3.9})

	all, err := svc.ListDishes(ctx, filters.FilterOption{}, nil)
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Equal(t, borscht.ID, all[0].ID)

	got, err := svc.ListDishes(ctx, filters.FilterOption{
		Category: []string{"суп"},
		Price:    &filters.Range{Min: 0, Max: 500},
	}, &filters.SortOption{SortBy: filters.SortByName, Order: filters.Asc})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, arbuz.ID, got[0].ID)
	assert.Equal(t, borscht.ID, got[1].ID)
	assert.Equal(t, shchi.ID, got[2].ID)

	got, err = svc.ListDishes(ctx, filters.FilterOption{
		Ingredients: &filters.IngredientFilter{Exclude: []string{"АРАХИС"}},
	}, &filters.SortOption{SortBy: filters.SortByRating, Order: filters.Desc})
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "Без цены", got[0].Name)
	for _, d := range got {
		assert.NotEqual(t, "Пад тай", d.Name)
	}
}

func TestListRestaurantsRatingFilter(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := NewCatalogService(db)

	seedRestaurant(t, db, 0, models.Restaurant{Name: "Без рейтинга"})
	seedRestaurant(t, db, 1, models.Restaurant{Name: "Хинкальная", AverageRating: floatPtr(4.5), Distance: floatPtr(2)})
	seedRestaurant(t, db, 2, models.Restaurant{Name: "Чебуречная", AverageRating: floatPtr(4.0), Distance: floatPtr(0.4)})
	seedRestaurant(t, db, 3, models.Restaurant{Name: "Столовая", AverageRating: floatPtr(3.1)})

	got, err := svc.ListRestaurants(context.Background(),
		filters.FilterOption{Rating: &filters.Range{Min: 4, Max: 5}},
		&filters.SortOption{SortBy: filters.SortByDistance, Order: filters.Asc})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Чебуречная", got[0].Name)
	assert.Equal(t, "Хинкальная", got[1].Name)
}
