package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/tastemap/backend/internal/database"
	"github.com/pageza/tastemap/backend/internal/models"
)

var baseTime = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, database.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

type recordingListener struct {
	calls []uuid.UUID
}

func (l *recordingListener) ProfileChanged(_ context.Context, userID uuid.UUID) {
	l.calls = append(l.calls, userID)
}

func seedDish(t *testing.T, db *gorm.DB, offset int, d models.Dish) models.Dish {
	t.Helper()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Ingredients == nil {
		d.Ingredients = models.StringList{}
	}
	d.CreatedAt = baseTime.Add(time.Duration(offset) * time.Minute)
	require.NoError(t, db.Create(&d).Error)
	return d
}

func seedRestaurant(t *testing.T, db *gorm.DB, offset int, r models.Restaurant) models.Restaurant {
	t.Helper()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Cuisines == nil {
		r.Cuisines = models.StringList{}
	}
	r.CreatedAt = baseTime.Add(time.Duration(offset) * time.Minute)
	require.NoError(t, db.Create(&r).Error)
	return r
}
