package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/tastemap/backend/internal/database"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	seed, err := database.ParseCatalogSeed(bytes.NewReader(defaultCatalog))
	require.NoError(t, err)
	assert.NotEmpty(t, seed.Restaurants)
	assert.NotEmpty(t, seed.Dishes)
}
