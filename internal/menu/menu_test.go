// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

package menu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asiancafe/backend/internal/menu"
	"github.com/asiancafe/backend/internal/models"
)

func TestDefault(t *testing.T) {
	items := menu.Default()

	require.Len(t, items, 22)
	assert.Equal(t, "Classic Ramen", items[0].Name)
	assert.Equal(t, int64(1800), items[0].Price)
	assert.Equal(t, "Ramen", items[0].Category)

	for _, item := range items {
		assert.NotZero(t, item.ID)
		assert.NotEmpty(t, item.Name)
		assert.NotEmpty(t, item.Category)
		assert.Positive(t, item.Price)
	}
}

func TestGrouped(t *testing.T) {
	items := []models.MenuItem{
		{ID: 1, Name: "Miso Ramen", Price: 1800, Category: "Ramen", Description: "Classic", Img: "miso.png"},
		{ID: 2, Name: "Cola", Price: 500, Category: "Drinks", Img: "cola.png"},
		{ID: 3, Name: "Shoyu Ramen", Price: 1900, Category: "Ramen", Img: "shoyu.png"},
	}

	groups := menu.Grouped(items, "https://api.example.com/static/images/")

	require.Len(t, groups, 2)
	// Category order follows first appearance.
	assert.Equal(t, "Ramen", groups[0].Category)
	assert.Equal(t, "Drinks", groups[1].Category)

	require.Len(t, groups[0].Items, 2)
	assert.Equal(t, "Miso Ramen", groups[0].Items[0].Name)
	assert.Equal(t, "Shoyu Ramen", groups[0].Items[1].Name)
	assert.Equal(t, "https://api.example.com/static/images/miso.png", groups[0].Items[0].Img)
	assert.Equal(t, "Classic", groups[0].Items[0].Description)
}

func TestGrouped_Empty(t *testing.T) {
	groups := menu.Grouped(nil, "")

	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestCategories(t *testing.T) {
	names := menu.Categories(menu.Default())

	assert.Equal(t, []string{"Bubble Tea", "Desserts", "Drinks", "Ramen", "Rolls"}, names)
}
