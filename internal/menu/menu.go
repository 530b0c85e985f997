// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

// Package menu carries the embedded default menu and the grouped response
// shape served by GET /api/menu.
package menu

import (
	"encoding/json"
	"sort"
	"strings"

	_ "embed"

	"github.com/asiancafe/backend/internal/models"
)

//go:embed menu.json
var defaultMenu []byte

// Default returns the embedded menu used to seed an empty store.
func Default() []models.MenuItem {
	var items []models.MenuItem
	// The embedded literal is validated by tests; a decode error here is a
	// build defect.
	if err := json.Unmarshal(defaultMenu, &items); err != nil {
		panic("menu: invalid embedded menu.json: " + err.Error())
	}
	return items
}

// Item is a dish as presented to the front end within a category group.
type Item struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"desc"`
	Img         string `json:"img"`
}

// Category groups menu items for the front end.
type Category struct {
	Category string `json:"category"`
	Items    []Item `json:"items"`
}

// Grouped converts flat menu items into the category-grouped response
// shape. Category order follows first appearance in the item list; item
// order within a category is preserved. Image references are resolved
// against imageBaseURL.
func Grouped(items []models.MenuItem, imageBaseURL string) []Category {
	imageBaseURL = strings.TrimSuffix(imageBaseURL, "/")

	index := make(map[string]int)
	var groups []Category

	for _, item := range items {
		pos, ok := index[item.Category]
		if !ok {
			pos = len(groups)
			index[item.Category] = pos
			groups = append(groups, Category{Category: item.Category})
		}

		img := item.Img
		if img != "" && imageBaseURL != "" {
			img = imageBaseURL + "/" + img
		}

		groups[pos].Items = append(groups[pos].Items, Item{
			Name:        item.Name,
			Price:       item.Price,
			Description: item.Description,
			Img:         img,
		})
	}

	if groups == nil {
		groups = []Category{}
	}
	return groups
}

// Categories lists the distinct category names of a menu in sorted order.
func Categories(items []models.MenuItem) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, item := range items {
		if _, ok := seen[item.Category]; !ok {
			seen[item.Category] = struct{}{}
			names = append(names, item.Category)
		}
	}
	sort.Strings(names)
	return names
}
