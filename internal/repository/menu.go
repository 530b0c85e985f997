// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"github.com/asiancafe/backend/internal/models"
)

// ListMenu returns all menu items in identifier order.
func (r *Repository) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	err := r.db.SelectContext(ctx, &items, `SELECT * FROM menu_items ORDER BY id`)
	if err != nil {
		return nil, wrapError(err)
	}
	return items, nil
}
