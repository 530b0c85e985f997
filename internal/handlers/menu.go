// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/asiancafe/backend/internal/menu"
)

// Menu returns the category-grouped menu. Read-only; two consecutive
// calls without an administrative write return identical content.
func (h *Handlers) Menu(c echo.Context) error {
	items, err := h.store.ListMenu(c.Request().Context())
	if err != nil {
		slog.Error("list menu failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	grouped := menu.Grouped(items, h.cfg.Server.BaseURL+"/static/images")
	return c.JSON(http.StatusOK, grouped)
}
