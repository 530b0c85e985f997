// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/asiancafe/backend/internal/services/booking"
)

// BookRequest is the request body for POST /book. Email is optional when
// the caller carries a session; the session identity wins.
type BookRequest struct { //nolint:govet // fieldalignment not critical
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Branch    string   `json:"branch"`
	Date      string   `json:"date"`
	Tables    []string `json:"tables"`
	Guests    int      `json:"guests"`
	Notes     string   `json:"notes"`
	MenuItems []string `json:"menu_items"`
}

// Book creates a reservation with status pending.
func (h *Handlers) Book(c echo.Context) error {
	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	userEmail := req.Email
	if identity := h.sessions.Get(c.Request()); identity != nil {
		userEmail = identity.Email
	}

	res, err := h.booking.Create(c.Request().Context(), booking.CreateParams{
		UserEmail: userEmail,
		Phone:     req.Phone,
		Branch:    req.Branch,
		Date:      req.Date,
		Tables:    req.Tables,
		Guests:    req.Guests,
		Notes:     req.Notes,
		MenuItems: req.MenuItems,
	})
	if err != nil {
		var verr *booking.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": verr.Error()})
		}
		slog.Error("create reservation failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message":     "Reservation created",
		"id":          res.ID,
		"reservation": res,
	})
}

// Bookings lists all reservations in insertion order.
func (h *Handlers) Bookings(c echo.Context) error {
	reservations, err := h.booking.List(c.Request().Context())
	if err != nil {
		slog.Error("list reservations failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, reservations)
}

// SearchBooking finds reservations by contact phone. "None found" is 404;
// a store failure is 500, so the two are never conflated.
func (h *Handlers) SearchBooking(c echo.Context) error {
	phone := c.QueryParam("phone")
	if phone == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "phone query parameter is required"})
	}

	matches, err := h.booking.FindByPhone(c.Request().Context(), phone)
	if err != nil {
		slog.Error("search reservations failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	if len(matches) == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no reservations found"})
	}
	return c.JSON(http.StatusOK, matches)
}

// ClearBookings deletes every reservation. Requires an authenticated
// admin session.
func (h *Handlers) ClearBookings(c echo.Context) error {
	identity := h.sessions.Get(c.Request())
	if identity == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}

	user, err := h.store.GetUserByID(c.Request().Context(), identity.ID)
	if err != nil {
		slog.Error("load session user failed", "error", err)
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}
	if !user.IsAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "admin access required"})
	}

	if err := h.booking.Clear(c.Request().Context()); err != nil {
		slog.Error("clear reservations failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "All reservations cleared"})
}
