// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

// Package booking manages table reservations. No double-booking
// detection is performed; concurrent requests for the same tables and
// date are both accepted, and resolving collisions is an administrative
// concern.
package booking

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/asiancafe/backend/internal/models"
	"github.com/asiancafe/backend/internal/store"
)

// ValidationError names the reservation field that failed validation.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing or invalid field: " + e.Field
}

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// CreateParams holds a booking request.
type CreateParams struct { //nolint:govet // fieldalignment not critical
	UserEmail string
	Phone     string
	Branch    string
	Date      string
	Tables    []string
	Guests    int
	Notes     string
	MenuItems []string
}

// Create validates and persists a reservation with status pending and
// returns it with its assigned identifier.
func (s *Service) Create(ctx context.Context, p CreateParams) (*models.Reservation, error) {
	switch {
	case p.UserEmail == "":
		return nil, &ValidationError{Field: "user_email"}
	case p.Branch == "":
		return nil, &ValidationError{Field: "branch"}
	case p.Date == "":
		return nil, &ValidationError{Field: "date"}
	case len(p.Tables) == 0:
		return nil, &ValidationError{Field: "tables"}
	case p.Guests <= 0:
		return nil, &ValidationError{Field: "guests"}
	}

	res := &models.Reservation{
		UserEmail: p.UserEmail,
		Phone:     p.Phone,
		Branch:    p.Branch,
		Date:      p.Date,
		Tables:    models.StringList(p.Tables),
		Guests:    p.Guests,
		Notes:     p.Notes,
		MenuItems: models.StringList(p.MenuItems),
		Status:    models.StatusPending,
	}
	if err := s.store.CreateReservation(ctx, res); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	slog.Info("reservation_created", "id", res.ID, "branch", res.Branch, "date", res.Date, "guests", res.Guests)
	return res, nil
}

// List returns all reservations in insertion order.
func (s *Service) List(ctx context.Context) ([]models.Reservation, error) {
	return s.store.ListReservations(ctx)
}

// FindByPhone returns reservations whose contact number matches the query
// after normalization on both sides. An empty result is not an error; the
// handler distinguishes "none found" from "store unavailable".
func (s *Service) FindByPhone(ctx context.Context, phone string) ([]models.Reservation, error) {
	return s.store.FindReservationsByPhone(ctx, phone)
}

// Clear deletes every reservation. Destructive and for administrative use
// only; the HTTP layer requires an authenticated admin session.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.ClearReservations(ctx); err != nil {
		return fmt.Errorf("failed to clear reservations: %w", err)
	}
	slog.Info("reservations_cleared")
	return nil
}
