// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/asiancafe/backend/internal/models"
	"github.com/asiancafe/backend/internal/store"
)

// CreateReservation inserts a booking and assigns its identifier. No
// double-booking check is performed; concurrent requests for the same
// tables and date are both accepted.
func (r *Repository) CreateReservation(ctx context.Context, res *models.Reservation) error {
	if res.Status == "" {
		res.Status = models.StatusPending
	}
	res.CreatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO reservations (user_email, phone, branch, date, tables, guests, notes, menu_items, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.UserEmail, res.Phone, res.Branch, res.Date, res.Tables, res.Guests,
		res.Notes, res.MenuItems, res.Status, res.CreatedAt)
	if err != nil {
		return wrapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = id
	return nil
}

// ListReservations returns all bookings in insertion order.
func (r *Repository) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	reservations := []models.Reservation{}
	err := r.db.SelectContext(ctx, &reservations, `SELECT * FROM reservations ORDER BY id`)
	if err != nil {
		return nil, wrapError(err)
	}
	return reservations, nil
}

// FindReservationsByPhone returns bookings whose contact number matches
// the queried one after normalization on both sides. The comparison lives
// in Go rather than SQL so both store implementations share it.
func (r *Repository) FindReservationsByPhone(ctx context.Context, phone string) ([]models.Reservation, error) {
	all, err := r.ListReservations(ctx)
	if err != nil {
		return nil, err
	}

	matches := []models.Reservation{}
	for _, res := range all {
		if store.PhoneMatches(res.Phone, phone) {
			matches = append(matches, res)
		}
	}
	return matches, nil
}

// ClearReservations deletes all bookings. Destructive; the handler gates
// it behind an authenticated admin session.
func (r *Repository) ClearReservations(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reservations`)
	return wrapError(err)
}
