// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

// Package store defines the persistence interface implemented by the
// SQLite-backed repository and the flat-file JSON store. Business logic
// depends only on this interface.
package store

import (
	"context"
	"errors"

	"github.com/asiancafe/backend/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when creating a user whose email
	// already exists. The unique index is the backstop for the
	// check-then-insert race in registration.
	ErrDuplicateEmail = errors.New("email already exists")
)

// Store is the capability set required by the services layer.
type Store interface {
	// Users
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	SetUserVerified(ctx context.Context, email string) error
	BindGoogleID(ctx context.Context, email, googleID string) error

	// Email verification codes
	InsertEmailCode(ctx context.Context, email, code string) error
	LatestEmailCode(ctx context.Context, email string) (*models.EmailCode, error)

	// Reservations
	CreateReservation(ctx context.Context, res *models.Reservation) error
	ListReservations(ctx context.Context) ([]models.Reservation, error)
	FindReservationsByPhone(ctx context.Context, phone string) ([]models.Reservation, error)
	ClearReservations(ctx context.Context) error

	// Menu
	ListMenu(ctx context.Context) ([]models.MenuItem, error)
}
