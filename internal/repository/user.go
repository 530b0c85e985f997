// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/asiancafe/backend/internal/models"
)

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = ?`, email)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// CreateUser inserts a new user. The unique email index is the backstop
// for concurrent registrations with the same address.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, verified, google_id, is_admin, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Name, user.Email, user.PasswordHash, user.Verified, user.GoogleID, user.IsAdmin,
		user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return wrapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

// SetUserVerified marks the user with the given email as verified.
func (r *Repository) SetUserVerified(ctx context.Context, email string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET verified = 1, updated_at = ? WHERE email = ?`,
		time.Now().UTC(), email)
	if err != nil {
		return wrapError(err)
	}
	return requireRows(result)
}

// BindGoogleID attaches a Google subject to an existing user and marks the
// account verified, since the provider already proved control of the email.
func (r *Repository) BindGoogleID(ctx context.Context, email, googleID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET google_id = ?, verified = 1, updated_at = ? WHERE email = ?`,
		googleID, time.Now().UTC(), email)
	if err != nil {
		return wrapError(err)
	}
	return requireRows(result)
}
