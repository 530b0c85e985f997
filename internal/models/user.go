// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

package models

import "time"

// User is a registered account. PasswordHash is empty for users that only
// log in through Google. An unverified user cannot obtain a session via
// password login.
type User struct { //nolint:govet // fieldalignment not critical for models
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Verified     bool      `db:"verified" json:"verified"`
	GoogleID     string    `db:"google_id" json:"-"`
	IsAdmin      bool      `db:"is_admin" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// EmailCode is a 6-digit verification code issued for an email address.
// Codes are never deleted; verification always checks the most recently
// issued code for the address.
type EmailCode struct {
	ID        int64     `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Code      string    `db:"code" json:"code"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
