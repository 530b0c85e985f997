// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

package models

import "time"

// Reservation statuses. Transitions are administrative and not constrained
// by the backend.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Reservation is a booking of one or more tables at a branch on a date.
// Phone is the contact number used by the phone lookup.
type Reservation struct { //nolint:govet // fieldalignment not critical for models
	ID        int64      `db:"id" json:"id"`
	UserEmail string     `db:"user_email" json:"user_email"`
	Phone     string     `db:"phone" json:"phone"`
	Branch    string     `db:"branch" json:"branch"`
	Date      string     `db:"date" json:"date"`
	Tables    StringList `db:"tables" json:"tables"`
	Guests    int        `db:"guests" json:"guests"`
	Notes     string     `db:"notes" json:"notes"`
	MenuItems StringList `db:"menu_items" json:"menu_items"`
	Status    string     `db:"status" json:"status"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
