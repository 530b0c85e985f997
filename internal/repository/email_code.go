// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/asiancafe/backend/internal/models"
)

// InsertEmailCode stores a freshly issued verification code. Older codes
// for the same address stay in place but become unusable, because checks
// only ever look at the latest one.
func (r *Repository) InsertEmailCode(ctx context.Context, email, code string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO email_codes (email, code, created_at) VALUES (?, ?, ?)`,
		email, code, time.Now().UTC())
	return wrapError(err)
}

// LatestEmailCode returns the most recently issued code for an email
// address, selected by insertion order.
func (r *Repository) LatestEmailCode(ctx context.Context, email string) (*models.EmailCode, error) {
	var code models.EmailCode
	err := r.db.GetContext(ctx, &code,
		`SELECT * FROM email_codes WHERE email = ? ORDER BY id DESC LIMIT 1`, email)
	if err != nil {
		return nil, wrapError(err)
	}
	return &code, nil
}

// CountEmailCodes returns the number of stored codes for an address.
func (r *Repository) CountEmailCodes(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM email_codes WHERE email = ?`, email)
	if err != nil {
		return 0, wrapError(err)
	}
	return count, nil
}
