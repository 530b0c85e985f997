// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

// Package repository is the SQLite-backed implementation of store.Store.
package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/vinovest/sqlx"

	"github.com/asiancafe/backend/internal/store"
)

// Repository wraps sqlx for database operations.
type Repository struct {
	db *sqlx.DB
}

// compile-time interface check
var _ store.Store = (*Repository)(nil)

// New creates a new Repository instance.
func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// DB returns the underlying connection for direct access.
func (r *Repository) DB() *sqlx.DB {
	return r.db
}

// requireRows maps an update that touched no rows to store.ErrNotFound.
func requireRows(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// wrapError converts driver errors to store errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
		return store.ErrDuplicateEmail
	}
	return err
}
