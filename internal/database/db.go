// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

// Package database opens and migrates the SQLite store.
package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vinovest/sqlx"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver

	"github.com/asiancafe/backend/internal/menu"
)

// Open creates a new database connection with optimized SQLite settings,
// runs all pending migrations and seeds the menu when it is empty.
func Open(dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		dsn = "./data/cafe.db"
	}

	// Create directory for file-based databases
	if !strings.HasPrefix(dsn, ":memory:") && !strings.Contains(dsn, "mode=memory") {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, err
		}
	}

	dsn = addDefaultParams(dsn)

	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// An in-memory database exists per connection, so the pool must not
	// grow past one.
	if strings.HasPrefix(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxLifetime(time.Hour)
	}

	ctx := context.Background()
	if err := configureSQLite(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := RunMigrations(conn.DB); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := seedMenu(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

// addDefaultParams adds recommended SQLite parameters if not already present.
func addDefaultParams(dsn string) string {
	defaults := map[string]string{
		"_txlock":       "immediate",
		"_busy_timeout": "5000",
		"_foreign_keys": "on",
	}

	for key, value := range defaults {
		if !strings.Contains(dsn, key) {
			separator := "?"
			if strings.Contains(dsn, "?") {
				separator = "&"
			}
			dsn += separator + key + "=" + value
		}
	}

	return dsn
}

// configureSQLite sets PRAGMAs for optimal performance.
func configureSQLite(ctx context.Context, db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA mmap_size = 134217728",
		"PRAGMA journal_size_limit = 27103364",
		"PRAGMA cache_size = 2000",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return err
		}
	}

	return nil
}

// seedMenu inserts the embedded default menu into an empty menu table.
// An administrative edit made later is never overwritten.
func seedMenu(ctx context.Context, db *sqlx.DB) error {
	var count int64
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM menu_items`); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, item := range menu.Default() {
		_, err := db.ExecContext(ctx,
			`INSERT INTO menu_items (id, name, price, category, description, img) VALUES (?, ?, ?, ?, ?, ?)`,
			item.ID, item.Name, item.Price, item.Category, item.Description, item.Img)
		if err != nil {
			return err
		}
	}
	return nil
}
