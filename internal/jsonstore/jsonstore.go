// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

// Package jsonstore is the flat-file implementation of store.Store. Each
// entity lives in its own JSON array file under a data directory. The
// store is single-process; a mutex serializes all file I/O.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/asiancafe/backend/internal/menu"
	"github.com/asiancafe/backend/internal/models"
	"github.com/asiancafe/backend/internal/store"
)

const (
	usersFile        = "users.json"
	codesFile        = "email_codes.json"
	reservationsFile = "reservations.json"
	menuFile         = "menu.json"
)

// Store keeps all entities in memory and mirrors every mutation to disk.
type Store struct {
	mu  sync.Mutex
	dir string

	users        []models.User
	codes        []models.EmailCode
	reservations []models.Reservation
	menu         []models.MenuItem
}

var _ store.Store = (*Store)(nil)

// Open loads the data directory, creating it and seeding the menu when
// missing.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	s := &Store{dir: dir}

	var users []userRecord
	if err := loadFile(filepath.Join(dir, usersFile), &users); err != nil {
		return nil, err
	}
	s.users = fromUserRecords(users)
	if err := loadFile(filepath.Join(dir, codesFile), &s.codes); err != nil {
		return nil, err
	}
	if err := loadFile(filepath.Join(dir, reservationsFile), &s.reservations); err != nil {
		return nil, err
	}
	if err := loadFile(filepath.Join(dir, menuFile), &s.menu); err != nil {
		return nil, err
	}

	if len(s.menu) == 0 {
		s.menu = menu.Default()
		if err := s.saveLocked(menuFile, s.menu); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// loadFile reads a JSON array file into dst. A missing file is an empty
// collection, not an error.
func loadFile(path string, dst any) error {
	data, err := os.ReadFile(path) //nolint:gosec // paths come from config, not requests
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// saveLocked rewrites a data file atomically. Callers must hold s.mu.
func (s *Store) saveLocked(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o640); err != nil { //nolint:gosec // local data dir
		return err
	}
	return os.Rename(tmp, path)
}

// userRecord is the on-disk shape of a user. The API model hides the
// credential fields from JSON, but the data file must keep them.
type userRecord struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Verified     bool      `json:"verified"`
	GoogleID     string    `json:"google_id"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toUserRecords(users []models.User) []userRecord {
	out := make([]userRecord, len(users))
	for i, u := range users {
		out[i] = userRecord(u)
	}
	return out
}

func fromUserRecords(records []userRecord) []models.User {
	out := make([]models.User, len(records))
	for i, r := range records {
		out[i] = models.User(r)
	}
	return out
}

// saveUsersLocked persists the user collection. Callers must hold s.mu.
func (s *Store) saveUsersLocked() error {
	return s.saveLocked(usersFile, toUserRecords(s.users))
}

// nextID returns one past the highest identifier in use.
func nextID[T any](items []T, id func(T) int64) int64 {
	var maxID int64
	for _, item := range items {
		if v := id(item); v > maxID {
			maxID = v
		}
	}
	return maxID + 1
}

// ===== Users =====

func (s *Store) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Email == email {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Email == user.Email {
			return store.ErrDuplicateEmail
		}
	}

	now := time.Now().UTC()
	user.ID = nextID(s.users, func(u models.User) int64 { return u.ID })
	user.CreatedAt = now
	user.UpdatedAt = now

	s.users = append(s.users, *user)
	return s.saveUsersLocked()
}

func (s *Store) SetUserVerified(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Email == email {
			s.users[i].Verified = true
			s.users[i].UpdatedAt = time.Now().UTC()
			return s.saveUsersLocked()
		}
	}
	return store.ErrNotFound
}

func (s *Store) BindGoogleID(_ context.Context, email, googleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Email == email {
			s.users[i].GoogleID = googleID
			s.users[i].Verified = true
			s.users[i].UpdatedAt = time.Now().UTC()
			return s.saveUsersLocked()
		}
	}
	return store.ErrNotFound
}

// ===== Email verification codes =====

func (s *Store) InsertEmailCode(_ context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes = append(s.codes, models.EmailCode{
		ID:        nextID(s.codes, func(c models.EmailCode) int64 { return c.ID }),
		Email:     email,
		Code:      code,
		CreatedAt: time.Now().UTC(),
	})
	return s.saveLocked(codesFile, s.codes)
}

func (s *Store) LatestEmailCode(_ context.Context, email string) (*models.EmailCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Latest by insertion order, so scan from the back.
	for i := len(s.codes) - 1; i >= 0; i-- {
		if s.codes[i].Email == email {
			code := s.codes[i]
			return &code, nil
		}
	}
	return nil, store.ErrNotFound
}

// ===== Reservations =====

func (s *Store) CreateReservation(_ context.Context, res *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if res.Status == "" {
		res.Status = models.StatusPending
	}
	res.ID = nextID(s.reservations, func(r models.Reservation) int64 { return r.ID })
	res.CreatedAt = time.Now().UTC()

	s.reservations = append(s.reservations, *res)
	return s.saveLocked(reservationsFile, s.reservations)
}

func (s *Store) ListReservations(_ context.Context) ([]models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Reservation, len(s.reservations))
	copy(out, s.reservations)
	return out, nil
}

func (s *Store) FindReservationsByPhone(_ context.Context, phone string) ([]models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := []models.Reservation{}
	for _, res := range s.reservations {
		if store.PhoneMatches(res.Phone, phone) {
			matches = append(matches, res)
		}
	}
	return matches, nil
}

func (s *Store) ClearReservations(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reservations = nil
	return s.saveLocked(reservationsFile, []models.Reservation{})
}

// ===== Menu =====

func (s *Store) ListMenu(_ context.Context) ([]models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.MenuItem, len(s.menu))
	copy(out, s.menu)
	return out, nil
}
