// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/asiancafe/backend/internal/database"
	"github.com/asiancafe/backend/internal/models"
	"github.com/asiancafe/backend/internal/repository"
	"github.com/asiancafe/backend/internal/store"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestUser creates an unverified user with a bcrypt-hashed password.
func NewTestUser(t *testing.T, st store.Store, name, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Name: name, Email: email, PasswordHash: string(hash)}
	require.NoError(t, st.CreateUser(context.Background(), user))
	return user
}

// NewVerifiedUser creates a verified user with a bcrypt-hashed password.
func NewVerifiedUser(t *testing.T, st store.Store, name, email, password string) *models.User {
	t.Helper()
	user := NewTestUser(t, st, name, email, password)
	require.NoError(t, st.SetUserVerified(context.Background(), email))
	user.Verified = true
	return user
}

// NewTestReservation stores a reservation with sensible defaults.
func NewTestReservation(t *testing.T, st store.Store, email, phone string) *models.Reservation {
	t.Helper()
	res := &models.Reservation{
		UserEmail: email,
		Phone:     phone,
		Branch:    "downtown",
		Date:      "2026-09-01",
		Tables:    models.StringList{"T1"},
		Guests:    2,
	}
	require.NoError(t, st.CreateReservation(context.Background(), res))
	return res
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// NewJSONContext marshals payload and creates an Echo context for it.
func NewJSONContext(t *testing.T, e *echo.Echo, method, path string, payload any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return NewEchoContext(e, method, path, bytes.NewReader(data))
}

// FakeMailer records verification codes instead of sending them.
type FakeMailer struct {
	mu    sync.Mutex
	Err   error
	Sends []FakeSend
}

// FakeSend is one recorded delivery.
type FakeSend struct {
	To   string
	Code string
}

func (f *FakeMailer) SendVerificationCode(_ context.Context, to, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Sends = append(f.Sends, FakeSend{To: to, Code: code})
	return nil
}

// LastCode returns the most recently recorded code for an address.
func (f *FakeMailer) LastCode(to string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.Sends) - 1; i >= 0; i-- {
		if f.Sends[i].To == to {
			return f.Sends[i].Code
		}
	}
	return ""
}
