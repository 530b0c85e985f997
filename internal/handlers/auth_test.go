// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asiancafe/backend/internal/handlers"
	"github.com/asiancafe/backend/internal/services/session"
	"github.com/asiancafe/backend/internal/testutil"
)

func register(t *testing.T, f *fixture, name, email, password string) {
	t.Helper()
	c, rec := testutil.NewJSONContext(t, f.e, http.MethodPost, "/register",
		handlers.RegisterRequest{Name: name, Email: email, Password: password})
	require.NoError(t, f.h.Register(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func verify(t *testing.T, f *fixture, email string) {
	t.Helper()
	code := f.mailer.LastCode(email)
	require.NotEmpty(t, code)

	c, rec := testutil.NewJSONContext(t, f.e, http.MethodPost, "/verify-email",
		handlers.VerifyEmailRequest{Email: email, Code: code})
	require.NoError(t, f.h.VerifyEmail(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRegister(t *testing.T) {
	f := newFixture(t, nil)

	c, rec := testutil.NewJSONContext(t, f.e, http.MethodPost, "/register",
		handlers.RegisterRequest{Name: "Mia", Email: "mia@example.com", Password: "secret123"})
	require.NoError(t, f.h.Register(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User created. Please confirm your email.", decodeJSON(t, rec)["message"])
	assert.NotEmpty(t, f.mailer.LastCode("mia@example.com"))
}

func TestRegister_BadRequest(t *testing.T) {
	f := newFixture(t, nil)

	c, rec := testutil.NewJSONContext(t, f.e, http.MethodPost, "/register",
		handlers.RegisterRequest{Name: "Mia", Email: "not-an-email", Password: "secret123"})
	require.NoError(t, f.h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_Conflict(t *testing.T) {
	f := newFixture(t, nil)
	register(t, f, "Mia", "mia@example.com", "secret123")

	c, rec := testutil.NewJSONContext(t, f.e, http.MethodPost, "/register",
		handlers.RegisterRequest{Name: "Impostor", Email: "mia@example.com", Password: "other456"})
	require.NoError(t, f.h.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestVerifyEmail(t *testing.T) {
	f := newFixture(t, nil)
	register(t, f, "Mia", "mia@example.com", "secret123")

	code := f.mailer.LastCode("mia@example.com")
	c, rec := testutil.NewJSONContext(t, f.e, http.MethodPost, "/verify-email",
		handlers.VerifyEmailRequest{Email: "mia@example.com", Code: code})
	require.NoError(t, f.h.VerifyEmail(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Email confirmed", decodeJSON(t, rec)["message"])
}

func TestVerifyEmail_WrongCode(t *testing.T) {
	f := newFixture(t, nil)
	register(t, f, "Mia", "mia@example.com", "secret123")

	c, rec := testutil.NewJSONContext(t, f.e, http.MethodPost, "/verify-email",
		handlers.VerifyEmailRequest{Email: "mia@example.com", Code: "000000"})
	require.NoError(t, f.h.VerifyEmail(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid code", decodeJSON(t, rec)["error"])
}

func TestLoginEmail(t *testing.T) {
	f := newFixture(t, nil)
	register(t, f, "Mia", "mia@example.com", "secret123")
	verify(t, f, "mia@example.com")

	c, rec := testutil.NewJSONContext(t, f.e, http.MethodPost, "/login/email",
		handlers.LoginRequest{Email: "mia@example.com", Password: "secret123"})
	require.NoError(t, f.h.LoginEmail(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, "Logged in", body["message"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "mia@example.com", user["email"])

	// The response carries a decodable session cookie.
	res := rec.Result()
	defer res.Body.Close()
	req := &http.Request{Header: http.Header{}}
	for _, cookie := range res.Cookies() {
		req.AddCookie(cookie)
	}
	identity := f.sessions.Get(req)
	require.NotNil(t, identity)
	assert.Equal(t, "mia@example.com", identity.Email)
}

func TestLoginEmail_Failures(t *testing.T) {
	f := newFixture(t, nil)
	register(t, f, "Pending", "pending@example.com", "secret123")
	register(t, f, "Mia", "mia@example.com", "secret123")
	verify(t, f, "mia@example.com")

	tests := []struct {
		name     string
		email    string
		password string
		wantCode int
	}{
		{"unknown user", "nobody@example.com", "secret123", http.StatusNotFound},
		{"unverified user", "pending@example.com", "secret123", http.StatusForbidden},
		{"wrong password", "mia@example.com", "wrong", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := testutil.NewJSONContext(t, f.e, http.MethodPost, "/login/email",
				handlers.LoginRequest{Email: tt.email, Password: tt.password})
			require.NoError(t, f.h.LoginEmail(c))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestAuthUser(t *testing.T) {
	f := newFixture(t, nil)

	// Without a session.
	c, rec := testutil.NewEchoContext(f.e, http.MethodGet, "/auth/user", nil)
	require.NoError(t, f.h.AuthUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeJSON(t, rec)["authenticated"])

	// With a session.
	cookie := f.login(t, session.Identity{ID: 7, Name: "Mia", Email: "mia@example.com"})
	c, rec = testutil.NewEchoContext(f.e, http.MethodGet, "/auth/user", nil)
	c.Request().AddCookie(cookie)
	require.NoError(t, f.h.AuthUser(c))

	body := decodeJSON(t, rec)
	assert.Equal(t, true, body["authenticated"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "mia@example.com", user["email"])
}

func TestLogout(t *testing.T) {
	f := newFixture(t, nil)

	cookie := f.login(t, session.Identity{ID: 7, Email: "mia@example.com"})
	c, rec := testutil.NewEchoContext(f.e, http.MethodPost, "/logout", nil)
	c.Request().AddCookie(cookie)
	require.NoError(t, f.h.Logout(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	res := rec.Result()
	defer res.Body.Close()
	cookies := res.Cookies()
	require.NotEmpty(t, cookies)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
