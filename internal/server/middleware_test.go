// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asiancafe/backend/internal/config"
	"github.com/asiancafe/backend/internal/services/session"
)

func newSessions(t *testing.T) *session.Manager {
	t.Helper()
	m, err := session.NewManager(&session.Config{CookieName: "_session", MaxAge: 1200}, false)
	require.NoError(t, err)
	return m
}

func TestSessionRenewal(t *testing.T) {
	sessions := newSessions(t)

	e := echo.New()
	e.Use(sessionRenewal(sessions))
	e.GET("/", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	t.Run("authenticated request gets a fresh cookie", func(t *testing.T) {
		cookie, err := sessions.Issue(session.Identity{ID: 7, Email: "mia@example.com"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		res := rec.Result()
		defer res.Body.Close()
		require.NotEmpty(t, res.Cookies())
		assert.Equal(t, "_session", res.Cookies()[0].Name)
		assert.Equal(t, 1200, res.Cookies()[0].MaxAge)
	})

	t.Run("anonymous request gets no cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		res := rec.Result()
		defer res.Body.Close()
		assert.Empty(t, res.Cookies())
	})

	t.Run("tampered cookie is ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "_session", Value: "garbage"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		res := rec.Result()
		defer res.Body.Close()
		assert.Empty(t, res.Cookies())
	})
}

func TestCORSMiddleware(t *testing.T) {
	cfg := &config.Config{
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	e := echo.New()
	e.Use(corsMiddleware(cfg))
	e.GET("/", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	t.Run("allowed origin is echoed with credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:3000", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
		assert.Equal(t, "true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))
	})

	t.Run("unknown origin gets no CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderOrigin, "http://evil.example.com")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})
}
