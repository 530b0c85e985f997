// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

// Package handlers maps HTTP requests onto the services layer. The JSON
// shapes and status codes here are contract surface for the front end.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/asiancafe/backend/internal/config"
	"github.com/asiancafe/backend/internal/services/auth"
	"github.com/asiancafe/backend/internal/services/booking"
	"github.com/asiancafe/backend/internal/services/google"
	"github.com/asiancafe/backend/internal/services/session"
	"github.com/asiancafe/backend/internal/store"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	store    store.Store
	auth     *auth.Service
	booking  *booking.Service
	sessions *session.Manager
	google   *google.Provider
	cfg      *config.Config
}

// New creates a new Handlers instance.
func New(st store.Store, authSvc *auth.Service, bookingSvc *booking.Service, sessions *session.Manager, provider *google.Provider, cfg *config.Config) *Handlers {
	return &Handlers{
		store:    st,
		auth:     authSvc,
		booking:  bookingSvc,
		sessions: sessions,
		google:   provider,
		cfg:      cfg,
	}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
