// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/asiancafe/backend/internal/services/google"
	"github.com/asiancafe/backend/internal/services/session"
)

const stateCookieName = "_oauth_state"

// GoogleLogin starts the Google OAuth redirect flow. A short-lived state
// cookie ties the callback to this browser.
func (h *Handlers) GoogleLogin(c echo.Context) error {
	if h.google == nil || !h.google.Enabled() {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "google login is not configured"})
	}

	state := google.GenerateState()
	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusFound, h.google.AuthURL(state, h.callbackURL()))
}

// Authorize is the OAuth callback: it checks the state, exchanges the
// code for a profile, applies the identity-merge policy, sets the session
// and sends the browser back to the front end.
func (h *Handlers) Authorize(c echo.Context) error {
	if errMsg := c.QueryParam("error"); errMsg != "" {
		slog.Warn("oauth provider error", "error", errMsg)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "provider error: " + errMsg})
	}

	stateCookie, err := c.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != c.QueryParam("state") {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid oauth state"})
	}

	code := c.QueryParam("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing authorization code"})
	}

	profile, err := h.google.Identify(c.Request().Context(), code, h.callbackURL())
	if err != nil {
		slog.Error("oauth exchange failed", "error", err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "authentication with provider failed"})
	}

	user, err := h.auth.FederatedLogin(c.Request().Context(), profile)
	if err != nil {
		slog.Error("federated login failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	identity := session.Identity{ID: user.ID, Name: user.Name, Email: user.Email}
	cookie, err := h.sessions.Issue(identity)
	if err != nil {
		slog.Error("session issue failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	c.SetCookie(cookie)

	// Drop the one-shot state cookie.
	c.SetCookie(&http.Cookie{Name: stateCookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

	return c.Redirect(http.StatusFound, h.cfg.CORS.FrontendURL)
}

func (h *Handlers) callbackURL() string {
	return h.cfg.Server.BaseURL + "/authorize"
}
