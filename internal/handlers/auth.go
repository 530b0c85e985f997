// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/asiancafe/backend/internal/services/auth"
	"github.com/asiancafe/backend/internal/services/session"
)

// RegisterRequest is the request body for POST /register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an unverified account and sends a confirmation code.
func (h *Handlers) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	_, err := h.auth.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]string{"message": "User created. Please confirm your email."})
	case errors.Is(err, auth.ErrMissingFields), errors.Is(err, auth.ErrInvalidEmail):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, auth.ErrUserExists):
		return c.JSON(http.StatusConflict, map[string]string{"error": "user already exists"})
	default:
		slog.Error("register failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// VerifyEmailRequest is the request body for POST /verify-email.
type VerifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// VerifyEmail checks the submitted code and marks the user verified.
func (h *Handlers) VerifyEmail(c echo.Context) error {
	var req VerifyEmailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	err := h.auth.VerifyEmail(c.Request().Context(), req.Email, req.Code)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]string{"message": "Email confirmed"})
	case errors.Is(err, auth.ErrInvalidCode):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid code"})
	default:
		slog.Error("verify email failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// LoginRequest is the request body for POST /login/email.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginEmail authenticates a password login and starts a session. Each
// failure mode keeps its own status so the front end can tell them apart.
func (h *Handlers) LoginEmail(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	switch {
	case err == nil:
		// fallthrough to session start below
	case errors.Is(err, auth.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
	case errors.Is(err, auth.ErrUnverified):
		return c.JSON(http.StatusForbidden, map[string]string{"error": "email not verified"})
	case errors.Is(err, auth.ErrInvalidPassword):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid password"})
	default:
		slog.Error("login failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	identity := session.Identity{ID: user.ID, Name: user.Name, Email: user.Email}
	cookie, err := h.sessions.Issue(identity)
	if err != nil {
		slog.Error("session issue failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Logged in",
		"user":    identity,
	})
}

// AuthUser reflects the current session state. It never errors; an
// absent or expired session is simply unauthenticated.
func (h *Handlers) AuthUser(c echo.Context) error {
	identity := h.sessions.Get(c.Request())
	if identity == nil {
		return c.JSON(http.StatusOK, map[string]any{"authenticated": false})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          identity,
	})
}

// Logout invalidates the session in the request's path.
func (h *Handlers) Logout(c echo.Context) error {
	c.SetCookie(h.sessions.Clear())
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}
