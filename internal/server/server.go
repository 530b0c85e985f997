// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

// Package server wires configuration, storage, services and routes into
// a running HTTP process.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"

	"github.com/asiancafe/backend/internal/config"
	"github.com/asiancafe/backend/internal/database"
	"github.com/asiancafe/backend/internal/handlers"
	"github.com/asiancafe/backend/internal/jsonstore"
	"github.com/asiancafe/backend/internal/repository"
	"github.com/asiancafe/backend/internal/services/auth"
	"github.com/asiancafe/backend/internal/services/booking"
	"github.com/asiancafe/backend/internal/services/email"
	"github.com/asiancafe/backend/internal/services/google"
	"github.com/asiancafe/backend/internal/services/session"
	"github.com/asiancafe/backend/internal/store"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
		"store", cfg.Database.Driver,
	)

	st, closeStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			slog.Error("failed to close store", "error", closeErr)
		}
	}()

	// Outgoing mail is optional; without SMTP settings registration still
	// works, codes just stay in the store.
	var mailer email.Sender
	if cfg.SMTP.Host != "" {
		mailer, err = email.NewService(email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			From:     cfg.SMTP.From,
			FromName: cfg.SMTP.FromName,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			TLS:      cfg.SMTP.TLS,
		})
		if err != nil {
			return fmt.Errorf("failed to init mailer: %w", err)
		}
	} else {
		slog.Warn("SMTP not configured, verification mails are disabled")
	}

	sessions, err := session.NewManager(&session.Config{
		CookieName: cfg.Session.CookieName,
		MaxAge:     cfg.Session.MaxAge,
		HashKey:    cfg.Session.HashKey,
		BlockKey:   cfg.Session.BlockKey,
	}, cfg.IsProduction())
	if err != nil {
		return fmt.Errorf("failed to init sessions: %w", err)
	}

	authSvc := auth.NewService(st, mailer)
	bookingSvc := booking.NewService(st)
	provider := google.NewProvider(cfg.Google.ClientID, cfg.Google.ClientSecret)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	setupMiddleware(e, cfg, sessions)

	h := handlers.New(st, authSvc, bookingSvc, sessions, provider, cfg)
	setupRoutes(e, h)

	return startWithGracefulShutdown(ctx, e, cfg)
}

// openStore selects the persistence backend from config.
func openStore(cfg *config.Config) (store.Store, func() error, error) {
	switch cfg.Database.Driver {
	case "json":
		st, err := jsonstore.Open(cfg.Database.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return st, func() error { return nil }, nil
	default:
		db, err := database.Open(cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		return repository.New(db), db.Close, nil
	}
}

func setupRoutes(e *echo.Echo, h *handlers.Handlers) {
	// Static files (menu images)
	e.Static("/static", "static")

	e.GET("/health", h.Health)

	// Auth
	e.POST("/register", h.Register)
	e.POST("/verify-email", h.VerifyEmail)
	e.POST("/login/email", h.LoginEmail)
	e.POST("/logout", h.Logout)
	e.GET("/auth/user", h.AuthUser)
	e.GET("/login/google", h.GoogleLogin)
	e.GET("/authorize", h.Authorize)

	// Menu
	e.GET("/api/menu", h.Menu)

	// Reservations
	e.POST("/book", h.Book)
	e.GET("/bookings", h.Bookings)
	e.GET("/search_booking", h.SearchBooking)
	e.DELETE("/clear_bookings", h.ClearBookings)
}

func startWithGracefulShutdown(ctx context.Context, e *echo.Echo, cfg *config.Config) error {
	errChan := make(chan error, 1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		slog.Info("Server running", "url", cfg.Server.BaseURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		slog.Info("shutting down server")
	case <-quit:
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
