// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

// Package session binds authenticated requests to a signed, time-bounded
// cookie. Expiry is enforced lazily when the cookie is decoded; the
// middleware re-issues the cookie on activity so the lifetime is an idle
// timeout.
package session

import (
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
)

// Identity is the minimal record bound to a session.
type Identity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Manager encodes and decodes session cookies.
type Manager struct {
	sc         *securecookie.SecureCookie
	cookieName string
	maxAge     int
	secure     bool
}

// NewManager creates a session manager. When secure is set (production
// deployments where the API and front end run on different origins) the
// cookie is issued with SameSite=None and the Secure attribute; otherwise
// SameSite=Lax. An empty hash key auto-generates one, which only suits
// development since sessions do not survive a restart.
func NewManager(cfg *Config, secure bool) (*Manager, error) {
	var hashKey []byte
	if cfg.HashKey == "" {
		hashKey = securecookie.GenerateRandomKey(32)
	} else {
		var err error
		hashKey, err = hex.DecodeString(cfg.HashKey)
		if err != nil {
			return nil, fmt.Errorf("invalid session hash key: %w", err)
		}
		if len(hashKey) != 32 {
			return nil, fmt.Errorf("session hash key must be 32 bytes, got %d", len(hashKey))
		}
	}

	var blockKey []byte
	if cfg.BlockKey != "" {
		var err error
		blockKey, err = hex.DecodeString(cfg.BlockKey)
		if err != nil {
			return nil, fmt.Errorf("invalid session block key: %w", err)
		}
		if len(blockKey) != 32 {
			return nil, fmt.Errorf("session block key must be 32 bytes, got %d", len(blockKey))
		}
	}

	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(cfg.MaxAge)

	return &Manager{
		sc:         sc,
		cookieName: cfg.CookieName,
		maxAge:     cfg.MaxAge,
		secure:     secure,
	}, nil
}

// Config carries the session settings. It mirrors the session section of
// the process configuration so the manager does not depend on the config
// package.
type Config struct { //nolint:govet // fieldalignment not critical
	CookieName string
	MaxAge     int // idle lifetime in seconds
	HashKey    string
	BlockKey   string
}

// Issue binds an identity to a fresh signed cookie. Calling it again for
// an existing session renews the idle timeout.
func (m *Manager) Issue(identity Identity) (*http.Cookie, error) {
	value, err := m.sc.Encode(m.cookieName, identity)
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}
	return m.cookie(value, m.maxAge), nil
}

// Get recovers the identity bound to the request's session cookie. A
// missing, tampered or expired cookie yields nil, never an error.
func (m *Manager) Get(r *http.Request) *Identity {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil
	}

	var identity Identity
	if err := m.sc.Decode(m.cookieName, cookie.Value, &identity); err != nil {
		return nil
	}
	return &identity
}

// Clear returns a cookie that removes the session in the request's path.
func (m *Manager) Clear() *http.Cookie {
	return m.cookie("", -1)
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if m.secure {
		// Cross-origin front end needs None, which requires Secure.
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: sameSite,
	}
}
