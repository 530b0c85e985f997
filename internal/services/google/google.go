// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

// Package google exchanges a Google OAuth authorization code for a
// verified profile. The provider is treated as an opaque external
// service; only the minimal {id, email, name} identity crosses the
// boundary.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNoEmail = errors.New("email not provided by Google")

// Endpoints are the provider URLs. Tests point them at a local server.
type Endpoints struct {
	Auth     string
	Token    string
	UserInfo string
}

// DefaultEndpoints returns Google's production OAuth endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Auth:     "https://accounts.google.com/o/oauth2/v2/auth",
		Token:    "https://oauth2.googleapis.com/token",
		UserInfo: "https://www.googleapis.com/oauth2/v2/userinfo",
	}
}

// Profile is the minimal identity returned by the provider. The email is
// already verified by Google; no local verification code applies.
type Profile struct {
	ID    string
	Email string
	Name  string
}

// Provider implements the authorization-code flow against Google.
type Provider struct {
	ClientID     string
	ClientSecret string
	Endpoints    Endpoints
	HTTPClient   *http.Client
}

// NewProvider creates a provider with production endpoints and a timeout
// client.
func NewProvider(clientID, clientSecret string) *Provider {
	return &Provider{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoints:    DefaultEndpoints(),
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Enabled reports whether credentials are configured.
func (p *Provider) Enabled() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

// GenerateState returns a fresh CSRF state token for the redirect flow.
func GenerateState() string {
	return uuid.NewString()
}

// AuthURL builds the consent-screen URL the client is redirected to.
func (p *Provider) AuthURL(state, redirectURL string) string {
	params := url.Values{}
	params.Set("client_id", p.ClientID)
	params.Set("redirect_uri", redirectURL)
	params.Set("response_type", "code")
	params.Set("scope", "openid email profile")
	params.Set("state", state)

	return p.Endpoints.Auth + "?" + params.Encode()
}

// ExchangeCode trades an authorization code for an access token.
func (p *Provider) ExchangeCode(ctx context.Context, code, redirectURL string) (string, error) {
	data := url.Values{}
	data.Set("code", code)
	data.Set("client_id", p.ClientID)
	data.Set("client_secret", p.ClientSecret)
	data.Set("redirect_uri", redirectURL)
	data.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoints.Token, strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token exchange failed: %s", string(body))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", err
	}
	return tokenResp.AccessToken, nil
}

// UserInfo fetches the minimal profile for an access token.
func (p *Provider) UserInfo(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.Endpoints.UserInfo, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to get user info: %s", string(body))
	}

	var data struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}

	if data.Email == "" {
		return nil, ErrNoEmail
	}

	return &Profile{ID: data.ID, Email: data.Email, Name: data.Name}, nil
}

// Identify runs the full code-for-profile exchange.
func (p *Provider) Identify(ctx context.Context, code, redirectURL string) (*Profile, error) {
	token, err := p.ExchangeCode(ctx, code, redirectURL)
	if err != nil {
		return nil, err
	}
	return p.UserInfo(ctx, token)
}
