// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/asiancafe/backend/internal/models"
	"github.com/asiancafe/backend/internal/services/google"
	"github.com/asiancafe/backend/internal/store"
)

// FederatedLogin applies the identity-merge policy for a profile the
// provider has already verified: an existing user with the same email has
// the Google subject bound as an alternate credential and is marked
// verified; otherwise a verified, passwordless user is auto-provisioned.
func (s *Service) FederatedLogin(ctx context.Context, profile *google.Profile) (*models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, profile.Email)
	switch {
	case err == nil:
		if user.GoogleID != profile.ID || !user.Verified {
			if err := s.store.BindGoogleID(ctx, profile.Email, profile.ID); err != nil {
				return nil, fmt.Errorf("failed to bind google identity: %w", err)
			}
			user.GoogleID = profile.ID
			user.Verified = true
		}
		slog.Info("federated_login", "user_id", user.ID, "email", user.Email, "provisioned", false)
		return user, nil

	case errors.Is(err, store.ErrNotFound):
		user = &models.User{
			Name:     profile.Name,
			Email:    profile.Email,
			Verified: true,
			GoogleID: profile.ID,
		}
		if err := s.store.CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrDuplicateEmail) {
				// Lost the race against a concurrent first login.
				return s.store.GetUserByEmail(ctx, profile.Email)
			}
			return nil, fmt.Errorf("failed to provision user: %w", err)
		}
		slog.Info("federated_login", "user_id", user.ID, "email", user.Email, "provisioned", true)
		return user, nil

	default:
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
}
