// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

// Package auth implements registration, email-code verification and
// password login. A user moves unregistered -> unverified -> verified;
// only a correct code check crosses the second edge, and password login
// is refused until it does.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/mail"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/asiancafe/backend/internal/models"
	"github.com/asiancafe/backend/internal/services/email"
	"github.com/asiancafe/backend/internal/store"
)

var (
	ErrMissingFields   = errors.New("name, email and password are required")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrUnverified      = errors.New("email not verified")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidCode     = errors.New("invalid verification code")
)

// CodeTTL is how long an issued verification code stays usable. Enforced
// lazily at check time; stored rows are never deleted.
const CodeTTL = 15 * time.Minute

// dummyHash is used for constant-time login to prevent timing attacks
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)

type Service struct {
	store   store.Store
	mailer  email.Sender
	codeTTL time.Duration
}

func NewService(st store.Store, mailer email.Sender) *Service {
	return &Service{
		store:   st,
		mailer:  mailer,
		codeTTL: CodeTTL,
	}
}

// Register creates an unverified user, issues a verification code and
// attempts delivery. Delivery failure does not roll back registration;
// the only recovery path is requesting a fresh code.
func (s *Service) Register(ctx context.Context, name, address, password string) (*models.User, error) {
	if name == "" || address == "" || password == "" {
		return nil, ErrMissingFields
	}
	if _, err := mail.ParseAddress(address); err != nil {
		return nil, ErrInvalidEmail
	}

	// Pre-check so the caller gets an unambiguous conflict response; the
	// unique index backstops the race between check and insert.
	_, err := s.store.GetUserByEmail(ctx, address)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        address,
		PasswordHash: string(passwordHash),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	code, err := s.IssueCode(ctx, address)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendVerificationCode(ctx, address, code); err != nil {
			// Best-effort delivery; the account exists regardless.
			slog.Warn("verification_mail_failed", "email", address, "error", err)
		}
	}

	slog.Info("register_success", "user_id", user.ID, "email", address)
	return user, nil
}

// IssueCode generates a uniformly random 6-digit code and persists it.
// Codes are not required to be distinct across addresses or issuances.
func (s *Service) IssueCode(ctx context.Context, address string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	code := strconv.FormatInt(n.Int64()+100000, 10)

	if err := s.store.InsertEmailCode(ctx, address, code); err != nil {
		return "", fmt.Errorf("failed to store code: %w", err)
	}
	return code, nil
}

// VerifyEmail checks the submitted code against the most recently issued
// one for the address and, on an exact match within the TTL, marks the
// user verified. Anything else is a wrong code to the caller.
func (s *Service) VerifyEmail(ctx context.Context, address, submitted string) error {
	latest, err := s.store.LatestEmailCode(ctx, address)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCode
		}
		return fmt.Errorf("failed to load code: %w", err)
	}

	if submitted == "" || latest.Code != submitted {
		slog.Warn("verify_failed", "email", address, "reason", "code_mismatch")
		return ErrInvalidCode
	}
	if time.Since(latest.CreatedAt) > s.codeTTL {
		slog.Warn("verify_failed", "email", address, "reason", "code_expired")
		return ErrInvalidCode
	}

	if err := s.store.SetUserVerified(ctx, address); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCode
		}
		return fmt.Errorf("failed to mark verified: %w", err)
	}

	slog.Info("verify_success", "email", address)
	return nil
}

// Login authenticates a password login. Each failure carries its own
// reason: no such user, unverified email, or wrong password.
func (s *Service) Login(ctx context.Context, address, password string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, address)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Constant-time: always perform bcrypt comparison to prevent timing attacks
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			slog.Warn("login_failed", "email", address, "reason", "user_not_found")
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.Verified {
		slog.Warn("login_failed", "email", address, "reason", "unverified")
		return nil, ErrUnverified
	}

	if user.PasswordHash == "" {
		// Federation-only account; there is no password to match.
		slog.Warn("login_failed", "email", address, "reason", "no_password")
		return nil, ErrInvalidPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login_failed", "email", address, "reason", "invalid_password")
		return nil, ErrInvalidPassword
	}

	slog.Info("login_success", "user_id", user.ID, "email", address)
	return user, nil
}
