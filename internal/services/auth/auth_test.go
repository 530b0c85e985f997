// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

package auth_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asiancafe/backend/internal/services/auth"
	"github.com/asiancafe/backend/internal/services/google"
	"github.com/asiancafe/backend/internal/testutil"
)

var sixDigits = regexp.MustCompile(`^[1-9]\d{5}$`)

func TestRegister(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	mailer := &testutil.FakeMailer{}
	service := auth.NewService(repo, mailer)
	ctx := context.Background()

	user, err := service.Register(ctx, "Mia", "mia@example.com", "secret123")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.False(t, user.Verified)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	code := mailer.LastCode("mia@example.com")
	assert.Regexp(t, sixDigits, code)

	count, err := repo.CountEmailCodes(ctx, "mia@example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestRegister_Validation(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	service := auth.NewService(repo, nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{"missing name", "", "mia@example.com", "secret123", auth.ErrMissingFields},
		{"missing email", "Mia", "", "secret123", auth.ErrMissingFields},
		{"missing password", "Mia", "mia@example.com", "", auth.ErrMissingFields},
		{"malformed email", "Mia", "not-an-email", "secret123", auth.ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(ctx, tt.userName, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	service := auth.NewService(repo, nil)
	ctx := context.Background()

	_, err := service.Register(ctx, "Mia", "mia@example.com", "secret123")
	require.NoError(t, err)

	_, err = service.Register(ctx, "Impostor", "mia@example.com", "other456")
	assert.ErrorIs(t, err, auth.ErrUserExists)
}

func TestRegister_MailFailureDoesNotRollBack(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	mailer := &testutil.FakeMailer{Err: errors.New("smtp down")}
	service := auth.NewService(repo, mailer)
	ctx := context.Background()

	user, err := service.Register(ctx, "Mia", "mia@example.com", "secret123")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	// The code was still stored; a later delivery retry can use it.
	code, err := repo.LatestEmailCode(ctx, "mia@example.com")
	require.NoError(t, err)
	assert.Regexp(t, sixDigits, code.Code)
}

func TestVerifyEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	mailer := &testutil.FakeMailer{}
	service := auth.NewService(repo, mailer)
	ctx := context.Background()

	_, err := service.Register(ctx, "Mia", "mia@example.com", "secret123")
	require.NoError(t, err)
	code := mailer.LastCode("mia@example.com")

	require.NoError(t, service.VerifyEmail(ctx, "mia@example.com", code))

	user, err := repo.GetUserByEmail(ctx, "mia@example.com")
	require.NoError(t, err)
	assert.True(t, user.Verified)
}

func TestVerifyEmail_WrongCode(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	mailer := &testutil.FakeMailer{}
	service := auth.NewService(repo, mailer)
	ctx := context.Background()

	_, err := service.Register(ctx, "Mia", "mia@example.com", "secret123")
	require.NoError(t, err)

	assert.ErrorIs(t, service.VerifyEmail(ctx, "mia@example.com", "000000"), auth.ErrInvalidCode)
	assert.ErrorIs(t, service.VerifyEmail(ctx, "mia@example.com", ""), auth.ErrInvalidCode)

	user, err := repo.GetUserByEmail(ctx, "mia@example.com")
	require.NoError(t, err)
	assert.False(t, user.Verified)
}

func TestVerifyEmail_NoCodeIssued(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	service := auth.NewService(repo, nil)

	err := service.VerifyEmail(context.Background(), "nobody@example.com", "123456")
	assert.ErrorIs(t, err, auth.ErrInvalidCode)
}

func TestVerifyEmail_OnlyLatestCodeCounts(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	service := auth.NewService(repo, nil)
	ctx := context.Background()

	testutil.NewTestUser(t, repo, "Mia", "mia@example.com", "secret123")

	first, err := service.IssueCode(ctx, "mia@example.com")
	require.NoError(t, err)
	second, err := service.IssueCode(ctx, "mia@example.com")
	require.NoError(t, err)

	if first != second {
		assert.ErrorIs(t, service.VerifyEmail(ctx, "mia@example.com", first), auth.ErrInvalidCode)
	}
	assert.NoError(t, service.VerifyEmail(ctx, "mia@example.com", second))
}

func TestLogin(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	service := auth.NewService(repo, nil)
	ctx := context.Background()

	testutil.NewVerifiedUser(t, repo, "Mia", "mia@example.com", "secret123")

	user, err := service.Login(ctx, "mia@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "mia@example.com", user.Email)
}

func TestLogin_Failures(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	service := auth.NewService(repo, nil)
	ctx := context.Background()

	testutil.NewTestUser(t, repo, "Pending", "pending@example.com", "secret123")
	testutil.NewVerifiedUser(t, repo, "Mia", "mia@example.com", "secret123")

	federated := &google.Profile{ID: "g-1", Email: "fed@example.com", Name: "Fed"}
	_, err := service.FederatedLogin(ctx, federated)
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"unknown user", "nobody@example.com", "secret123", auth.ErrUserNotFound},
		{"unverified user", "pending@example.com", "secret123", auth.ErrUnverified},
		{"wrong password", "mia@example.com", "wrong", auth.ErrInvalidPassword},
		{"passwordless federated account", "fed@example.com", "anything", auth.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFederatedLogin_ProvisionsNewUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	service := auth.NewService(repo, nil)
	ctx := context.Background()

	profile := &google.Profile{ID: "g-42", Email: "new@example.com", Name: "New User"}
	user, err := service.FederatedLogin(ctx, profile)
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.True(t, user.Verified)
	assert.Empty(t, user.PasswordHash)

	stored, err := repo.GetUserByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "g-42", stored.GoogleID)
	assert.True(t, stored.Verified)
}

func TestFederatedLogin_BindsExistingUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	service := auth.NewService(repo, nil)
	ctx := context.Background()

	// Unverified password account; the provider has proven the address.
	local := testutil.NewTestUser(t, repo, "Mia", "mia@example.com", "secret123")

	profile := &google.Profile{ID: "g-7", Email: "mia@example.com", Name: "Mia G"}
	user, err := service.FederatedLogin(ctx, profile)
	require.NoError(t, err)

	assert.Equal(t, local.ID, user.ID)
	assert.True(t, user.Verified)
	assert.Equal(t, "g-7", user.GoogleID)

	// The local password still works afterwards.
	_, err = service.Login(ctx, "mia@example.com", "secret123")
	assert.NoError(t, err)
}
