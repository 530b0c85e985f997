// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asiancafe/backend/internal/testutil"
)

func TestVerifyEmail_ExpiredCode(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	testutil.NewTestUser(t, repo, "Mia", "mia@example.com", "secret123")
	ctx := context.Background()

	service := NewService(repo, nil)
	service.codeTTL = time.Millisecond

	code, err := service.IssueCode(ctx, "mia@example.com")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	assert.ErrorIs(t, service.VerifyEmail(ctx, "mia@example.com", code), ErrInvalidCode)

	user, err := repo.GetUserByEmail(ctx, "mia@example.com")
	require.NoError(t, err)
	assert.False(t, user.Verified)
}
