package store

import (
	"context"
	"testing"
	"time"

	"goit/contacts-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore_ByEmail(t *testing.T) {
	db := newTestDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	created := createTestUser(t, db, "deadpool", "deadpool@example.com")

	got, err := s.ByEmail(ctx, created.Email)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "deadpool", got.Username)

	missing, err := s.ByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserStore_Exists(t *testing.T) {
	db := newTestDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	createTestUser(t, db, "deadpool", "deadpool@example.com")

	found, err := s.Exists(ctx, "deadpool@example.com")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = s.Exists(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUserStore_UpdateRefreshToken(t *testing.T) {
	db := newTestDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	user := createTestUser(t, db, "deadpool", "deadpool@example.com")

	token := "some-refresh-token"
	require.NoError(t, s.UpdateRefreshToken(ctx, user.ID, &token))

	got, err := s.ByEmail(ctx, user.Email)
	require.NoError(t, err)
	require.NotNil(t, got.RefreshToken)
	assert.Equal(t, token, *got.RefreshToken)

	// Clearing the token revokes the session server-side
	require.NoError(t, s.UpdateRefreshToken(ctx, user.ID, nil))

	got, err = s.ByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Nil(t, got.RefreshToken)
}

func TestUserStore_Confirm(t *testing.T) {
	db := newTestDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	deadline := time.Now().Add(time.Hour)
	user := &model.User{
		Username:     "fresh",
		Email:        "fresh@example.com",
		PasswordHash: "x",
		ExpiresAt:    &deadline,
	}
	require.NoError(t, db.Create(user).Error)

	require.NoError(t, s.Confirm(ctx, user.Email))

	got, err := s.ByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.True(t, got.Confirmed)
	assert.Nil(t, got.ExpiresAt, "confirming should remove the cleanup deadline")
}

func TestUserStore_UpdateAvatar(t *testing.T) {
	db := newTestDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	user := createTestUser(t, db, "deadpool", "deadpool@example.com")

	got, err := s.UpdateAvatar(ctx, user.Email, "https://cdn.example.com/avatars/abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "https://cdn.example.com/avatars/abc", got.Avatar)
}

func TestUserStore_DeleteExpired(t *testing.T) {
	db := newTestDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	expired := &model.User{Username: "a", Email: "a@example.com", PasswordHash: "x", ExpiresAt: &past}
	pending := &model.User{Username: "b", Email: "b@example.com", PasswordHash: "x", ExpiresAt: &future}
	confirmed := createTestUser(t, db, "c", "c@example.com")

	require.NoError(t, db.Create(expired).Error)
	require.NoError(t, db.Create(pending).Error)

	n, err := s.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := s.ByEmail(ctx, expired.Email)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.ByEmail(ctx, pending.Email)
	require.NoError(t, err)
	assert.NotNil(t, got)

	got, err = s.ByEmail(ctx, confirmed.Email)
	require.NoError(t, err)
	assert.NotNil(t, got)
}
