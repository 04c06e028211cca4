// Package store wraps all database access behind small per-entity stores so
// handlers and the auth flow stay free of query details.
package store

import (
	"context"
	"errors"
	"time"

	"goit/contacts-api/internal/model"

	"gorm.io/gorm"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// ByEmail returns the user with the given email, or nil when no such user
// exists.
func (s *UserStore) ByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

// Exists reports whether an account with the given email is already
// registered.
func (s *UserStore) Exists(ctx context.Context, email string) (bool, error) {
	var found bool

	err := s.db.WithContext(ctx).
		Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ?", email).
		Find(&found).
		Error

	return found, err
}

func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

// UpdateRefreshToken overwrites the stored refresh token. A nil token clears
// it, which revokes the session server-side.
func (s *UserStore) UpdateRefreshToken(ctx context.Context, userID uint, token *string) error {
	return s.db.WithContext(ctx).
		Model(model.User{}).
		Where("id = ?", userID).
		Update("refresh_token", token).
		Error
}

// Confirm marks the account as verified and removes the cleanup deadline.
func (s *UserStore) Confirm(ctx context.Context, email string) error {
	return s.db.WithContext(ctx).
		Model(model.User{}).
		Where("email = ?", email).
		Updates(map[string]any{
			"confirmed":  true,
			"expires_at": nil,
		}).
		Error
}

// UpdateAvatar stores the new avatar URL and returns the updated user.
func (s *UserStore) UpdateAvatar(ctx context.Context, email, url string) (*model.User, error) {
	err := s.db.WithContext(ctx).
		Model(model.User{}).
		Where("email = ?", email).
		Update("avatar", url).
		Error
	if err != nil {
		return nil, err
	}

	return s.ByEmail(ctx, email)
}

// DeleteExpired removes accounts that never confirmed before their deadline.
// Contacts go with them through the FK cascade. Returns the number of
// deleted accounts.
func (s *UserStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("confirmed = ? AND expires_at IS NOT NULL AND expires_at < ?", false, now).
		Delete(&model.User{})

	return res.RowsAffected, res.Error
}
