package auth

import (
	"context"

	"goit/contacts-api/internal/cache"
	"goit/contacts-api/internal/model"
	"goit/contacts-api/internal/store"

	"go.uber.org/zap"
)

// UserResolver answers "who is making this request" for protected endpoints.
// It verifies the bearer token and resolves the subject through the cache,
// falling back to the database on a miss.
type UserResolver struct {
	tokens *TokenManager
	cache  *cache.UserCache
	users  *store.UserStore
}

func NewUserResolver(tokens *TokenManager, userCache *cache.UserCache, users *store.UserStore) *UserResolver {
	return &UserResolver{
		tokens: tokens,
		cache:  userCache,
		users:  users,
	}
}

// Resolve returns the authenticated user behind rawToken. Invalid tokens,
// wrong scopes, missing subjects and unknown users all come back as
// ErrUnauthorized so the response never reveals which check failed. Cache
// and database failures are passed through untouched.
func (r *UserResolver) Resolve(ctx context.Context, rawToken string) (*model.User, error) {
	claims, err := r.tokens.VerifyToken(rawToken, ScopeAccess)
	if err != nil {
		return nil, ErrUnauthorized
	}

	email := claims.Subject
	if email == "" {
		return nil, ErrUnauthorized
	}

	user, hit, err := r.cache.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if hit {
		return user, nil
	}

	user, err = r.users.ByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}

	// Concurrent misses for the same key may race here; both write the
	// same snapshot, so last write wins and nothing is lost.
	if err := r.cache.Set(ctx, user); err != nil {
		return nil, err
	}

	zap.L().Debug("User resolved from database", zap.String("email", email))

	return user, nil
}
