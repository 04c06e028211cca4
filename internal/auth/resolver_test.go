package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"goit/contacts-api/internal/cache"
	"goit/contacts-api/internal/model"
	"goit/contacts-api/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type resolverFixture struct {
	resolver *UserResolver
	tokens   *TokenManager
	users    *store.UserStore
	db       *gorm.DB
	redis    *miniredis.Miniredis
}

func newResolverFixture(t *testing.T) *resolverFixture {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.User{}, model.Contact{}))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	tokens, err := NewTokenManager("super-secret", "HS256")
	require.NoError(t, err)

	users := store.NewUserStore(db)

	return &resolverFixture{
		resolver: NewUserResolver(tokens, cache.NewUserCache(client), users),
		tokens:   tokens,
		users:    users,
		db:       db,
		redis:    mr,
	}
}

func (f *resolverFixture) createUser(t *testing.T, email string) *model.User {
	t.Helper()

	user := &model.User{
		Username:     strings.SplitN(email, "@", 2)[0],
		Email:        email,
		PasswordHash: "x",
		Confirmed:    true,
		Role:         model.RoleUser,
	}
	require.NoError(t, f.db.Create(user).Error)

	return user
}

func TestResolve_CacheMissThenHit(t *testing.T) {
	f := newResolverFixture(t)
	ctx := context.Background()

	created := f.createUser(t, "deadpool@example.com")

	tok, err := f.tokens.CreateAccessToken(created.Email, 0)
	require.NoError(t, err)

	// First resolution misses the cache and reads the database
	first, err := f.resolver.Resolve(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, created.ID, first.ID)
	assert.True(t, f.redis.Exists("user:"+created.Email), "miss should populate the cache")

	// Mutate the row behind the cache's back. A second resolution inside
	// the TTL window must serve the old snapshot without touching the
	// database, that staleness is the documented contract.
	require.NoError(t, f.db.Model(model.User{}).
		Where("id = ?", created.ID).
		Update("username", "renamed").Error)

	second, err := f.resolver.Resolve(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, first.Username, second.Username, "cached snapshot expected")

	// Once the TTL lapses the fresh row comes back
	f.redis.FastForward(cache.UserTTL + 1)

	third, err := f.resolver.Resolve(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "renamed", third.Username)
}

func TestResolve_UnknownUser(t *testing.T) {
	f := newResolverFixture(t)

	tok, err := f.tokens.CreateAccessToken("ghost@example.com", 0)
	require.NoError(t, err)

	_, err = f.resolver.Resolve(context.Background(), tok)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestResolve_WrongScope(t *testing.T) {
	f := newResolverFixture(t)

	created := f.createUser(t, "deadpool@example.com")

	tok, err := f.tokens.CreateRefreshToken(created.Email)
	require.NoError(t, err)

	_, err = f.resolver.Resolve(context.Background(), tok)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestResolve_InvalidToken(t *testing.T) {
	f := newResolverFixture(t)

	_, err := f.resolver.Resolve(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestResolve_MissingSubject(t *testing.T) {
	f := newResolverFixture(t)

	tok, err := f.tokens.CreateAccessToken("", 0)
	require.NoError(t, err)

	_, err = f.resolver.Resolve(context.Background(), tok)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestResolve_CacheDown(t *testing.T) {
	f := newResolverFixture(t)

	created := f.createUser(t, "deadpool@example.com")

	tok, err := f.tokens.CreateAccessToken(created.Email, 0)
	require.NoError(t, err)

	// A dead cache is a hard failure, not a silent fallback to the store
	f.redis.Close()

	_, err = f.resolver.Resolve(context.Background(), tok)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}
