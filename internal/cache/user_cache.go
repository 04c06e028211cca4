// Package cache holds the redis-backed user snapshot cache that lets the
// auth middleware skip a database read on most requests.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"goit/contacts-api/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// UserTTL is how long a cached snapshot may serve requests. Sets reset the
// TTL, reads don't extend it. User mutations do not invalidate entries, so a
// snapshot can be up to this much behind the database.
const UserTTL = 300 * time.Second

type UserCache struct {
	client *redis.Client
}

func NewUserCache(client *redis.Client) *UserCache {
	return &UserCache{client: client}
}

// NewRedisClient builds a client from the loaded config and pings it once so
// a bad address fails at startup instead of on the first request.
func NewRedisClient(ctx context.Context) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     viper.GetString("redis.addr"),
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

// Get returns the cached snapshot for email, or ok=false on a miss. Any
// redis failure other than a miss is returned as-is.
func (c *UserCache) Get(ctx context.Context, email string) (*model.User, bool, error) {
	raw, err := c.client.Get(ctx, key(email)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}

		return nil, false, err
	}

	var user model.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, false, err
	}

	return &user, true, nil
}

// Set stores the user snapshot under its email for UserTTL. Best effort: it
// is not coordinated with the database write that produced the snapshot.
func (c *UserCache) Set(ctx context.Context, user *model.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key(user.Email), raw, UserTTL).Err()
}

func key(email string) string {
	return "user:" + email
}
