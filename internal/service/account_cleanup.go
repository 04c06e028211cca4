package service

import (
	"context"
	"time"

	"goit/contacts-api/internal/store"

	"go.uber.org/zap"
)

// AccountCleanup periodically deletes accounts that were registered but
// never confirmed before their deadline. Their contacts go with them through
// the FK cascade.
func AccountCleanup(t time.Duration, users *store.UserStore) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Account cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			n, err := users.DeleteExpired(context.Background(), time.Now())
			if err != nil {
				zap.L().Error("Failed to clean up expired accounts", zap.Error(err))
				continue
			}

			if n > 0 {
				zap.L().Info("Cleaned up unconfirmed accounts", zap.Int64("count", n))
			}
		}
	}()
}
