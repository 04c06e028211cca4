package store

import (
	"fmt"
	"strings"
	"testing"

	"goit/contacts-api/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory database per test. The shared cache
// keeps it alive across the pooled connections gorm opens.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)))
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(model.User{}, model.Contact{}))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, email string) *model.User {
	t.Helper()

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$12$notarealhash",
		Confirmed:    true,
		Role:         model.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)

	return user
}
