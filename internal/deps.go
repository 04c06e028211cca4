package internal

import (
	"goit/contacts-api/internal/auth"
	"goit/contacts-api/internal/cache"
	"goit/contacts-api/internal/storage"
	"goit/contacts-api/internal/store"

	"gorm.io/gorm"
)

type Deps struct {
	DB       *gorm.DB
	Users    *store.UserStore
	Contacts *store.ContactStore
	Cache    *cache.UserCache
	Tokens   *auth.TokenManager
	S3       *storage.S3Client
}
