// Package db contains the database connection bootstrap
package db

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"goit/contacts-api/internal/model"
	"goit/contacts-api/pkg/util"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New opens the configured database and runs migrations. With db.url set a
// postgres connection is used, otherwise the app falls back to a local
// SQLite file which is what the tests and local development run on.
func New() (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	if url := viper.GetString("db.url"); url != "" {
		db, err = gorm.Open(postgres.Open(url))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres, %w", err)
		}
	} else {
		// If running in a docker container don't allow the sqlite file to be created.
		// The host should instead mount it using volumes
		if util.IsRunningInDocker() && sqliteMissing("database.db") {
			return nil, errors.New("SQLite database file not mounted, please use docker volumes to mount it to /app/database.db")
		}

		db, err = gorm.Open(sqlite.Open("database.db"))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
		}
	}

	err = db.AutoMigrate(model.User{}, model.Contact{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}

// sqliteMissing reports whether the database file has yet to be created.
// os.Stat wraps its failures in *PathError, so the check goes through
// errors.Is.
func sqliteMissing(path string) bool {
	_, err := os.Stat(path)
	return errors.Is(err, fs.ErrNotExist)
}
