package db

import (
	"github.com/pkg/errors"

	"github.com/linkstash/linkstash/internal/profile"
	"github.com/linkstash/linkstash/store"
	"github.com/linkstash/linkstash/store/db/postgres"
	"github.com/linkstash/linkstash/store/db/sqlite"
)

// NewDBDriver creates new db driver based on profile.
//
// SQLite is the zero-setup default; PostgreSQL is for installations that
// already run one. Both implement the same store.Driver capability set, so
// they are interchangeable.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	default:
		return nil, errors.New("unknown db driver: only 'postgres' and 'sqlite' are supported")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
