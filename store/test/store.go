// Package test provides a store wired to a disposable database for tests.
package test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/linkstash/linkstash/internal/profile"
	"github.com/linkstash/linkstash/store"
	"github.com/linkstash/linkstash/store/db"
)

// getDriverFromEnv returns the driver under test. Defaults to sqlite so the
// suite runs with no external services; set LINKSTASH_TEST_DRIVER=postgres
// and LINKSTASH_TEST_DSN to exercise the postgres driver.
func getDriverFromEnv() string {
	driver := os.Getenv("LINKSTASH_TEST_DRIVER")
	if driver == "" {
		driver = "sqlite"
	}
	return driver
}

func getTestingProfile(t *testing.T) *profile.Profile {
	dir := t.TempDir()
	driver := getDriverFromEnv()
	p := &profile.Profile{
		Mode:    "dev",
		Data:    dir,
		Driver:  driver,
		Version: "test",
	}
	if driver == "sqlite" {
		p.DSN = filepath.Join(dir, fmt.Sprintf("linkstash_%s.db", p.Mode))
	} else {
		p.DSN = os.Getenv("LINKSTASH_TEST_DSN")
		if p.DSN == "" {
			t.Skipf("LINKSTASH_TEST_DSN not set for driver %s", driver)
		}
	}
	return p
}

// NewTestingStore creates a migrated store against a fresh database.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	p := getTestingProfile(t)
	driver, err := db.NewDBDriver(p)
	if err != nil {
		t.Fatalf("failed to create db driver: %v", err)
	}

	st := store.New(driver, p)
	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Logf("failed to close store: %v", err)
		}
	})
	return st
}
