// Package store provides database access to all raw objects.
package store

import (
	"context"
	"log/slog"

	"github.com/linkstash/linkstash/internal/errdef"
	"github.com/linkstash/linkstash/internal/profile"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
	logger  *slog.Logger
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
		logger:  slog.Default(),
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

// Ping reports whether the backing database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.driver.Ping(ctx); err != nil {
		return errdef.NewBackendUnavailable("database unreachable", err)
	}
	return nil
}

// sweepOrphanTags runs the orphan-tag sweep as a best-effort follow-up to a
// delete. A failed sweep is reported but never fails the parent operation.
func (s *Store) sweepOrphanTags(ctx context.Context) {
	removed, err := s.driver.DeleteOrphanTags(ctx)
	if err != nil {
		s.logger.Warn("orphan tag sweep failed", slog.String("error", err.Error()))
		return
	}
	if removed > 0 {
		s.logger.Debug("removed orphan tags", slog.Int64("count", removed))
	}
}
