package store

import (
	"context"
	"strings"

	"github.com/linkstash/linkstash/internal/errdef"
)

type Bookmark struct {
	// ID is the system generated unique identifier for the bookmark.
	ID int32

	// Standard fields
	CreatedTs int64

	// Domain specific fields
	URL string
	// URLHash is the SHA-256 fingerprint of the raw URL string.
	// Unique: at most one row per distinct URL text.
	URLHash string
}

// DisplayURL returns the URL with any ?query suffix stripped.
// Derived on read, never persisted.
func (b *Bookmark) DisplayURL() string {
	if i := strings.IndexByte(b.URL, '?'); i >= 0 {
		return b.URL[:i]
	}
	return b.URL
}

type FindBookmark struct {
	ID      *int32
	URLHash *string
	Limit   *int
}

type DeleteBookmark struct {
	ID      *int32
	URLHash *string
}

// CreateBookmark inserts a bookmark for rawURL, deduplicated by fingerprint.
// When a row for the same URL text already exists its id is returned
// unchanged and existed is true. Safe under concurrent callers: the race is
// resolved by the unique constraint on url_hash, with a re-fetch when the
// insert loses.
func (s *Store) CreateBookmark(ctx context.Context, rawURL string) (bookmark *Bookmark, existed bool, err error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, false, errdef.NewInvalidArgument("url is empty")
	}

	urlHash := Fingerprint(rawURL)
	created, err := s.driver.CreateBookmark(ctx, &Bookmark{
		URL:     rawURL,
		URLHash: urlHash,
	})
	if err != nil {
		return nil, false, err
	}
	if created != nil {
		return created, false, nil
	}

	// Lost the insert to an existing row (or a concurrent insert): fetch it.
	list, err := s.driver.ListBookmarks(ctx, &FindBookmark{URLHash: &urlHash})
	if err != nil {
		return nil, false, err
	}
	if len(list) == 0 {
		// The existing row vanished between insert and fetch. Treat the same
		// as a lost race and retry the insert once.
		created, err = s.driver.CreateBookmark(ctx, &Bookmark{URL: rawURL, URLHash: urlHash})
		if err != nil {
			return nil, false, err
		}
		if created == nil {
			return nil, false, errdef.NewConflict("bookmark insert raced and could not be resolved")
		}
		return created, false, nil
	}
	return list[0], true, nil
}

// ListBookmarks returns bookmarks newest-first.
func (s *Store) ListBookmarks(ctx context.Context, find *FindBookmark) ([]*Bookmark, error) {
	return s.driver.ListBookmarks(ctx, find)
}

// GetBookmark returns the bookmark matching find, or a NOT_FOUND error.
func (s *Store) GetBookmark(ctx context.Context, find *FindBookmark) (*Bookmark, error) {
	list, err := s.driver.ListBookmarks(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errdef.NewNotFound("bookmark not found")
	}
	return list[0], nil
}

// DeleteBookmarkByID removes a bookmark and, via cascade, its junction rows.
// Deleting a missing row is a no-op. Orphaned tags are swept best-effort.
func (s *Store) DeleteBookmarkByID(ctx context.Context, id int32) error {
	if err := s.driver.DeleteBookmark(ctx, &DeleteBookmark{ID: &id}); err != nil {
		return err
	}
	s.sweepOrphanTags(ctx)
	return nil
}

// DeleteBookmarkByURL recomputes the fingerprint for rawURL and deletes by
// that key. Same cascade and sweep contract as DeleteBookmarkByID.
func (s *Store) DeleteBookmarkByURL(ctx context.Context, rawURL string) error {
	urlHash := Fingerprint(rawURL)
	if err := s.driver.DeleteBookmark(ctx, &DeleteBookmark{URLHash: &urlHash}); err != nil {
		return err
	}
	s.sweepOrphanTags(ctx)
	return nil
}
