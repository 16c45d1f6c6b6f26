package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// Ping runs a trivial query to check the backend is reachable.
	Ping(ctx context.Context) error
	// IsInitialized reports whether the schema has been created.
	IsInitialized(ctx context.Context) (bool, error)

	// Bookmark model related methods.
	//
	// CreateBookmark returns (nil, nil) when a row with the same url_hash
	// already exists; the caller re-fetches by hash.
	CreateBookmark(ctx context.Context, create *Bookmark) (*Bookmark, error)
	ListBookmarks(ctx context.Context, find *FindBookmark) ([]*Bookmark, error)
	DeleteBookmark(ctx context.Context, delete *DeleteBookmark) error

	// Snippet model related methods.
	CreateSnippet(ctx context.Context, create *Snippet) (*Snippet, error)
	ListSnippets(ctx context.Context, find *FindSnippet) ([]*Snippet, error)
	DeleteSnippet(ctx context.Context, delete *DeleteSnippet) error

	// Tag model related methods.
	//
	// CreateTag returns (nil, nil) when the label already exists.
	CreateTag(ctx context.Context, create *Tag) (*Tag, error)
	ListTags(ctx context.Context, find *FindTag) ([]*Tag, error)
	// DeleteOrphanTags removes every tag with zero junction rows of either
	// kind and returns the number of rows removed.
	DeleteOrphanTags(ctx context.Context) (int64, error)

	// Junction model related methods.
	UpsertBookmarkTag(ctx context.Context, upsert *BookmarkTag) error
	ListBookmarkTags(ctx context.Context, find *FindBookmarkTag) ([]*BookmarkTag, error)
	UpsertSnippetTag(ctx context.Context, upsert *SnippetTag) error
	ListSnippetTags(ctx context.Context, find *FindSnippetTag) ([]*SnippetTag, error)
}
