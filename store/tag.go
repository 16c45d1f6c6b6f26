package store

import (
	"context"
	"strings"

	"github.com/linkstash/linkstash/internal/errdef"
)

// ItemKind selects which junction relation a tag association targets.
type ItemKind string

const (
	KindBookmark ItemKind = "BOOKMARK"
	KindSnippet  ItemKind = "SNIPPET"
)

type Tag struct {
	// ID is the system generated unique identifier for the tag.
	ID int32

	// Label is globally unique and case-preserving. Trimming of surrounding
	// whitespace is the ingestion layer's job; AttachTags trims defensively
	// since labels arrive comma-split from user input.
	Label string
}

type FindTag struct {
	ID    *int32
	Label *string
}

type BookmarkTag struct {
	BookmarkID int32
	TagID      int32
}

type FindBookmarkTag struct {
	BookmarkID *int32
	TagID      *int32
}

type SnippetTag struct {
	SnippetID int32
	TagID     int32
}

type FindSnippetTag struct {
	SnippetID *int32
	TagID     *int32
}

// resolveTag returns the tag row for label, creating it if absent.
// Insert-or-fetch: the unique constraint on label resolves concurrent
// creators to a single row.
func (s *Store) resolveTag(ctx context.Context, label string) (*Tag, error) {
	created, err := s.driver.CreateTag(ctx, &Tag{Label: label})
	if err != nil {
		return nil, err
	}
	if created != nil {
		return created, nil
	}

	list, err := s.driver.ListTags(ctx, &FindTag{Label: &label})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		// The existing row was deleted between insert and fetch; retry once.
		created, err = s.driver.CreateTag(ctx, &Tag{Label: label})
		if err != nil {
			return nil, err
		}
		if created == nil {
			return nil, errdef.NewConflict("tag insert raced and could not be resolved")
		}
		return created, nil
	}
	return list[0], nil
}

// AttachTags resolves each non-empty label to a tag row and links it to the
// item via the junction for kind. Idempotent per (item, tag) pair. An empty
// label list is a no-op, not an error. A backend error aborts the remaining
// labels and reports the first error.
func (s *Store) AttachTags(ctx context.Context, kind ItemKind, itemID int32, labels []string) error {
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}

		tag, err := s.resolveTag(ctx, label)
		if err != nil {
			return err
		}

		switch kind {
		case KindBookmark:
			err = s.driver.UpsertBookmarkTag(ctx, &BookmarkTag{BookmarkID: itemID, TagID: tag.ID})
		case KindSnippet:
			err = s.driver.UpsertSnippetTag(ctx, &SnippetTag{SnippetID: itemID, TagID: tag.ID})
		default:
			err = errdef.NewInvalidArgument("unknown item kind: " + string(kind))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ListTags returns tags matching find, ordered by label ascending.
func (s *Store) ListTags(ctx context.Context, find *FindTag) ([]*Tag, error) {
	return s.driver.ListTags(ctx, find)
}

// RemoveOrphanTags deletes every tag with zero junction rows of either kind
// and returns the number removed. A tag used only by a snippet survives any
// bookmark deletion, and vice versa. Idempotent; also invoked automatically
// after item deletes.
func (s *Store) RemoveOrphanTags(ctx context.Context) (int64, error) {
	return s.driver.DeleteOrphanTags(ctx)
}
