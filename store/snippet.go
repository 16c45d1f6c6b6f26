package store

import (
	"context"
	"strings"

	"github.com/linkstash/linkstash/internal/errdef"
)

type Snippet struct {
	// ID is the system generated unique identifier for the snippet.
	ID int32

	// Standard fields
	CreatedTs int64

	// Domain specific fields
	//
	// SourceURL is free text. It often matches a bookmark's URL but a
	// snippet is an independent entity, not a child of any bookmark.
	SourceURL string
	Body      string
}

type FindSnippet struct {
	ID    *int32
	Limit *int
}

type DeleteSnippet struct {
	ID int32
}

// CreateSnippet inserts a snippet unconditionally (no dedup by content) and
// associates the given tag labels. A backend error while linking tags aborts
// the remaining labels and is returned; the snippet row itself stays.
func (s *Store) CreateSnippet(ctx context.Context, sourceURL, body string, labels []string) (*Snippet, error) {
	if strings.TrimSpace(body) == "" {
		return nil, errdef.NewInvalidArgument("snippet body is empty")
	}

	snippet, err := s.driver.CreateSnippet(ctx, &Snippet{
		SourceURL: sourceURL,
		Body:      body,
	})
	if err != nil {
		return nil, err
	}

	if err := s.AttachTags(ctx, KindSnippet, snippet.ID, labels); err != nil {
		return nil, err
	}
	return snippet, nil
}

// ListSnippets returns snippets newest-first by id.
func (s *Store) ListSnippets(ctx context.Context, find *FindSnippet) ([]*Snippet, error) {
	return s.driver.ListSnippets(ctx, find)
}

// GetSnippet returns the snippet with the given id, or a NOT_FOUND error.
func (s *Store) GetSnippet(ctx context.Context, id int32) (*Snippet, error) {
	list, err := s.driver.ListSnippets(ctx, &FindSnippet{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errdef.NewNotFound("snippet not found")
	}
	return list[0], nil
}

// DeleteSnippetByID removes a snippet and, via cascade, its junction rows.
// Deleting a missing row is a no-op. Orphaned tags are swept best-effort.
func (s *Store) DeleteSnippetByID(ctx context.Context, id int32) error {
	if err := s.driver.DeleteSnippet(ctx, &DeleteSnippet{ID: id}); err != nil {
		return err
	}
	s.sweepOrphanTags(ctx)
	return nil
}
