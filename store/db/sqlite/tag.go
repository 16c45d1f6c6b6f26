package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/linkstash/linkstash/store"
)

func (d *DB) CreateTag(ctx context.Context, create *store.Tag) (*store.Tag, error) {
	stmt := `INSERT INTO tag (label)
		VALUES (` + placeholder(1) + `)
		ON CONFLICT (label) DO NOTHING
		RETURNING id`

	err := d.db.QueryRowContext(ctx, stmt, create.Label).Scan(&create.ID)
	if err == sql.ErrNoRows {
		// The label already exists.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return create, nil
}

func (d *DB) ListTags(ctx context.Context, find *store.FindTag) ([]*store.Tag, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "tag.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Label; v != nil {
		where, args = append(where, "tag.label = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, label
		FROM tag
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY label ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Tag, 0)
	for rows.Next() {
		var tag store.Tag
		if err := rows.Scan(&tag.ID, &tag.Label); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		list = append(list, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	return list, nil
}

func (d *DB) DeleteOrphanTags(ctx context.Context) (int64, error) {
	stmt := `DELETE FROM tag
		WHERE id NOT IN (SELECT tag_id FROM bookmark_tag)
		  AND id NOT IN (SELECT tag_id FROM snippet_tag)`

	result, err := d.db.ExecContext(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orphan tags: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted orphan tags: %w", err)
	}
	return removed, nil
}

func (d *DB) UpsertBookmarkTag(ctx context.Context, upsert *store.BookmarkTag) error {
	stmt := `INSERT INTO bookmark_tag (bookmark_id, tag_id)
		VALUES (` + placeholders(2) + `)
		ON CONFLICT (bookmark_id, tag_id) DO NOTHING`

	if _, err := d.db.ExecContext(ctx, stmt, upsert.BookmarkID, upsert.TagID); err != nil {
		return fmt.Errorf("failed to upsert bookmark_tag: %w", err)
	}
	return nil
}

func (d *DB) ListBookmarkTags(ctx context.Context, find *store.FindBookmarkTag) ([]*store.BookmarkTag, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.BookmarkID; v != nil {
		where, args = append(where, "bookmark_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.TagID; v != nil {
		where, args = append(where, "tag_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT bookmark_id, tag_id
		FROM bookmark_tag
		WHERE ` + strings.Join(where, " AND ")

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookmark_tag: %w", err)
	}
	defer rows.Close()

	list := make([]*store.BookmarkTag, 0)
	for rows.Next() {
		var junction store.BookmarkTag
		if err := rows.Scan(&junction.BookmarkID, &junction.TagID); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark_tag: %w", err)
		}
		list = append(list, &junction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookmark_tag: %w", err)
	}
	return list, nil
}

func (d *DB) UpsertSnippetTag(ctx context.Context, upsert *store.SnippetTag) error {
	stmt := `INSERT INTO snippet_tag (snippet_id, tag_id)
		VALUES (` + placeholders(2) + `)
		ON CONFLICT (snippet_id, tag_id) DO NOTHING`

	if _, err := d.db.ExecContext(ctx, stmt, upsert.SnippetID, upsert.TagID); err != nil {
		return fmt.Errorf("failed to upsert snippet_tag: %w", err)
	}
	return nil
}

func (d *DB) ListSnippetTags(ctx context.Context, find *store.FindSnippetTag) ([]*store.SnippetTag, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.SnippetID; v != nil {
		where, args = append(where, "snippet_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.TagID; v != nil {
		where, args = append(where, "tag_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT snippet_id, tag_id
		FROM snippet_tag
		WHERE ` + strings.Join(where, " AND ")

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snippet_tag: %w", err)
	}
	defer rows.Close()

	list := make([]*store.SnippetTag, 0)
	for rows.Next() {
		var junction store.SnippetTag
		if err := rows.Scan(&junction.SnippetID, &junction.TagID); err != nil {
			return nil, fmt.Errorf("failed to scan snippet_tag: %w", err)
		}
		list = append(list, &junction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snippet_tag: %w", err)
	}
	return list, nil
}
