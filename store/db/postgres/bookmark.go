package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/linkstash/linkstash/store"
)

func (d *DB) CreateBookmark(ctx context.Context, create *store.Bookmark) (*store.Bookmark, error) {
	stmt := `INSERT INTO bookmark (url, url_hash)
		VALUES (` + placeholders(2) + `)
		ON CONFLICT (url_hash) DO NOTHING
		RETURNING id, created_ts`

	err := d.db.QueryRowContext(ctx, stmt, create.URL, create.URLHash).Scan(
		&create.ID,
		&create.CreatedTs,
	)
	if err == sql.ErrNoRows {
		// A row with this fingerprint already exists.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create bookmark: %w", err)
	}
	return create, nil
}

func (d *DB) ListBookmarks(ctx context.Context, find *store.FindBookmark) ([]*store.Bookmark, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "bookmark.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.URLHash; v != nil {
		where, args = append(where, "bookmark.url_hash = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, created_ts, url, url_hash
		FROM bookmark
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts DESC, id DESC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookmarks: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Bookmark, 0)
	for rows.Next() {
		var bookmark store.Bookmark
		if err := rows.Scan(
			&bookmark.ID,
			&bookmark.CreatedTs,
			&bookmark.URL,
			&bookmark.URLHash,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		list = append(list, &bookmark)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookmarks: %w", err)
	}
	return list, nil
}

func (d *DB) DeleteBookmark(ctx context.Context, delete *store.DeleteBookmark) error {
	where, args := []string{}, []any{}

	if v := delete.ID; v != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := delete.URLHash; v != nil {
		where, args = append(where, "url_hash = "+placeholder(len(args)+1)), append(args, *v)
	}
	if len(where) == 0 {
		return fmt.Errorf("delete bookmark requires an id or url_hash")
	}

	stmt := `DELETE FROM bookmark WHERE ` + strings.Join(where, " AND ")
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return nil
}
