package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/linkstash/linkstash/store"
)

func (d *DB) CreateSnippet(ctx context.Context, create *store.Snippet) (*store.Snippet, error) {
	stmt := `INSERT INTO snippet (source_url, body)
		VALUES (` + placeholders(2) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt, create.SourceURL, create.Body).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create snippet: %w", err)
	}
	return create, nil
}

func (d *DB) ListSnippets(ctx context.Context, find *store.FindSnippet) ([]*store.Snippet, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "snippet.id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, created_ts, source_url, body
		FROM snippet
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY id DESC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snippets: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Snippet, 0)
	for rows.Next() {
		var snippet store.Snippet
		if err := rows.Scan(
			&snippet.ID,
			&snippet.CreatedTs,
			&snippet.SourceURL,
			&snippet.Body,
		); err != nil {
			return nil, fmt.Errorf("failed to scan snippet: %w", err)
		}
		list = append(list, &snippet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snippets: %w", err)
	}
	return list, nil
}

func (d *DB) DeleteSnippet(ctx context.Context, delete *store.DeleteSnippet) error {
	stmt := `DELETE FROM snippet WHERE id = ` + placeholder(1)
	if _, err := d.db.ExecContext(ctx, stmt, delete.ID); err != nil {
		return fmt.Errorf("failed to delete snippet: %w", err)
	}
	return nil
}
