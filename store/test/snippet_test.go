package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linkstash/linkstash/internal/errdef"
	"github.com/linkstash/linkstash/store"
)

func TestCreateSnippetNoDedup(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	a, err := ts.CreateSnippet(ctx, "https://ex.com/src", "same body", nil)
	require.NoError(t, err)
	b, err := ts.CreateSnippet(ctx, "https://ex.com/src", "same body", nil)
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID, "snippets are never deduplicated")
}

func TestCreateSnippetWithTags(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	snippet, err := ts.CreateSnippet(ctx, "https://ex.com/src", "a body", []string{"foo", " bar ", ""})
	require.NoError(t, err)

	junctions, err := ts.GetDriver().ListSnippetTags(ctx, &store.FindSnippetTag{SnippetID: &snippet.ID})
	require.NoError(t, err)
	require.Len(t, junctions, 2, "empty labels are filtered, not rejected")

	tags, err := ts.ListTags(ctx, &store.FindTag{})
	require.NoError(t, err)
	labels := make([]string, 0, len(tags))
	for _, tag := range tags {
		labels = append(labels, tag.Label)
	}
	require.Equal(t, []string{"bar", "foo"}, labels, "labels are trimmed before storage")
}

func TestCreateSnippetEmptyBody(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	_, err := ts.CreateSnippet(ctx, "https://ex.com/src", "", nil)
	require.Error(t, err)
	require.Equal(t, errdef.ErrCodeInvalidArgument, errdef.CodeOf(err))
}

func TestGetSnippetNotFound(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	_, err := ts.GetSnippet(ctx, 9999)
	require.True(t, errdef.IsNotFound(err))
}

func TestDeleteSnippetCascadesJunctions(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	snippet, err := ts.CreateSnippet(ctx, "", "body", []string{"keep"})
	require.NoError(t, err)

	require.NoError(t, ts.DeleteSnippetByID(ctx, snippet.ID))

	junctions, err := ts.GetDriver().ListSnippetTags(ctx, &store.FindSnippetTag{SnippetID: &snippet.ID})
	require.NoError(t, err)
	require.Empty(t, junctions)

	// Idempotent delete.
	require.NoError(t, ts.DeleteSnippetByID(ctx, snippet.ID))
}
