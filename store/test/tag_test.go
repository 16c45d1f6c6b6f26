package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linkstash/linkstash/store"
)

func TestTagResolutionIdempotence(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	bookmark, _, err := ts.CreateBookmark(ctx, "https://ex.com/a")
	require.NoError(t, err)
	snippet, err := ts.CreateSnippet(ctx, "", "body", nil)
	require.NoError(t, err)

	require.NoError(t, ts.AttachTags(ctx, store.KindBookmark, bookmark.ID, []string{"shared"}))
	require.NoError(t, ts.AttachTags(ctx, store.KindSnippet, snippet.ID, []string{"shared"}))

	label := "shared"
	tags, err := ts.ListTags(ctx, &store.FindTag{Label: &label})
	require.NoError(t, err)
	require.Len(t, tags, 1, "associating the same label twice creates exactly one tag row")

	bt, err := ts.GetDriver().ListBookmarkTags(ctx, &store.FindBookmarkTag{TagID: &tags[0].ID})
	require.NoError(t, err)
	st, err := ts.GetDriver().ListSnippetTags(ctx, &store.FindSnippetTag{TagID: &tags[0].ID})
	require.NoError(t, err)
	require.Len(t, bt, 1)
	require.Len(t, st, 1)
}

func TestAttachTagsIdempotentPerPair(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	bookmark, _, err := ts.CreateBookmark(ctx, "https://ex.com/a")
	require.NoError(t, err)

	require.NoError(t, ts.AttachTags(ctx, store.KindBookmark, bookmark.ID, []string{"dup"}))
	require.NoError(t, ts.AttachTags(ctx, store.KindBookmark, bookmark.ID, []string{"dup"}))

	junctions, err := ts.GetDriver().ListBookmarkTags(ctx, &store.FindBookmarkTag{BookmarkID: &bookmark.ID})
	require.NoError(t, err)
	require.Len(t, junctions, 1)
}

func TestAttachTagsEmptyListNoOp(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	bookmark, _, err := ts.CreateBookmark(ctx, "https://ex.com/a")
	require.NoError(t, err)
	require.NoError(t, ts.AttachTags(ctx, store.KindBookmark, bookmark.ID, nil))
	require.NoError(t, ts.AttachTags(ctx, store.KindBookmark, bookmark.ID, []string{"", "  "}))

	tags, err := ts.ListTags(ctx, &store.FindTag{})
	require.NoError(t, err)
	require.Empty(t, tags)
}

func TestRemoveOrphanTags(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	bookmark, _, err := ts.CreateBookmark(ctx, "https://ex.com/a")
	require.NoError(t, err)
	require.NoError(t, ts.AttachTags(ctx, store.KindBookmark, bookmark.ID, []string{"solo"}))

	// Still referenced: the sweep leaves it intact.
	removed, err := ts.RemoveOrphanTags(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, removed)

	// Deleting the only referencing item sweeps the tag automatically.
	require.NoError(t, ts.DeleteBookmarkByID(ctx, bookmark.ID))
	tags, err := ts.ListTags(ctx, &store.FindTag{})
	require.NoError(t, err)
	require.Empty(t, tags)

	// Repeated sweeps are no-ops.
	removed, err = ts.RemoveOrphanTags(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, removed)
}

func TestSharedTagSurvivesBookmarkDeletion(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	bookmark, _, err := ts.CreateBookmark(ctx, "https://ex.com/a")
	require.NoError(t, err)
	snippet, err := ts.CreateSnippet(ctx, "", "body", []string{"shared"})
	require.NoError(t, err)
	require.NoError(t, ts.AttachTags(ctx, store.KindBookmark, bookmark.ID, []string{"shared"}))

	require.NoError(t, ts.DeleteBookmarkByID(ctx, bookmark.ID))

	label := "shared"
	tags, err := ts.ListTags(ctx, &store.FindTag{Label: &label})
	require.NoError(t, err)
	require.Len(t, tags, 1, "a tag used only by a snippet survives a bookmark deletion")

	group, err := ts.GetTagGroup(ctx, "shared")
	require.NoError(t, err)
	require.Len(t, group.Snippets, 1)
	require.Equal(t, snippet.ID, group.Snippets[0].ID)
	require.Empty(t, group.URLs)
}
