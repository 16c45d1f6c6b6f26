package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linkstash/linkstash/internal/errdef"
	"github.com/linkstash/linkstash/store"
)

func TestCreateBookmarkDedup(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	first, existed, err := ts.CreateBookmark(ctx, "https://ex.com/a?x=1")
	require.NoError(t, err)
	require.False(t, existed)
	require.Equal(t, store.Fingerprint("https://ex.com/a?x=1"), first.URLHash)

	second, existed, err := ts.CreateBookmark(ctx, "https://ex.com/a?x=1")
	require.NoError(t, err)
	require.True(t, existed)
	require.Equal(t, first.ID, second.ID)

	list, err := ts.ListBookmarks(ctx, &store.FindBookmark{})
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestBookmarkDisplayURL(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	bookmark, _, err := ts.CreateBookmark(ctx, "https://ex.com/a?x=1")
	require.NoError(t, err)
	require.Equal(t, "https://ex.com/a", bookmark.DisplayURL())

	// The stored row keeps the raw URL; the display form is derived on read.
	got, err := ts.GetBookmark(ctx, &store.FindBookmark{ID: &bookmark.ID})
	require.NoError(t, err)
	require.Equal(t, "https://ex.com/a?x=1", got.URL)
}

func TestCreateBookmarkDistinctURLTexts(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	// Same page, different query string: distinct URL text, distinct row.
	a, _, err := ts.CreateBookmark(ctx, "https://ex.com/a")
	require.NoError(t, err)
	b, _, err := ts.CreateBookmark(ctx, "https://ex.com/a?x=1")
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)
}

func TestCreateBookmarkEmptyURL(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	_, _, err := ts.CreateBookmark(ctx, "   ")
	require.Error(t, err)
	require.Equal(t, errdef.ErrCodeInvalidArgument, errdef.CodeOf(err))
}

func TestListBookmarksNewestFirst(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	urls := []string{"https://ex.com/1", "https://ex.com/2", "https://ex.com/3"}
	for _, u := range urls {
		_, _, err := ts.CreateBookmark(ctx, u)
		require.NoError(t, err)
	}

	list, err := ts.ListBookmarks(ctx, &store.FindBookmark{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "https://ex.com/3", list[0].URL)
	require.Equal(t, "https://ex.com/1", list[2].URL)
}

func TestDeleteBookmarkByURL(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	_, _, err := ts.CreateBookmark(ctx, "https://ex.com/gone")
	require.NoError(t, err)

	require.NoError(t, ts.DeleteBookmarkByURL(ctx, "https://ex.com/gone"))
	list, err := ts.ListBookmarks(ctx, &store.FindBookmark{})
	require.NoError(t, err)
	require.Empty(t, list)

	// Idempotent: deleting an already-gone row is a no-op.
	require.NoError(t, ts.DeleteBookmarkByURL(ctx, "https://ex.com/gone"))
}

func TestDeleteBookmarkCascadesJunctions(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	bookmark, _, err := ts.CreateBookmark(ctx, "https://ex.com/tagged")
	require.NoError(t, err)
	require.NoError(t, ts.AttachTags(ctx, store.KindBookmark, bookmark.ID, []string{"a", "b"}))

	require.NoError(t, ts.DeleteBookmarkByID(ctx, bookmark.ID))

	junctions, err := ts.GetDriver().ListBookmarkTags(ctx, &store.FindBookmarkTag{BookmarkID: &bookmark.ID})
	require.NoError(t, err)
	require.Empty(t, junctions)
}
