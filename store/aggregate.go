package store

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/linkstash/linkstash/internal/errdef"
)

// The grouped views are computed in application code from backend-neutral
// primitive queries instead of engine-specific ARRAY_AGG/GROUP_CONCAT SQL.
// Both views always reflect the live junction state; nothing here is cached.

// BookmarkWithTags is one entry of the items-with-tags view.
type BookmarkWithTags struct {
	*Bookmark
	// DisplayURL is the URL with any ?query suffix stripped.
	DisplayURL string
	// Labels is never nil; a bookmark without tags carries an empty slice.
	Labels []string
}

// SnippetWithTags is a full snippet record with its labels.
type SnippetWithTags struct {
	*Snippet
	Labels []string
}

// TagGroup is one entry of the tags-with-items view. The synthetic untagged
// bucket uses the empty label and is appended after the real tags.
type TagGroup struct {
	Label string
	// URLs holds the distinct bookmark URLs associated with the tag,
	// sorted ascending.
	URLs []string
	// Snippets holds the full snippet records associated with the tag,
	// ordered by id ascending.
	Snippets []*SnippetWithTags
}

// junctionState is one consistent read of everything the views need.
type junctionState struct {
	bookmarks    []*Bookmark
	snippets     []*Snippet
	tags         []*Tag
	bookmarkTags []*BookmarkTag
	snippetTags  []*SnippetTag
}

// loadJunctionState fetches the primitive lists, running the queries
// concurrently against the pool.
func (s *Store) loadJunctionState(ctx context.Context) (*junctionState, error) {
	state := &junctionState{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		state.bookmarks, err = s.driver.ListBookmarks(gctx, &FindBookmark{})
		return err
	})
	g.Go(func() error {
		var err error
		state.snippets, err = s.driver.ListSnippets(gctx, &FindSnippet{})
		return err
	})
	g.Go(func() error {
		var err error
		state.tags, err = s.driver.ListTags(gctx, &FindTag{})
		return err
	})
	g.Go(func() error {
		var err error
		state.bookmarkTags, err = s.driver.ListBookmarkTags(gctx, &FindBookmarkTag{})
		return err
	})
	g.Go(func() error {
		var err error
		state.snippetTags, err = s.driver.ListSnippetTags(gctx, &FindSnippetTag{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return state, nil
}

func (st *junctionState) labelByTagID() map[int32]string {
	m := make(map[int32]string, len(st.tags))
	for _, tag := range st.tags {
		m[tag.ID] = tag.Label
	}
	return m
}

// ListBookmarksWithTags returns every bookmark with its label set, ordered
// by creation time descending (View A).
func (s *Store) ListBookmarksWithTags(ctx context.Context) ([]*BookmarkWithTags, error) {
	state, err := s.loadJunctionState(ctx)
	if err != nil {
		return nil, err
	}

	labelByTag := state.labelByTagID()
	labelsByBookmark := make(map[int32][]string)
	for _, jt := range state.bookmarkTags {
		if label, ok := labelByTag[jt.TagID]; ok {
			labelsByBookmark[jt.BookmarkID] = append(labelsByBookmark[jt.BookmarkID], label)
		}
	}

	// ListBookmarks already returns newest-first.
	result := make([]*BookmarkWithTags, 0, len(state.bookmarks))
	for _, bookmark := range state.bookmarks {
		labels := labelsByBookmark[bookmark.ID]
		if labels == nil {
			labels = []string{}
		}
		sort.Strings(labels)
		result = append(result, &BookmarkWithTags{
			Bookmark:   bookmark,
			DisplayURL: bookmark.DisplayURL(),
			Labels:     labels,
		})
	}
	return result, nil
}

// ListSnippetsWithTags returns every snippet with its label set, newest
// (highest id) first.
func (s *Store) ListSnippetsWithTags(ctx context.Context) ([]*SnippetWithTags, error) {
	state, err := s.loadJunctionState(ctx)
	if err != nil {
		return nil, err
	}
	return state.snippetsWithTags(), nil
}

func (st *junctionState) snippetsWithTags() []*SnippetWithTags {
	labelByTag := st.labelByTagID()
	labelsBySnippet := make(map[int32][]string)
	for _, jt := range st.snippetTags {
		if label, ok := labelByTag[jt.TagID]; ok {
			labelsBySnippet[jt.SnippetID] = append(labelsBySnippet[jt.SnippetID], label)
		}
	}

	result := make([]*SnippetWithTags, 0, len(st.snippets))
	for _, snippet := range st.snippets {
		labels := labelsBySnippet[snippet.ID]
		if labels == nil {
			labels = []string{}
		}
		sort.Strings(labels)
		result = append(result, &SnippetWithTags{Snippet: snippet, Labels: labels})
	}
	return result
}

// ListTagGroups returns every tag with its distinct bookmark URLs and full
// snippet records, ordered by label ascending, followed by the synthetic
// untagged bucket (View B). The bucket is always present, even when empty.
// Every known tag label appears, including tags whose junctions are empty.
func (s *Store) ListTagGroups(ctx context.Context) ([]*TagGroup, error) {
	state, err := s.loadJunctionState(ctx)
	if err != nil {
		return nil, err
	}

	bookmarkByID := make(map[int32]*Bookmark, len(state.bookmarks))
	for _, bookmark := range state.bookmarks {
		bookmarkByID[bookmark.ID] = bookmark
	}
	snippetByID := make(map[int32]*SnippetWithTags, len(state.snippets))
	for _, snippet := range state.snippetsWithTags() {
		snippetByID[snippet.ID] = snippet
	}

	groupByTagID := make(map[int32]*TagGroup, len(state.tags))
	groups := make([]*TagGroup, 0, len(state.tags)+1)
	for _, tag := range state.tags {
		group := &TagGroup{Label: tag.Label, URLs: []string{}, Snippets: []*SnippetWithTags{}}
		groupByTagID[tag.ID] = group
		groups = append(groups, group)
	}

	taggedBookmarks := make(map[int32]bool)
	urlSeen := make(map[int32]map[string]bool)
	for _, jt := range state.bookmarkTags {
		taggedBookmarks[jt.BookmarkID] = true
		group, ok := groupByTagID[jt.TagID]
		bookmark := bookmarkByID[jt.BookmarkID]
		if !ok || bookmark == nil {
			continue
		}
		if urlSeen[jt.TagID] == nil {
			urlSeen[jt.TagID] = make(map[string]bool)
		}
		// Distinct URLs: two bookmark rows cannot share a URL (fingerprint
		// uniqueness), but guard against repeated junction reads anyway.
		if !urlSeen[jt.TagID][bookmark.URL] {
			urlSeen[jt.TagID][bookmark.URL] = true
			group.URLs = append(group.URLs, bookmark.URL)
		}
	}

	taggedSnippets := make(map[int32]bool)
	for _, jt := range state.snippetTags {
		taggedSnippets[jt.SnippetID] = true
		group, ok := groupByTagID[jt.TagID]
		snippet := snippetByID[jt.SnippetID]
		if !ok || snippet == nil {
			continue
		}
		group.Snippets = append(group.Snippets, snippet)
	}

	for _, group := range groups {
		sort.Strings(group.URLs)
		sort.Slice(group.Snippets, func(i, j int) bool {
			return group.Snippets[i].ID < group.Snippets[j].ID
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Label < groups[j].Label
	})

	// Untagged bucket: items with no junction row of their own kind, computed
	// as two independent sets so an item tagged only in the other relation is
	// neither missed nor double counted.
	untagged := &TagGroup{Label: "", URLs: []string{}, Snippets: []*SnippetWithTags{}}
	for _, bookmark := range state.bookmarks {
		if !taggedBookmarks[bookmark.ID] {
			untagged.URLs = append(untagged.URLs, bookmark.URL)
		}
	}
	for _, snippet := range state.snippets {
		if !taggedSnippets[snippet.ID] {
			untagged.Snippets = append(untagged.Snippets, snippetByID[snippet.ID])
		}
	}
	sort.Strings(untagged.URLs)
	sort.Slice(untagged.Snippets, func(i, j int) bool {
		return untagged.Snippets[i].ID < untagged.Snippets[j].ID
	})

	return append(groups, untagged), nil
}

// GetTagGroup returns the group for a single real tag label. The synthetic
// untagged bucket is not addressable here: the empty label reports NOT_FOUND.
func (s *Store) GetTagGroup(ctx context.Context, label string) (*TagGroup, error) {
	if label == "" {
		return nil, errdef.NewNotFound("tag not found")
	}
	groups, err := s.ListTagGroups(ctx)
	if err != nil {
		return nil, err
	}
	for _, group := range groups {
		if group.Label == label {
			return group, nil
		}
	}
	return nil, errdef.NewNotFound("tag not found")
}
