package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linkstash/linkstash/internal/profile"
	storetest "github.com/linkstash/linkstash/store/test"
)

func newTestServer(t *testing.T) *Server {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	p := &profile.Profile{
		Mode:          "dev",
		Driver:        "sqlite",
		Version:       "test",
		IndexResponse: "Welcome",
	}
	return NewServer(p, ts, nil)
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echoHeaderContentType, "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

const echoHeaderContentType = "Content-Type"

func TestParseLabels(t *testing.T) {
	require.Equal(t, []string{"foo", "bar"}, parseLabels("foo, bar"))
	require.Equal(t, []string{"a"}, parseLabels(" a ,, ,"))
	require.Equal(t, []string{}, parseLabels(""))
}

func TestIndexAndHealth(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Welcome", rec.Body.String())

	rec = doJSON(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var health map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	require.Equal(t, "ok", health["database"])
	require.Equal(t, "disabled", health["redis"])
}

func TestCreateBookmarkEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/urls", `{"url":"https://ex.com/a?x=1","tags":"go, web"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		ID         int32  `json:"id"`
		DisplayURL string `json:"display_url"`
		Existed    bool   `json:"existed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "https://ex.com/a", created.DisplayURL)
	require.False(t, created.Existed)

	// Same URL again resolves to the same row, still 200.
	rec = doJSON(t, s, http.MethodPost, "/urls", `{"url":"https://ex.com/a?x=1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var again struct {
		ID      int32 `json:"id"`
		Existed bool  `json:"existed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &again))
	require.Equal(t, created.ID, again.ID)
	require.True(t, again.Existed)

	rec = doJSON(t, s, http.MethodGet, "/urls/tags", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var view []struct {
		URL    string   `json:"url"`
		Labels []string `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view, 1)
	require.Equal(t, []string{"go", "web"}, view[0].Labels)
}

func TestCreateBookmarkEmptyURLRejected(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/urls", `{"url":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSnippetEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/snippets", `{"url":"https://ex.com/src","snippet":"some `+"`code`"+`","tags":"foo, bar"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		ID int32 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, s, http.MethodGet, "/tags", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var groups []struct {
		Tag      string `json:"tag"`
		Snippets []struct {
			ID int32 `json:"id"`
		} `json:"snippets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	// bar, foo, untagged bucket.
	require.Len(t, groups, 3)
	require.Equal(t, "bar", groups[0].Tag)
	require.Equal(t, "", groups[2].Tag)
	require.Empty(t, groups[2].Snippets)

	rec = doJSON(t, s, http.MethodGet, "/snippets/1/html", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "<code>code</code>")

	rec = doJSON(t, s, http.MethodDelete, "/snippets/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Orphan sweep ran: only the untagged bucket remains.
	rec = doJSON(t, s, http.MethodGet, "/tags", "")
	groups = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	require.Len(t, groups, 1)
	require.Equal(t, "", groups[0].Tag)
}

func TestDeleteBookmarkByURLEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/urls", `{"url":"https://ex.com/gone"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/urls", `{"url":"https://ex.com/gone"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/urls", "")
	require.Equal(t, "[]\n", rec.Body.String())
}

func TestGetTagGroupNotFound(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/tags/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeedEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/urls", `{"url":"https://ex.com/feed-item"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/feed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get(echoHeaderContentType), "rss")
	require.Contains(t, rec.Body.String(), "https://ex.com/feed-item")
}
