package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/linkstash/linkstash/store"
)

type createSnippetRequest struct {
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	// Tags is a comma-separated label list.
	Tags string `json:"tags"`
}

type snippetResponse struct {
	ID        int32    `json:"id"`
	CreatedTs int64    `json:"created_ts"`
	SourceURL string   `json:"url"`
	Body      string   `json:"snippet"`
	Labels    []string `json:"tags"`
}

func snippetToResponse(snippet *store.SnippetWithTags) snippetResponse {
	return snippetResponse{
		ID:        snippet.ID,
		CreatedTs: snippet.CreatedTs,
		SourceURL: snippet.SourceURL,
		Body:      snippet.Body,
		Labels:    snippet.Labels,
	}
}

func (s *Server) createSnippet(c echo.Context) error {
	var req createSnippetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	labels := parseLabels(req.Tags)
	snippet, err := s.Store.CreateSnippet(c.Request().Context(), req.URL, req.Snippet, labels)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, snippetResponse{
		ID:        snippet.ID,
		CreatedTs: snippet.CreatedTs,
		SourceURL: snippet.SourceURL,
		Body:      snippet.Body,
		Labels:    labels,
	})
}

func (s *Server) listSnippetsWithTags(c echo.Context) error {
	view, err := s.Store.ListSnippetsWithTags(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]snippetResponse, 0, len(view))
	for _, snippet := range view {
		resp = append(resp, snippetToResponse(snippet))
	}
	return c.JSON(http.StatusOK, resp)
}

// renderSnippet serves the snippet body as HTML. Rendered output is cached
// in Redis keyed by the body fingerprint, so edits are never served stale.
func (s *Server) renderSnippet(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid snippet id")
	}

	ctx := c.Request().Context()
	snippet, err := s.Store.GetSnippet(ctx, int32(id))
	if err != nil {
		return toHTTPError(err)
	}

	cacheKey := fmt.Sprintf("snippet_html:%d:%.12s", snippet.ID, store.Fingerprint(snippet.Body))
	if s.Cache != nil {
		if html, ok := s.Cache.Get(ctx, cacheKey); ok {
			return c.HTML(http.StatusOK, html)
		}
	}

	html, err := s.markdown.Render(snippet.Body)
	if err != nil {
		return toHTTPError(err)
	}
	if s.Cache != nil {
		s.Cache.Set(ctx, cacheKey, html)
	}
	return c.HTML(http.StatusOK, html)
}

func (s *Server) deleteSnippet(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid snippet id")
	}

	if err := s.Store.DeleteSnippetByID(c.Request().Context(), int32(id)); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
