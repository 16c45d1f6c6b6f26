package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/linkstash/linkstash/store"
)

// parseLabels splits a comma-separated tag field, trimming each label and
// dropping empties. Normalization lives here, not in the store.
func parseLabels(tags string) []string {
	labels := []string{}
	for _, label := range strings.Split(tags, ",") {
		label = strings.TrimSpace(label)
		if label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}

type createBookmarkRequest struct {
	URL string `json:"url"`
	// Tags is a comma-separated label list, e.g. "go, databases".
	Tags string `json:"tags"`
}

type bookmarkResponse struct {
	ID         int32  `json:"id"`
	CreatedTs  int64  `json:"created_ts"`
	URL        string `json:"url"`
	DisplayURL string `json:"display_url"`
	Existed    bool   `json:"existed,omitempty"`
}

func (s *Server) createBookmark(c echo.Context) error {
	var req createBookmarkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	ctx := c.Request().Context()
	bookmark, existed, err := s.Store.CreateBookmark(ctx, req.URL)
	if err != nil {
		return toHTTPError(err)
	}
	if err := s.Store.AttachTags(ctx, store.KindBookmark, bookmark.ID, parseLabels(req.Tags)); err != nil {
		return toHTTPError(err)
	}

	// Resolving to an existing row is not an error: 200 either way.
	return c.JSON(http.StatusOK, bookmarkResponse{
		ID:         bookmark.ID,
		CreatedTs:  bookmark.CreatedTs,
		URL:        bookmark.URL,
		DisplayURL: bookmark.DisplayURL(),
		Existed:    existed,
	})
}

func (s *Server) listBookmarks(c echo.Context) error {
	list, err := s.Store.ListBookmarks(c.Request().Context(), &store.FindBookmark{})
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]bookmarkResponse, 0, len(list))
	for _, bookmark := range list {
		resp = append(resp, bookmarkResponse{
			ID:         bookmark.ID,
			CreatedTs:  bookmark.CreatedTs,
			URL:        bookmark.URL,
			DisplayURL: bookmark.DisplayURL(),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

type bookmarkWithTagsResponse struct {
	bookmarkResponse
	Labels []string `json:"tags"`
}

func (s *Server) listBookmarksWithTags(c echo.Context) error {
	view, err := s.Store.ListBookmarksWithTags(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]bookmarkWithTagsResponse, 0, len(view))
	for _, entry := range view {
		resp = append(resp, bookmarkWithTagsResponse{
			bookmarkResponse: bookmarkResponse{
				ID:         entry.ID,
				CreatedTs:  entry.CreatedTs,
				URL:        entry.URL,
				DisplayURL: entry.DisplayURL,
			},
			Labels: entry.Labels,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

type deleteBookmarkRequest struct {
	URL string `json:"url"`
}

func (s *Server) deleteBookmarkByURL(c echo.Context) error {
	var req deleteBookmarkRequest
	if err := c.Bind(&req); err != nil || req.URL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url is required")
	}

	if err := s.Store.DeleteBookmarkByURL(c.Request().Context(), req.URL); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteBookmarkByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid bookmark id")
	}

	if err := s.Store.DeleteBookmarkByID(c.Request().Context(), int32(id)); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
