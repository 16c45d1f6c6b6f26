package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"

	"github.com/linkstash/linkstash/store"
)

const feedItemLimit = 50

// feed serves the most recently saved bookmarks as RSS.
func (s *Server) feed(c echo.Context) error {
	limit := feedItemLimit
	list, err := s.Store.ListBookmarks(c.Request().Context(), &store.FindBookmark{Limit: &limit})
	if err != nil {
		return toHTTPError(err)
	}

	feed := &feeds.Feed{
		Title:       "linkstash",
		Link:        &feeds.Link{Href: fmt.Sprintf("http://%s/feed", c.Request().Host)},
		Description: "Recently saved bookmarks",
		Created:     time.Now(),
	}
	for _, bookmark := range list {
		feed.Items = append(feed.Items, &feeds.Item{
			Title:   bookmark.DisplayURL(),
			Link:    &feeds.Link{Href: bookmark.URL},
			Id:      bookmark.URLHash,
			Created: time.Unix(bookmark.CreatedTs, 0),
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build feed")
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}
