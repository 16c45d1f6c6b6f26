// Package server exposes the store over HTTP. Thin glue: every handler maps
// a route to one store operation and translates the store's error codes to
// status codes.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/linkstash/linkstash/internal/cache"
	"github.com/linkstash/linkstash/internal/errdef"
	"github.com/linkstash/linkstash/internal/markdown"
	"github.com/linkstash/linkstash/internal/observability"
	"github.com/linkstash/linkstash/internal/profile"
	"github.com/linkstash/linkstash/server/middleware"
	"github.com/linkstash/linkstash/store"
)

type Server struct {
	echo *echo.Echo

	Profile *profile.Profile
	Store   *store.Store
	// Cache is optional; nil when no Redis is configured.
	Cache *cache.Cache

	markdown markdown.Service
}

func NewServer(profile *profile.Profile, st *store.Store, c *cache.Cache) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:     e,
		Profile:  profile,
		Store:    st,
		Cache:    c,
		markdown: markdown.NewService(),
	}

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(requestLogger())
	e.Use(middleware.RateLimit(middleware.NewRateLimiter()))

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	e := s.echo

	e.GET("/", s.index)
	e.GET("/health", s.health)
	e.GET("/metrics", s.metrics)
	e.GET("/feed", s.feed)

	e.POST("/urls", s.createBookmark)
	e.GET("/urls", s.listBookmarks)
	e.GET("/urls/tags", s.listBookmarksWithTags)
	e.DELETE("/urls", s.deleteBookmarkByURL)
	e.DELETE("/urls/:id", s.deleteBookmarkByID)

	e.POST("/snippets", s.createSnippet)
	e.GET("/snippets", s.listSnippetsWithTags)
	e.GET("/snippets/:id/html", s.renderSnippet)
	e.DELETE("/snippets/:id", s.deleteSnippet)

	e.GET("/tags", s.listTagGroups)
	e.GET("/tags/:label", s.getTagGroup)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start begins serving and blocks until the listener fails or Shutdown runs.
func (s *Server) Start(_ context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started", slog.String("addr", addr), slog.String("version", s.Profile.Version))
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "failed to start server")
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) {
	if err := s.echo.Shutdown(ctx); err != nil {
		slog.Error("failed to shut down server", slog.String("error", err.Error()))
	}
	if s.Cache != nil {
		if err := s.Cache.Close(); err != nil {
			slog.Error("failed to close cache", slog.String("error", err.Error()))
		}
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", slog.String("error", err.Error()))
	}
	slog.Info("server shut down")
}

// requestLogger attaches a request-scoped logger and records metrics.
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rc := observability.NewRequestContext(slog.Default())
			c.Set("request_context", rc)

			err := next(c)
			status := c.Response().Status
			if httpErr, ok := err.(*echo.HTTPError); ok {
				status = httpErr.Code
			}
			rc.LogRequest(c.Request().Method, c.Request().URL.Path, status)
			observability.GlobalMetrics().RecordRequest(
				c.Request().Method+" "+c.Path(), rc.Elapsed(), status >= http.StatusInternalServerError)
			return err
		}
	}
}

// toHTTPError maps store error codes onto status codes.
func toHTTPError(err error) error {
	switch errdef.CodeOf(err) {
	case errdef.ErrCodeNotFound:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errdef.ErrCodeInvalidArgument:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errdef.ErrCodeConflict:
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errdef.ErrCodeBackendUnavailable:
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
