package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/linkstash/linkstash/internal/observability"
)

func (s *Server) index(c echo.Context) error {
	return c.String(http.StatusOK, s.Profile.IndexResponse)
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

// health reports per-component reachability. The response is always 200 with
// component statuses inside, so probes can distinguish a degraded backend
// from a dead server.
func (s *Server) health(c echo.Context) error {
	ctx := c.Request().Context()

	resp := healthResponse{Status: "ok", Database: "ok", Redis: "disabled"}
	if err := s.Store.Ping(ctx); err != nil {
		resp.Database = "error"
	}
	if s.Cache != nil {
		resp.Redis = "ok"
		if err := s.Cache.Ping(ctx); err != nil {
			resp.Redis = "error"
		}
	}
	return c.JSON(http.StatusOK, resp)
}

type metricsResponse struct {
	RequestTotal  int64                                `json:"request_total"`
	RequestFailed int64                                `json:"request_failed"`
	Operations    map[string]observability.OpSnapshot `json:"operations"`
}

func (s *Server) metrics(c echo.Context) error {
	total, failed := observability.GlobalMetrics().Totals()
	return c.JSON(http.StatusOK, metricsResponse{
		RequestTotal:  total,
		RequestFailed: failed,
		Operations:    observability.GlobalMetrics().Snapshot(),
	})
}
