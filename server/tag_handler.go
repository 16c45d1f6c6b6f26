package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/linkstash/linkstash/store"
)

type tagGroupResponse struct {
	Tag      string            `json:"tag"`
	URLs     []string          `json:"urls"`
	Snippets []snippetResponse `json:"snippets"`
}

func tagGroupToResponse(group *store.TagGroup) tagGroupResponse {
	snippets := make([]snippetResponse, 0, len(group.Snippets))
	for _, snippet := range group.Snippets {
		snippets = append(snippets, snippetToResponse(snippet))
	}
	return tagGroupResponse{
		Tag:      group.Label,
		URLs:     group.URLs,
		Snippets: snippets,
	}
}

// listTagGroups serves every tag with its items, the synthetic untagged
// bucket (empty tag name) last.
func (s *Server) listTagGroups(c echo.Context) error {
	groups, err := s.Store.ListTagGroups(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]tagGroupResponse, 0, len(groups))
	for _, group := range groups {
		resp = append(resp, tagGroupToResponse(group))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) getTagGroup(c echo.Context) error {
	group, err := s.Store.GetTagGroup(c.Request().Context(), c.Param("label"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, tagGroupToResponse(group))
}
