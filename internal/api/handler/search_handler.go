package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

type SearchHandler struct {
	search ports.SearchService
}

func NewSearchHandler(search ports.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// Search matches q against orders, products and customers, at most five of
// each. Queries shorter than two characters return empty lists.
//
// @Summary      Global search
// @Tags         search
// @Security     BearerAuth
// @Produce      json
// @Param        q    query     string  true  "Search text"
// @Success      200  {object}  ports.SearchResult
// @Router       /api/search [get]
func (h *SearchHandler) Search(c echo.Context) error {
	result, err := h.search.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
