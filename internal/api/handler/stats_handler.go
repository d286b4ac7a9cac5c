package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

const defaultStatsDays = 30

type StatsHandler struct {
	stats ports.StatsService
}

func NewStatsHandler(stats ports.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Get returns revenue and order aggregates for the last N days compared with
// the N days before, plus overall customer and product counts.
//
// @Summary      Dashboard stats
// @Tags         stats
// @Security     BearerAuth
// @Produce      json
// @Param        days  query     int  false  "Window size in days (default 30)"
// @Success      200   {object}  domain.Stats
// @Failure      400   {object}  errorBody
// @Router       /api/stats [get]
func (h *StatsHandler) Get(c echo.Context) error {
	days := defaultStatsDays
	if raw := c.QueryParam("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Validation("days must be a positive integer")
		}
		days = n
	}

	stats, err := h.stats.Compute(c.Request().Context(), days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
