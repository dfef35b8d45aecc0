package handler

import (
	"net/http"
	"time"

	"hfrat-service/internal/service"
	"hfrat-service/pkg/logger"
	"hfrat-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// StatsHandler serves platform-wide statistics for administrators.
type StatsHandler struct {
	stats *service.StatsService
}

func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Platform returns entity counts, per-role user counts, resource totals
// and facility breakdowns.
func (h *StatsHandler) Platform(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	stats, err := h.stats.Platform()
	if err != nil {
		log.Error("Failed to compute platform stats", zap.Error(err))
		return respondError(c, err)
	}

	prometheus.UpdateFacilityGauges(int(stats.TotalFacilities), int(stats.CriticalFacilities))
	return c.JSON(http.StatusOK, stats)
}
