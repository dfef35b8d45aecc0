package handler

import (
	"net/http"
	"strconv"
	"time"

	"hfrat-service/internal/service"
	"hfrat-service/pkg/logger"
	"hfrat-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// MonitorHandler serves the dashboard and trend views.
type MonitorHandler struct {
	reports *service.ReportService
}

func NewMonitorHandler(reports *service.ReportService) *MonitorHandler {
	return &MonitorHandler{reports: reports}
}

// Dashboard lists every facility's current report with derived status.
func (h *MonitorHandler) Dashboard(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	entries, err := h.reports.Dashboard()
	if err != nil {
		log.Error("Failed to build dashboard", zap.Error(err))
		return respondError(c, err)
	}

	critical := 0
	for _, e := range entries {
		if e.ICUBedsAvailable == 0 {
			critical++
		}
	}
	prometheus.UpdateFacilityGauges(len(entries), critical)

	return c.JSON(http.StatusOK, entries)
}

// Trend returns the trailing-7-day daily averages for one facility.
func (h *MonitorHandler) Trend(c echo.Context) error {
	log := logger.FromContext(c)

	raw := c.QueryParam("facility_id")
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "facility_id query parameter is required"})
	}
	facilityID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "facility_id must be an integer"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	trend, err := h.reports.Trend(uint(facilityID))
	if err != nil {
		log.Error("Failed to compute trend",
			zap.Uint64("facility_id", facilityID),
			zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, trend)
}
