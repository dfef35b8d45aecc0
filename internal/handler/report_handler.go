package handler

import (
	"net/http"
	"time"

	"hfrat-service/internal/middleware"
	"hfrat-service/internal/service"
	"hfrat-service/pkg/logger"
	"hfrat-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ReportHandler serves the reporter submission endpoint.
type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Submit upserts the current report for the caller's facility. POST and
// PUT behave identically.
func (h *ReportHandler) Submit(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.ReportSubmissionCounter.Inc()

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		ICUBedsAvailable     int `json:"icu_beds_available"`
		VentilatorsAvailable int `json:"ventilators_available"`
		StaffOnDuty          int `json:"staff_on_duty"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid report payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("upsert")(time.Now())
	report, err := h.reports.Submit(p, req.ICUBedsAvailable, req.VentilatorsAvailable, req.StaffOnDuty)
	if err != nil {
		log.Error("Report submission failed",
			zap.String("username", p.Username),
			zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, report)
}
