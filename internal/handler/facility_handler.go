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

// FacilityHandler serves administrator facility management.
type FacilityHandler struct {
	facilities *service.FacilityService
}

func NewFacilityHandler(facilities *service.FacilityService) *FacilityHandler {
	return &FacilityHandler{facilities: facilities}
}

// List returns all facilities ordered by name.
func (h *FacilityHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	facilities, err := h.facilities.List()
	if err != nil {
		log.Error("Failed to list facilities", zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, facilities)
}

// Create adds a facility through the explicit administrator path.
func (h *FacilityHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Name           string `json:"facility_name"`
		Country        string `json:"country"`
		City           string `json:"city_or_state"`
		LocationDetail string `json:"location_detail"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid facility payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	facility, err := h.facilities.Create(req.Name, req.Country, req.City, req.LocationDetail)
	if err != nil {
		log.Error("Failed to create facility", zap.String("name", req.Name), zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Facility created",
		zap.Uint("facility_id", facility.ID),
		zap.String("name", facility.Name))
	return c.JSON(http.StatusCreated, facility)
}
