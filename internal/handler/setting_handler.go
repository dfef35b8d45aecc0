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

// SettingHandler serves system setting management. Thresholds are
// readable by any authenticated principal; everything else is admin-only
// and gated at the route level.
type SettingHandler struct {
	settings *service.SettingService
}

func NewSettingHandler(settings *service.SettingService) *SettingHandler {
	return &SettingHandler{settings: settings}
}

// Thresholds returns the THRESHOLD-typed settings for any principal.
func (h *SettingHandler) Thresholds(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSettingOperation("read_thresholds")

	defer prometheus.TrackDBOperation("query")(time.Now())
	settings, err := h.settings.ListThresholds()
	if err != nil {
		log.Error("Failed to list threshold settings", zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// List returns all settings.
func (h *SettingHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSettingOperation("list")

	defer prometheus.TrackDBOperation("query")(time.Now())
	settings, err := h.settings.List()
	if err != nil {
		log.Error("Failed to list settings", zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// Get returns one setting by key.
func (h *SettingHandler) Get(c echo.Context) error {
	prometheus.RecordSettingOperation("get")

	defer prometheus.TrackDBOperation("query")(time.Now())
	setting, err := h.settings.Get(c.Param("key"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, setting)
}

// Put creates or overwrites the setting named by the path key.
func (h *SettingHandler) Put(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSettingOperation("save")

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		Value       string `json:"value"`
		Description string `json:"description"`
		SettingType string `json:"setting_type"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid setting payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	setting, err := h.settings.Set(c.Param("key"), req.Value, req.Description, req.SettingType, p.UserID)
	if err != nil {
		log.Error("Failed to save setting", zap.String("key", c.Param("key")), zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, setting)
}

// Create adds a setting with the key in the request body.
func (h *SettingHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSettingOperation("create")

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		Key         string `json:"key"`
		Value       string `json:"value"`
		Description string `json:"description"`
		SettingType string `json:"setting_type"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid setting payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	setting, err := h.settings.Set(req.Key, req.Value, req.Description, req.SettingType, p.UserID)
	if err != nil {
		log.Error("Failed to create setting", zap.String("key", req.Key), zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, setting)
}

// Delete removes a setting by key.
func (h *SettingHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSettingOperation("delete")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.settings.Delete(c.Param("key")); err != nil {
		log.Error("Failed to delete setting", zap.String("key", c.Param("key")), zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Setting deleted successfully"})
}

// Initialize idempotently seeds the default settings.
func (h *SettingHandler) Initialize(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSettingOperation("initialize")

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	result, err := h.settings.InitializeDefaults(p.UserID)
	if err != nil {
		log.Error("Failed to initialize default settings", zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Default settings initialized",
		zap.Int("created", result.Created),
		zap.Int("existing", result.Existing))
	return c.JSON(http.StatusOK, result)
}
