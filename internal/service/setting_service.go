package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"hfrat-service/internal/model"

	"go.uber.org/zap"
)

// Derived status values for a facility's current report.
const (
	StatusCritical = "CRITICAL"
	StatusOK       = "OK"
)

// Well-known setting keys.
const (
	SettingCriticalICUBeds     = "critical_icu_beds_threshold"
	SettingCriticalVentilators = "critical_ventilators_threshold"
	SettingCriticalStaff       = "critical_staff_threshold"
	SettingAlertNotification   = "alert_notification_enabled"
	SettingDashboardRefresh    = "dashboard_refresh_interval"
)

// DefaultCriticalICUThreshold applies when the threshold setting is absent
// or non-numeric.
const DefaultCriticalICUThreshold = 5

type defaultSetting struct {
	key         string
	value       string
	description string
	settingType string
}

var defaultSettings = []defaultSetting{
	{SettingCriticalICUBeds, "5", "ICU beds at or below this value mark a facility CRITICAL", model.SettingTypeThreshold},
	{SettingCriticalVentilators, "3", "Ventilators at or below this value are considered critical", model.SettingTypeThreshold},
	{SettingCriticalStaff, "10", "Staff on duty at or below this value is considered critical", model.SettingTypeThreshold},
	{SettingAlertNotification, "true", "Whether alert notifications are enabled", model.SettingTypeAlert},
	{SettingDashboardRefresh, "60", "Dashboard refresh interval in seconds", model.SettingTypeGeneral},
}

// InitializeResult reports the outcome of seeding default settings.
type InitializeResult struct {
	Created  int `json:"created"`
	Existing int `json:"existing"`
	Total    int `json:"total"`
}

// SettingService manages string-keyed configuration and derives facility
// status from the configurable ICU threshold.
type SettingService struct {
	settings model.SettingRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewSettingService(settings model.SettingRepository, logger *zap.Logger) *SettingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingService{
		settings: settings,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Get returns a setting by key.
func (s *SettingService) Get(key string) (*model.SystemSetting, error) {
	return s.settings.Get(key)
}

// List returns all settings.
func (s *SettingService) List() ([]*model.SystemSetting, error) {
	return s.settings.List()
}

// ListThresholds returns the THRESHOLD-typed settings, the read-only
// subset open to every authenticated principal.
func (s *SettingService) ListThresholds() ([]*model.SystemSetting, error) {
	return s.settings.ListByType(model.SettingTypeThreshold)
}

// Set creates or overwrites a setting. Values are stored as strings and
// must not be blank.
func (s *SettingService) Set(key, value, description, settingType string, updatedBy uint) (*model.SystemSetting, error) {
	if key == "" {
		return nil, NewValidationError("key", "Setting key must not be blank.")
	}
	if strings.TrimSpace(value) == "" {
		return nil, NewValidationError("value", "Setting value must not be blank.")
	}
	switch settingType {
	case model.SettingTypeThreshold, model.SettingTypeGeneral, model.SettingTypeAlert:
	case "":
		settingType = model.SettingTypeGeneral
	default:
		return nil, NewValidationError("setting_type", "Setting type must be one of THRESHOLD, GENERAL, ALERT.")
	}

	setting := &model.SystemSetting{
		Key:         key,
		Value:       value,
		Description: description,
		SettingType: settingType,
		LastUpdated: s.now(),
		UpdatedByID: &updatedBy,
	}
	if err := s.settings.Save(setting); err != nil {
		return nil, err
	}

	s.logger.Info("setting saved",
		zap.String("key", key),
		zap.String("type", settingType),
		zap.Uint("updated_by", updatedBy))
	return s.settings.Get(key)
}

// Delete removes a setting by key.
func (s *SettingService) Delete(key string) error {
	if err := s.settings.Delete(key); err != nil {
		return err
	}
	s.logger.Info("setting deleted", zap.String("key", key))
	return nil
}

// InitializeDefaults idempotently seeds the five default settings,
// leaving existing keys untouched.
func (s *SettingService) InitializeDefaults(updatedBy uint) (*InitializeResult, error) {
	result := &InitializeResult{Total: len(defaultSettings)}
	for _, def := range defaultSettings {
		_, err := s.settings.Get(def.key)
		if err == nil {
			result.Existing++
			continue
		}
		if !errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		setting := &model.SystemSetting{
			Key:         def.key,
			Value:       def.value,
			Description: def.description,
			SettingType: def.settingType,
			LastUpdated: s.now(),
			UpdatedByID: &updatedBy,
		}
		if err := s.settings.Save(setting); err != nil {
			return nil, err
		}
		result.Created++
	}
	s.logger.Info("default settings initialized",
		zap.Int("created", result.Created),
		zap.Int("existing", result.Existing))
	return result, nil
}

// CriticalICUThreshold reads critical_icu_beds_threshold, falling back to
// the default when the setting is absent or non-numeric. Looked up per
// evaluation so threshold edits take effect on the next read.
func (s *SettingService) CriticalICUThreshold() int {
	setting, err := s.settings.Get(SettingCriticalICUBeds)
	if err != nil {
		return DefaultCriticalICUThreshold
	}
	threshold, err := strconv.Atoi(strings.TrimSpace(setting.Value))
	if err != nil {
		return DefaultCriticalICUThreshold
	}
	return threshold
}

// DeriveStatus classifies a report against the configurable threshold.
func (s *SettingService) DeriveStatus(r *model.ResourceReport) string {
	return StatusFor(r.ICUBedsAvailable, s.CriticalICUThreshold())
}

// StatusFor is the threshold rule: CRITICAL iff available ICU beds are at
// or below the threshold.
func StatusFor(icuBeds, threshold int) string {
	if icuBeds <= threshold {
		return StatusCritical
	}
	return StatusOK
}
