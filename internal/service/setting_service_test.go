package service

import (
	"errors"
	"testing"

	"hfrat-service/internal/model"
)

func newTestSettingService() (*SettingService, *memSettingRepo) {
	settings := newMemSettingRepo()
	return NewSettingService(settings, nil), settings
}

func TestSetAndGet(t *testing.T) {
	svc, _ := newTestSettingService()

	saved, err := svc.Set("maintenance_note", "rolling restart at 02:00", "ops note", model.SettingTypeGeneral, 1)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if saved.Value != "rolling restart at 02:00" {
		t.Fatalf("value = %q", saved.Value)
	}
	if saved.UpdatedByID == nil || *saved.UpdatedByID != 1 {
		t.Fatalf("updated_by = %v, want 1", saved.UpdatedByID)
	}

	// Overwriting keeps a single row per key.
	if _, err := svc.Set("maintenance_note", "cancelled", "", model.SettingTypeGeneral, 2); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	all, _ := svc.List()
	if len(all) != 1 {
		t.Fatalf("settings = %d, want 1", len(all))
	}
	if all[0].Value != "cancelled" {
		t.Fatalf("value = %q after overwrite", all[0].Value)
	}
}

func TestSetValidation(t *testing.T) {
	svc, _ := newTestSettingService()

	if _, err := svc.Set("", "v", "", "", 1); err == nil {
		t.Fatal("blank key accepted")
	}
	_, err := svc.Set("k", "   ", "", "", 1)
	if ve, ok := AsValidationError(err); !ok || ve.Fields["value"] == "" {
		t.Fatalf("blank value: err = %v, want value validation error", err)
	}
	_, err = svc.Set("k", "v", "", "BOGUS", 1)
	if ve, ok := AsValidationError(err); !ok || ve.Fields["setting_type"] == "" {
		t.Fatalf("bad type: err = %v, want setting_type validation error", err)
	}

	// An omitted type defaults to GENERAL.
	saved, err := svc.Set("k", "v", "", "", 1)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if saved.SettingType != model.SettingTypeGeneral {
		t.Fatalf("type = %q, want GENERAL", saved.SettingType)
	}
}

func TestDeleteUnknownKey(t *testing.T) {
	svc, _ := newTestSettingService()

	if err := svc.Delete("ghost"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestInitializeDefaultsIdempotent(t *testing.T) {
	svc, _ := newTestSettingService()

	// Pre-existing keys survive re-initialization untouched.
	if _, err := svc.Set(SettingCriticalICUBeds, "9", "tuned", model.SettingTypeThreshold, 1); err != nil {
		t.Fatalf("seed: %v", err)
	}

	first, err := svc.InitializeDefaults(1)
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if first.Created != 4 || first.Existing != 1 || first.Total != 5 {
		t.Fatalf("first run = %+v, want created=4 existing=1 total=5", first)
	}

	second, err := svc.InitializeDefaults(1)
	if err != nil {
		t.Fatalf("reinitialize: %v", err)
	}
	if second.Created != 0 || second.Existing != 5 {
		t.Fatalf("second run = %+v, want created=0 existing=5", second)
	}

	tuned, err := svc.Get(SettingCriticalICUBeds)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if tuned.Value != "9" {
		t.Fatalf("tuned threshold overwritten: %q", tuned.Value)
	}
}

func TestListThresholds(t *testing.T) {
	svc, _ := newTestSettingService()

	if _, err := svc.InitializeDefaults(1); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	thresholds, err := svc.ListThresholds()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(thresholds) != 3 {
		t.Fatalf("thresholds = %d, want 3", len(thresholds))
	}
	for _, s := range thresholds {
		if s.SettingType != model.SettingTypeThreshold {
			t.Fatalf("non-threshold setting %q in list", s.Key)
		}
	}
}

func TestCriticalICUThresholdFallbacks(t *testing.T) {
	svc, settings := newTestSettingService()

	if got := svc.CriticalICUThreshold(); got != DefaultCriticalICUThreshold {
		t.Fatalf("absent setting: threshold = %d, want %d", got, DefaultCriticalICUThreshold)
	}

	if err := settings.Save(&model.SystemSetting{Key: SettingCriticalICUBeds, Value: "not-a-number", SettingType: model.SettingTypeThreshold}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := svc.CriticalICUThreshold(); got != DefaultCriticalICUThreshold {
		t.Fatalf("non-numeric setting: threshold = %d, want %d", got, DefaultCriticalICUThreshold)
	}

	if err := settings.Save(&model.SystemSetting{Key: SettingCriticalICUBeds, Value: " 8 ", SettingType: model.SettingTypeThreshold}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := svc.CriticalICUThreshold(); got != 8 {
		t.Fatalf("threshold = %d, want 8", got)
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		icu, threshold int
		want           string
	}{
		{0, 5, StatusCritical},
		{5, 5, StatusCritical},
		{6, 5, StatusOK},
		{0, 0, StatusCritical},
		{1, 0, StatusOK},
	}
	for _, c := range cases {
		if got := StatusFor(c.icu, c.threshold); got != c.want {
			t.Fatalf("StatusFor(%d, %d) = %q, want %q", c.icu, c.threshold, got, c.want)
		}
	}
}
