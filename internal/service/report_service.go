package service

import (
	"math"
	"sort"
	"time"

	"hfrat-service/internal/authz"
	"hfrat-service/internal/model"

	"go.uber.org/zap"
)

// trendWindowDays is the trailing window for trend queries.
const trendWindowDays = 7

// DashboardEntry is one row of the monitor dashboard.
type DashboardEntry struct {
	FacilityID           uint      `json:"facility_id"`
	FacilityName         string    `json:"facility_name"`
	Country              string    `json:"country"`
	City                 string    `json:"city_or_state"`
	ICUBedsAvailable     int       `json:"icu_beds_available"`
	VentilatorsAvailable int       `json:"ventilators_available"`
	StaffOnDuty          int       `json:"staff_on_duty"`
	LastUpdated          time.Time `json:"last_updated"`
	Status               string    `json:"status"`
}

// TrendPoint is the per-day mean of each resource count, one decimal place.
type TrendPoint struct {
	Date        string  `json:"date"`
	ICUBeds     float64 `json:"icu_beds"`
	Ventilators float64 `json:"ventilators"`
	Staff       float64 `json:"staff"`
}

// TrendResult is the trend response for one facility.
type TrendResult struct {
	FacilityID   uint         `json:"facility_id"`
	FacilityName string       `json:"facility_name"`
	City         string       `json:"city_or_state"`
	Country      string       `json:"country"`
	Data         []TrendPoint `json:"data"`
}

// ReportService owns the current-report upsert, the dashboard view and
// trend computation.
type ReportService struct {
	reports    model.ReportRepository
	facilities model.FacilityRepository
	settings   *SettingService
	logger     *zap.Logger
	now        func() time.Time
}

func NewReportService(reports model.ReportRepository, facilities model.FacilityRepository, settings *SettingService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		reports:    reports,
		facilities: facilities,
		settings:   settings,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Submit upserts the current report for the reporter's facility and
// appends the matching history row. The write pair is atomic: history
// never diverges from current state at the moment of write.
func (s *ReportService) Submit(p authz.Principal, icuBeds, ventilators, staff int) (*model.ResourceReport, error) {
	if p.FacilityID == nil {
		return nil, NewValidationError("facility", "Assigned facility required for reporters.")
	}

	ve := &ValidationError{}
	if icuBeds < 0 {
		ve.Add("icu_beds_available", "Must be a non-negative integer.")
	}
	if ventilators < 0 {
		ve.Add("ventilators_available", "Must be a non-negative integer.")
	}
	if staff < 0 {
		ve.Add("staff_on_duty", "Must be a non-negative integer.")
	}
	if len(ve.Fields) > 0 {
		return nil, ve
	}

	now := s.now()
	report := &model.ResourceReport{
		FacilityID:           *p.FacilityID,
		ICUBedsAvailable:     icuBeds,
		VentilatorsAvailable: ventilators,
		StaffOnDuty:          staff,
		LastUpdated:          now,
	}
	history := &model.ResourceReportHistory{
		FacilityID:           *p.FacilityID,
		ICUBedsAvailable:     icuBeds,
		VentilatorsAvailable: ventilators,
		StaffOnDuty:          staff,
		CreatedAt:            now,
	}
	if err := s.reports.Upsert(report, history); err != nil {
		return nil, err
	}

	s.logger.Info("report submitted",
		zap.Uint("facility_id", *p.FacilityID),
		zap.Uint("user_id", p.UserID),
		zap.Int("icu_beds", icuBeds))
	return s.reports.GetByFacility(*p.FacilityID)
}

// Dashboard returns every current report with its derived status. The
// threshold setting is read per call so edits take effect immediately.
func (s *ReportService) Dashboard() ([]DashboardEntry, error) {
	reports, err := s.reports.List()
	if err != nil {
		return nil, err
	}

	threshold := s.settings.CriticalICUThreshold()
	entries := make([]DashboardEntry, 0, len(reports))
	for _, r := range reports {
		entry := DashboardEntry{
			FacilityID:           r.FacilityID,
			ICUBedsAvailable:     r.ICUBedsAvailable,
			VentilatorsAvailable: r.VentilatorsAvailable,
			StaffOnDuty:          r.StaffOnDuty,
			LastUpdated:          r.LastUpdated,
			Status:               StatusFor(r.ICUBedsAvailable, threshold),
		}
		if r.Facility != nil {
			entry.FacilityName = r.Facility.Name
			entry.Country = r.Facility.Country
			entry.City = r.Facility.City
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Trend computes the trailing-7-day daily averages for a facility. An
// unknown facility is an error; an empty history window is not.
func (s *ReportService) Trend(facilityID uint) (*TrendResult, error) {
	facility, err := s.facilities.GetByID(facilityID)
	if err != nil {
		return nil, err
	}

	since := s.now().AddDate(0, 0, -trendWindowDays)
	rows, err := s.reports.HistorySince(facilityID, since)
	if err != nil {
		return nil, err
	}

	return &TrendResult{
		FacilityID:   facility.ID,
		FacilityName: facility.Name,
		City:         facility.City,
		Country:      facility.Country,
		Data:         aggregateDaily(rows),
	}, nil
}

// aggregateDaily groups history rows by UTC calendar day and computes the
// arithmetic mean of each count, rounded to one decimal, days ascending.
func aggregateDaily(rows []*model.ResourceReportHistory) []TrendPoint {
	type bucket struct {
		icu, vent, staff, n int
	}
	buckets := map[string]*bucket{}
	for _, row := range rows {
		day := row.CreatedAt.UTC().Format("2006-01-02")
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		b.icu += row.ICUBedsAvailable
		b.vent += row.VentilatorsAvailable
		b.staff += row.StaffOnDuty
		b.n++
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	points := make([]TrendPoint, 0, len(days))
	for _, day := range days {
		b := buckets[day]
		points = append(points, TrendPoint{
			Date:        day,
			ICUBeds:     round1(float64(b.icu) / float64(b.n)),
			Ventilators: round1(float64(b.vent) / float64(b.n)),
			Staff:       round1(float64(b.staff) / float64(b.n)),
		})
	}
	return points
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
