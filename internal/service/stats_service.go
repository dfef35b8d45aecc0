package service

import (
	"hfrat-service/internal/model"

	"go.uber.org/zap"
)

// ResourceTotals holds the sum and mean of one resource count across all
// current reports.
type ResourceTotals struct {
	Sum  int     `json:"sum"`
	Mean float64 `json:"mean"`
}

// PlatformStats is the administrator-facing aggregate view. The
// critical-facility count uses a fixed zero-bed threshold, independent of
// the configurable threshold behind dashboard status.
type PlatformStats struct {
	TotalFacilities     int64                     `json:"total_facilities"`
	TotalUsers          int64                     `json:"total_users"`
	TotalReports        int64                     `json:"total_reports"`
	TotalHistoryEntries int64                     `json:"total_history_entries"`
	UsersByRole         map[string]int64          `json:"users_by_role"`
	Resources           map[string]ResourceTotals `json:"resources"`
	CriticalFacilities  int64                     `json:"critical_facilities"`
	FacilitiesByCountry map[string]int64          `json:"facilities_by_country"`
}

// StatsService computes platform-wide statistics for administrators.
type StatsService struct {
	users      model.UserRepository
	facilities model.FacilityRepository
	reports    model.ReportRepository
	logger     *zap.Logger
}

func NewStatsService(users model.UserRepository, facilities model.FacilityRepository, reports model.ReportRepository, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{users: users, facilities: facilities, reports: reports, logger: logger}
}

// Platform gathers entity counts, per-role user counts, resource sums and
// means, the zero-ICU-bed critical count, and facility counts by country.
// An empty database yields zero counts and zero means, never an error.
func (s *StatsService) Platform() (*PlatformStats, error) {
	stats := &PlatformStats{}

	var err error
	if stats.TotalFacilities, err = s.facilities.Count(); err != nil {
		return nil, err
	}
	if stats.TotalUsers, err = s.users.Count(); err != nil {
		return nil, err
	}
	if stats.TotalReports, err = s.reports.Count(); err != nil {
		return nil, err
	}
	if stats.TotalHistoryEntries, err = s.reports.CountHistory(); err != nil {
		return nil, err
	}
	if stats.UsersByRole, err = s.users.CountByRole(); err != nil {
		return nil, err
	}
	if stats.FacilitiesByCountry, err = s.facilities.CountByCountry(); err != nil {
		return nil, err
	}

	reports, err := s.reports.List()
	if err != nil {
		return nil, err
	}

	var icuSum, ventSum, staffSum int
	for _, r := range reports {
		icuSum += r.ICUBedsAvailable
		ventSum += r.VentilatorsAvailable
		staffSum += r.StaffOnDuty
		if r.ICUBedsAvailable == 0 {
			stats.CriticalFacilities++
		}
	}
	n := len(reports)
	stats.Resources = map[string]ResourceTotals{
		"icu_beds_available":    {Sum: icuSum, Mean: meanOf(icuSum, n)},
		"ventilators_available": {Sum: ventSum, Mean: meanOf(ventSum, n)},
		"staff_on_duty":         {Sum: staffSum, Mean: meanOf(staffSum, n)},
	}

	return stats, nil
}

// meanOf avoids a NaN when there are no reports.
func meanOf(sum, n int) float64 {
	if n == 0 {
		return 0
	}
	return round1(float64(sum) / float64(n))
}
