package service

import (
	"testing"

	"hfrat-service/internal/model"
)

func newTestStatsService() (*StatsService, *memUserRepo, *memFacilityRepo, *memReportRepo) {
	users := newMemUserRepo()
	facilities := newMemFacilityRepo()
	reports := newMemReportRepo(facilities)
	return NewStatsService(users, facilities, reports, nil), users, facilities, reports
}

func TestPlatformEmpty(t *testing.T) {
	svc, _, _, _ := newTestStatsService()

	stats, err := svc.Platform()
	if err != nil {
		t.Fatalf("platform: %v", err)
	}
	if stats.TotalFacilities != 0 || stats.TotalUsers != 0 || stats.TotalReports != 0 || stats.TotalHistoryEntries != 0 {
		t.Fatalf("counts not zero: %+v", stats)
	}
	if stats.CriticalFacilities != 0 {
		t.Fatalf("critical = %d, want 0", stats.CriticalFacilities)
	}
	for name, totals := range stats.Resources {
		if totals.Sum != 0 || totals.Mean != 0 {
			t.Fatalf("%s = %+v, want zeros", name, totals)
		}
	}
}

func TestPlatformAggregates(t *testing.T) {
	svc, users, facilities, reports := newTestStatsService()

	fa := &model.Facility{Name: "Alpha", Country: "Kenya", City: "Nairobi"}
	fb := &model.Facility{Name: "Beta", Country: "Kenya", City: "Mombasa"}
	fc := &model.Facility{Name: "Gamma", Country: "Ghana", City: "Accra"}
	for _, f := range []*model.Facility{fa, fb, fc} {
		if err := facilities.Create(f); err != nil {
			t.Fatalf("seed facility: %v", err)
		}
	}

	for _, u := range []*model.User{
		{Username: "r1", Role: model.RoleReporter, FacilityID: &fa.ID},
		{Username: "r2", Role: model.RoleReporter, FacilityID: &fb.ID},
		{Username: "m1", Role: model.RoleMonitor},
		{Username: "a1", Role: model.RoleAdministrator},
	} {
		if err := users.Create(u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	submit := func(facilityID uint, icu, vent, staff int) {
		t.Helper()
		err := reports.Upsert(
			&model.ResourceReport{FacilityID: facilityID, ICUBedsAvailable: icu, VentilatorsAvailable: vent, StaffOnDuty: staff},
			&model.ResourceReportHistory{FacilityID: facilityID, ICUBedsAvailable: icu, VentilatorsAvailable: vent, StaffOnDuty: staff},
		)
		if err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	submit(fa.ID, 0, 2, 10)
	submit(fb.ID, 7, 3, 5)
	// A re-submission bumps history but not the current-report count.
	submit(fb.ID, 8, 3, 5)

	stats, err := svc.Platform()
	if err != nil {
		t.Fatalf("platform: %v", err)
	}
	if stats.TotalFacilities != 3 || stats.TotalUsers != 4 {
		t.Fatalf("entity counts: %+v", stats)
	}
	if stats.TotalReports != 2 || stats.TotalHistoryEntries != 3 {
		t.Fatalf("report counts: reports=%d history=%d", stats.TotalReports, stats.TotalHistoryEntries)
	}
	if stats.UsersByRole[model.RoleReporter] != 2 || stats.UsersByRole[model.RoleMonitor] != 1 || stats.UsersByRole[model.RoleAdministrator] != 1 {
		t.Fatalf("users by role: %v", stats.UsersByRole)
	}
	if stats.FacilitiesByCountry["Kenya"] != 2 || stats.FacilitiesByCountry["Ghana"] != 1 {
		t.Fatalf("facilities by country: %v", stats.FacilitiesByCountry)
	}

	// Only the zero-bed facility counts as critical here, regardless of the
	// configurable dashboard threshold.
	if stats.CriticalFacilities != 1 {
		t.Fatalf("critical = %d, want 1", stats.CriticalFacilities)
	}

	icu := stats.Resources["icu_beds_available"]
	if icu.Sum != 8 || icu.Mean != 4 {
		t.Fatalf("icu totals = %+v, want sum=8 mean=4", icu)
	}
	staff := stats.Resources["staff_on_duty"]
	if staff.Sum != 15 || staff.Mean != 7.5 {
		t.Fatalf("staff totals = %+v, want sum=15 mean=7.5", staff)
	}
}
