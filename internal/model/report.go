package model

import "time"

// ResourceReport is the single current snapshot for a facility. The unique
// index on facility_id guarantees at most one row per facility; the row is
// overwritten in place on every submission.
type ResourceReport struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	FacilityID           uint      `json:"facility_id" gorm:"uniqueIndex;not null"`
	Facility             *Facility `json:"facility,omitempty" gorm:"foreignKey:FacilityID;constraint:OnDelete:CASCADE"`
	ICUBedsAvailable     int       `json:"icu_beds_available" gorm:"not null;check:icu_beds_available >= 0"`
	VentilatorsAvailable int       `json:"ventilators_available" gorm:"not null;check:ventilators_available >= 0"`
	StaffOnDuty          int       `json:"staff_on_duty" gorm:"not null;check:staff_on_duty >= 0"`
	LastUpdated          time.Time `json:"last_updated" gorm:"not null"`
}

// ResourceReportHistory is the append-only log of every snapshot ever
// submitted. Rows are never mutated; trend queries read from here, never
// from the current report.
type ResourceReportHistory struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	FacilityID           uint      `json:"facility_id" gorm:"index;not null"`
	Facility             *Facility `json:"-" gorm:"foreignKey:FacilityID;constraint:OnDelete:CASCADE"`
	ICUBedsAvailable     int       `json:"icu_beds_available" gorm:"not null"`
	VentilatorsAvailable int       `json:"ventilators_available" gorm:"not null"`
	StaffOnDuty          int       `json:"staff_on_duty" gorm:"not null"`
	CreatedAt            time.Time `json:"created_at" gorm:"index"`
}

// ReportRepository defines data access for current reports and history
type ReportRepository interface {
	// Upsert writes the current report for its facility and appends the
	// matching history row in one transaction. Both succeed or neither does.
	Upsert(r *ResourceReport, h *ResourceReportHistory) error
	GetByFacility(facilityID uint) (*ResourceReport, error)
	// List returns all current reports with facilities preloaded, ordered
	// by facility name.
	List() ([]*ResourceReport, error)
	// HistorySince returns history rows for a facility with created_at on
	// or after since, newest first.
	HistorySince(facilityID uint, since time.Time) ([]*ResourceReportHistory, error)
	Count() (int64, error)
	CountHistory() (int64, error)
}
