package repository

import (
	"time"

	"hfrat-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository returns a gorm-backed report repository.
func NewReportRepository(db *gorm.DB) model.ReportRepository {
	return &reportRepository{db: db}
}

// Upsert writes the current report and its history row in one
// transaction. The ON CONFLICT clause on facility_id keeps exactly one
// current row per facility under concurrent writers.
func (r *reportRepository) Upsert(rep *model.ResourceReport, h *model.ResourceReportHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "facility_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"icu_beds_available",
				"ventilators_available",
				"staff_on_duty",
				"last_updated",
			}),
		}).Create(rep).Error
		if err != nil {
			return err
		}
		return tx.Create(h).Error
	})
}

func (r *reportRepository) GetByFacility(facilityID uint) (*model.ResourceReport, error) {
	var report model.ResourceReport
	err := r.db.Preload("Facility").Where("facility_id = ?", facilityID).First(&report).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &report, nil
}

func (r *reportRepository) List() ([]*model.ResourceReport, error) {
	var reports []*model.ResourceReport
	err := r.db.Preload("Facility").
		Joins("JOIN facilities ON facilities.id = resource_reports.facility_id").
		Order("facilities.facility_name").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) HistorySince(facilityID uint, since time.Time) ([]*model.ResourceReportHistory, error) {
	var rows []*model.ResourceReportHistory
	err := r.db.Where("facility_id = ? AND created_at >= ?", facilityID, since).
		Order("created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.ResourceReport{}).Count(&count).Error
	return count, err
}

func (r *reportRepository) CountHistory() (int64, error) {
	var count int64
	err := r.db.Model(&model.ResourceReportHistory{}).Count(&count).Error
	return count, err
}
