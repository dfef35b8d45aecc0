package repository

import (
	"errors"

	"hfrat-service/internal/model"

	"gorm.io/gorm"
)

type facilityRepository struct {
	db *gorm.DB
}

// NewFacilityRepository returns a gorm-backed facility repository.
func NewFacilityRepository(db *gorm.DB) model.FacilityRepository {
	return &facilityRepository{db: db}
}

func (r *facilityRepository) Create(f *model.Facility) error {
	if err := r.db.Create(f).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *facilityRepository) GetByID(id uint) (*model.Facility, error) {
	var facility model.Facility
	if err := r.db.First(&facility, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &facility, nil
}

// GetOrCreate is race-safe: a concurrent insert of the same triple loses
// on the unique index and falls back to reading the winner's row.
func (r *facilityRepository) GetOrCreate(name, country, city string) (*model.Facility, error) {
	facility := model.Facility{Name: name, Country: country, City: city}
	err := r.db.Where(model.Facility{Name: name, Country: country, City: city}).
		FirstOrCreate(&facility).Error
	if err != nil && errors.Is(translateError(err), model.ErrDuplicate) {
		err = r.db.Where("facility_name = ? AND country = ? AND city_or_state = ?", name, country, city).
			First(&facility).Error
	}
	if err != nil {
		return nil, translateError(err)
	}
	return &facility, nil
}

func (r *facilityRepository) List() ([]*model.Facility, error) {
	var facilities []*model.Facility
	if err := r.db.Order("facility_name").Find(&facilities).Error; err != nil {
		return nil, err
	}
	return facilities, nil
}

func (r *facilityRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Facility{}).Count(&count).Error
	return count, err
}

func (r *facilityRepository) CountByCountry() (map[string]int64, error) {
	var rows []struct {
		Country string
		Total   int64
	}
	err := r.db.Model(&model.Facility{}).
		Select("country, count(*) as total").
		Group("country").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Country] = row.Total
	}
	return counts, nil
}
