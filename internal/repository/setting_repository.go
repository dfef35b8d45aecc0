package repository

import (
	"hfrat-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository returns a gorm-backed setting repository.
func NewSettingRepository(db *gorm.DB) model.SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(key string) (*model.SystemSetting, error) {
	var setting model.SystemSetting
	if err := r.db.Where("key = ?", key).First(&setting).Error; err != nil {
		return nil, translateError(err)
	}
	return &setting, nil
}

func (r *settingRepository) List() ([]*model.SystemSetting, error) {
	var settings []*model.SystemSetting
	if err := r.db.Order("key").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingRepository) ListByType(settingType string) ([]*model.SystemSetting, error) {
	var settings []*model.SystemSetting
	err := r.db.Where("setting_type = ?", settingType).Order("key").Find(&settings).Error
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// Save upserts by key so setting and overwriting share one code path.
func (r *settingRepository) Save(s *model.SystemSetting) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"value",
			"description",
			"setting_type",
			"last_updated",
			"updated_by_id",
		}),
	}).Create(s).Error
}

func (r *settingRepository) Delete(key string) error {
	result := r.db.Where("key = ?", key).Delete(&model.SystemSetting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *settingRepository) ClearUpdatedBy(userID uint) error {
	return r.db.Model(&model.SystemSetting{}).
		Where("updated_by_id = ?", userID).
		Update("updated_by_id", nil).Error
}
