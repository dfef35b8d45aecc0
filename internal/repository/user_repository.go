package repository

import (
	"errors"

	"hfrat-service/internal/model"

	"gorm.io/gorm"
)

// translateError maps gorm errors onto the storage sentinels the services
// check against.
func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return model.ErrDuplicate
	default:
		return err
	}
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a gorm-backed user repository.
func NewUserRepository(db *gorm.DB) model.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(u *model.User) error {
	if err := r.db.Create(u).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *userRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Facility").First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Facility").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) List() ([]*model.User, error) {
	var users []*model.User
	if err := r.db.Preload("Facility").Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update persists the full row, including clearing facility_id when the
// role moved away from REPORTER. Select("*") forces zero-valued and nil
// fields to be written.
func (r *userRepository) Update(u *model.User) error {
	if err := r.db.Model(u).Select("*").Omit("id", "created_at").Updates(u).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *userRepository) Delete(id uint) error {
	result := r.db.Delete(&model.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) CountByRole() (map[string]int64, error) {
	var rows []struct {
		Role  string
		Total int64
	}
	err := r.db.Model(&model.User{}).
		Select("role, count(*) as total").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Total
	}
	return counts, nil
}
