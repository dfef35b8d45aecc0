package model

import "time"

// Setting types
const (
	SettingTypeThreshold = "THRESHOLD"
	SettingTypeGeneral   = "GENERAL"
	SettingTypeAlert     = "ALERT"
)

// SystemSetting is a string-keyed configuration entry. Values are always
// stored as strings; numeric thresholds are parsed per read. UpdatedByID
// is a weak reference: deleting the user clears it instead of blocking.
type SystemSetting struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Key         string    `json:"key" gorm:"type:varchar(100);uniqueIndex;not null"`
	Value       string    `json:"value" gorm:"type:text;not null"`
	Description string    `json:"description" gorm:"type:text"`
	SettingType string    `json:"setting_type" gorm:"type:varchar(20);not null;default:'GENERAL'"`
	LastUpdated time.Time `json:"last_updated" gorm:"not null"`
	UpdatedByID *uint     `json:"updated_by,omitempty" gorm:"index"`
	UpdatedBy   *User     `json:"-" gorm:"foreignKey:UpdatedByID;constraint:OnDelete:SET NULL"`
}

// SettingRepository defines data access for system settings
type SettingRepository interface {
	Get(key string) (*SystemSetting, error)
	List() ([]*SystemSetting, error)
	ListByType(settingType string) ([]*SystemSetting, error)
	// Save inserts the setting or overwrites the existing row for its key.
	Save(s *SystemSetting) error
	Delete(key string) error
	// ClearUpdatedBy nulls the updated_by reference for a deleted user.
	ClearUpdatedBy(userID uint) error
}
