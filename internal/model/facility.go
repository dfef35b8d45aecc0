package model

import "time"

// Facility represents a physical site that reports resource capacity.
// The (name, country, city_or_state) triple is unique so that two
// reporters registering the same hospital resolve to one row.
type Facility struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"facility_name" gorm:"column:facility_name;type:varchar(255);not null;uniqueIndex:idx_facilities_identity"`
	Country        string    `json:"country" gorm:"type:varchar(120);not null;default:'Unknown';uniqueIndex:idx_facilities_identity"`
	City           string    `json:"city_or_state" gorm:"column:city_or_state;type:varchar(120);not null;default:'Unknown';uniqueIndex:idx_facilities_identity"`
	LocationDetail string    `json:"location_detail,omitempty" gorm:"type:varchar(255)"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FacilityRepository defines data access for facilities
type FacilityRepository interface {
	// Create inserts a new facility; a duplicate identity triple is an error.
	Create(f *Facility) error
	GetByID(id uint) (*Facility, error)
	// GetOrCreate resolves the identity triple to an existing facility or
	// creates one. Safe under concurrent callers with the same triple.
	GetOrCreate(name, country, city string) (*Facility, error)
	// List returns all facilities ordered by name.
	List() ([]*Facility, error)
	Count() (int64, error)
	CountByCountry() (map[string]int64, error)
}
