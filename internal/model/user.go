package model

import (
	"errors"
	"time"
)

// User roles. ADMIN is the stored value for administrators.
const (
	RoleReporter      = "REPORTER"
	RoleMonitor       = "MONITOR"
	RoleAdministrator = "ADMIN"
)

// Role/facility pairing violations reported by NewUser and CheckRoleFacility.
var (
	ErrInvalidRole            = errors.New("role must be one of REPORTER, MONITOR, ADMIN")
	ErrReporterNeedsFacility  = errors.New("reporters must be assigned to a facility")
	ErrFacilityNotAllowedRole = errors.New("this role must not be assigned to a facility")
)

// User represents a principal stored in the database. The role/facility
// pairing is enforced three ways: by NewUser, by CheckRoleFacility on
// updates, and by the chk_users_role_facility check constraint.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"type:varchar(150);uniqueIndex;not null"`
	Password    string    `json:"-" gorm:"type:varchar(255);not null"`
	Role        string    `json:"role" gorm:"type:varchar(20);not null;index;check:chk_users_role_facility,(role = 'REPORTER' AND facility_id IS NOT NULL) OR (role IN ('MONITOR','ADMIN') AND facility_id IS NULL)"`
	FacilityID  *uint     `json:"facility_id,omitempty" gorm:"index"`
	Facility    *Facility `json:"facility,omitempty" gorm:"foreignKey:FacilityID;constraint:OnDelete:RESTRICT"`
	IsStaff     bool      `json:"is_staff" gorm:"default:false"`
	IsSuperuser bool      `json:"is_superuser" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewUser constructs a user, rejecting illegal role/facility pairings so
// an invalid user value never exists in the first place.
func NewUser(username, passwordHash, role string, facilityID *uint) (*User, error) {
	u := &User{
		Username:   username,
		Password:   passwordHash,
		Role:       role,
		FacilityID: facilityID,
	}
	if err := u.CheckRoleFacility(); err != nil {
		return nil, err
	}
	return u, nil
}

// CheckRoleFacility re-validates the role/facility pairing after a mutation.
func (u *User) CheckRoleFacility() error {
	switch u.Role {
	case RoleReporter:
		if u.FacilityID == nil {
			return ErrReporterNeedsFacility
		}
	case RoleMonitor, RoleAdministrator:
		if u.FacilityID != nil {
			return ErrFacilityNotAllowedRole
		}
	default:
		return ErrInvalidRole
	}
	return nil
}

// IsAdmin reports whether the user is treated as an administrator. Staff
// and superuser accounts are admitted regardless of the role field.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdministrator || u.IsStaff || u.IsSuperuser
}

// UserRepository defines data access for users
type UserRepository interface {
	Create(u *User) error
	// GetByID loads a user with its facility association.
	GetByID(id uint) (*User, error)
	GetByUsername(username string) (*User, error)
	// List returns all users ordered by username, facilities preloaded.
	List() ([]*User, error)
	Update(u *User) error
	Delete(id uint) error
	Count() (int64, error)
	CountByRole() (map[string]int64, error)
}
