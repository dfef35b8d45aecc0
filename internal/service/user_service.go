package service

import (
	"errors"

	"hfrat-service/internal/model"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// FacilityDescriptor identifies a facility by its uniqueness triple, as
// supplied by reporter registration (hospital_name/country/city).
type FacilityDescriptor struct {
	Name    string
	Country string
	City    string
}

func (d *FacilityDescriptor) empty() bool {
	return d == nil || d.Name == ""
}

// CreateUserInput is the input for creating any user. For reporters a
// facility is resolved from FacilityID (must exist) or from Hospital
// (get-or-create); monitors and administrators must supply neither.
type CreateUserInput struct {
	Username string
	Password string
	Role     string
	// FacilityID references an existing facility, checked for existence.
	FacilityID *uint
	// Hospital resolves to an existing facility or creates one.
	Hospital *FacilityDescriptor
}

// UpdateUserInput is a partial patch for an existing user. Nil fields are
// left untouched.
type UpdateUserInput struct {
	Username   *string
	Password   *string
	Role       *string
	FacilityID *uint
	Hospital   *FacilityDescriptor
}

// UserService enforces the identity invariants: the role/facility pairing,
// unique usernames, the self-deletion guard, and clearing of weak setting
// references on delete.
type UserService struct {
	users      model.UserRepository
	facilities model.FacilityRepository
	settings   model.SettingRepository
	logger     *zap.Logger
}

func NewUserService(users model.UserRepository, facilities model.FacilityRepository, settings model.SettingRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, facilities: facilities, settings: settings, logger: logger}
}

// Create validates input, resolves the reporter facility, and persists the
// user. No partial write happens: facility resolution precedes the insert
// and a failed insert leaves only the (idempotent) facility row behind.
func (s *UserService) Create(in CreateUserInput) (*model.User, error) {
	if err := validateCredentials(in.Username, in.Password); err != nil {
		return nil, err
	}

	var facilityID *uint
	switch in.Role {
	case model.RoleReporter:
		id, err := s.resolveFacility(in.FacilityID, in.Hospital)
		if err != nil {
			return nil, err
		}
		facilityID = id
	case model.RoleMonitor, model.RoleAdministrator:
		if in.FacilityID != nil || !in.Hospital.empty() {
			return nil, NewValidationError("facility_id", "This role must not be assigned to a facility.")
		}
	default:
		return nil, NewValidationError("role", "Role must be one of REPORTER, MONITOR, ADMIN.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := model.NewUser(in.Username, string(hash), in.Role, facilityID)
	if err != nil {
		return nil, roleFacilityValidation(err)
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, NewValidationError("username", "A user with that username already exists.")
		}
		return nil, err
	}

	s.logger.Info("user created",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", user.Role))
	return s.users.GetByID(user.ID)
}

// Update applies a partial patch. A role change re-validates the
// role/facility invariant: moving to REPORTER requires a resolvable
// facility (explicit, descriptor, or the one already assigned); moving
// away from REPORTER clears the facility unconditionally.
func (s *UserService) Update(id uint, patch UpdateUserInput) (*model.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil {
		if *patch.Username == "" {
			return nil, NewValidationError("username", "Username must not be blank.")
		}
		user.Username = *patch.Username
	}
	if patch.Password != nil {
		if len(*patch.Password) < minPasswordLength {
			return nil, NewValidationError("password", "Password must be at least 6 characters.")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	role := user.Role
	if patch.Role != nil {
		role = *patch.Role
	}

	switch role {
	case model.RoleReporter:
		if patch.FacilityID != nil || !patch.Hospital.empty() {
			fid, err := s.resolveFacility(patch.FacilityID, patch.Hospital)
			if err != nil {
				return nil, err
			}
			user.FacilityID = fid
			user.Facility = nil
		}
		if user.FacilityID == nil {
			return nil, NewValidationError("facility", "Reporters must be assigned to a facility.")
		}
	case model.RoleMonitor, model.RoleAdministrator:
		user.FacilityID = nil
		user.Facility = nil
	default:
		return nil, NewValidationError("role", "Role must be one of REPORTER, MONITOR, ADMIN.")
	}
	user.Role = role

	if err := user.CheckRoleFacility(); err != nil {
		return nil, roleFacilityValidation(err)
	}

	if err := s.users.Update(user); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, NewValidationError("username", "A user with that username already exists.")
		}
		return nil, err
	}

	s.logger.Info("user updated", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return s.users.GetByID(user.ID)
}

// Delete removes a user. Self-deletion is refused; settings authored by
// the user keep existing with their updated_by reference cleared.
func (s *UserService) Delete(id, actingUserID uint) error {
	if id == actingUserID {
		return ErrSelfDelete
	}
	if _, err := s.users.GetByID(id); err != nil {
		return err
	}
	if err := s.settings.ClearUpdatedBy(id); err != nil {
		return err
	}
	if err := s.users.Delete(id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Uint("user_id", id), zap.Uint("deleted_by", actingUserID))
	return nil
}

// Get loads a single user with its facility.
func (s *UserService) Get(id uint) (*model.User, error) {
	return s.users.GetByID(id)
}

// List returns all users ordered by username.
func (s *UserService) List() ([]*model.User, error) {
	return s.users.List()
}

// Authenticate verifies a username/password pair.
func (s *UserService) Authenticate(username, password string) (*model.User, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, model.ErrNotFound
	}
	return user, nil
}

func (s *UserService) resolveFacility(facilityID *uint, hospital *FacilityDescriptor) (*uint, error) {
	if facilityID != nil {
		if _, err := s.facilities.GetByID(*facilityID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return nil, NewValidationError("facility_id", "Facility not found.")
			}
			return nil, err
		}
		return facilityID, nil
	}
	if hospital.empty() {
		return nil, NewValidationError("facility", "Reporters must be assigned to a facility.").
			Add("hospital_name", "Provide hospital_name, country and city for reporter accounts.")
	}
	country := hospital.Country
	if country == "" {
		country = "Unknown"
	}
	city := hospital.City
	if city == "" {
		city = "Unknown"
	}
	facility, err := s.facilities.GetOrCreate(hospital.Name, country, city)
	if err != nil {
		return nil, err
	}
	return &facility.ID, nil
}

func validateCredentials(username, password string) error {
	ve := &ValidationError{}
	if username == "" {
		ve.Add("username", "Username must not be blank.")
	}
	if len(password) < minPasswordLength {
		ve.Add("password", "Password must be at least 6 characters.")
	}
	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}

func roleFacilityValidation(err error) error {
	switch {
	case errors.Is(err, model.ErrReporterNeedsFacility):
		return NewValidationError("facility", "Reporters must be assigned to a facility.")
	case errors.Is(err, model.ErrFacilityNotAllowedRole):
		return NewValidationError("facility_id", "This role must not be assigned to a facility.")
	case errors.Is(err, model.ErrInvalidRole):
		return NewValidationError("role", "Role must be one of REPORTER, MONITOR, ADMIN.")
	default:
		return err
	}
}
