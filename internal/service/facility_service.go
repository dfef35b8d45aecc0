package service

import (
	"errors"

	"hfrat-service/internal/model"

	"go.uber.org/zap"
)

// FacilityService manages the facility registry. Facilities are never
// deleted through the public surface; users reference them with delete
// protection and reports cascade.
type FacilityService struct {
	facilities model.FacilityRepository
	logger     *zap.Logger
}

func NewFacilityService(facilities model.FacilityRepository, logger *zap.Logger) *FacilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FacilityService{facilities: facilities, logger: logger}
}

// List returns all facilities ordered by name.
func (s *FacilityService) List() ([]*model.Facility, error) {
	return s.facilities.List()
}

// Create adds a facility via the explicit administrator path: a duplicate
// identity triple is an error here, unlike reporter registration which
// uses get-or-create.
func (s *FacilityService) Create(name, country, city, locationDetail string) (*model.Facility, error) {
	if name == "" {
		return nil, NewValidationError("facility_name", "Facility name must not be blank.")
	}
	if country == "" {
		country = "Unknown"
	}
	if city == "" {
		city = "Unknown"
	}

	facility := &model.Facility{
		Name:           name,
		Country:        country,
		City:           city,
		LocationDetail: locationDetail,
	}
	if err := s.facilities.Create(facility); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, NewValidationError("facility_name", "A facility with this name, country and city already exists.")
		}
		return nil, err
	}

	s.logger.Info("facility created",
		zap.Uint("facility_id", facility.ID),
		zap.String("name", facility.Name),
		zap.String("country", facility.Country))
	return facility, nil
}
