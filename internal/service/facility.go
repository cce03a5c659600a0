package service

import (
	"context"
	"fmt"

	"github.com/smartcampus/hub/internal/domain"
	"github.com/smartcampus/hub/internal/model"
	"github.com/smartcampus/hub/internal/service/ports"
)

// FacilityService manages the facility catalog.  Creation and updates
// are administrative; the reservation manager and ticket workflow read
// from it.
type FacilityService struct {
	facilities ports.FacilityRepo
	clock      Clock
}

// NewFacilityService wires a FacilityService.
func NewFacilityService(facilities ports.FacilityRepo, clock Clock) *FacilityService {
	if clock == nil {
		clock = SystemClock()
	}
	return &FacilityService{facilities: facilities, clock: clock}
}

// FacilityInput carries the editable fields of a facility.
type FacilityInput struct {
	Name                string
	Type                string
	Capacity            int
	Location            string
	Building            string
	Floor               string
	Description         string
	Amenities           []string
	ImageURLs           []string
	Status              string
	AvailabilityWindows []model.AvailabilityWindow
}

func (in *FacilityInput) normalize() (ftype, status string, err error) {
	ftype, ok := model.ParseFacilityType(in.Type)
	if !ok {
		return "", "", fmt.Errorf("%w: unknown facility type %q", domain.ErrInvalidArgument, in.Type)
	}
	status = model.FacilityActive
	if in.Status != "" {
		status, ok = model.ParseFacilityStatus(in.Status)
		if !ok {
			return "", "", fmt.Errorf("%w: unknown facility status %q", domain.ErrInvalidArgument, in.Status)
		}
	}
	return ftype, status, nil
}

// Create persists a new facility.
func (s *FacilityService) Create(ctx context.Context, in FacilityInput, createdBy uint64) (*model.Facility, error) {
	ftype, status, err := in.normalize()
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	facility := &model.Facility{
		Name:                in.Name,
		Type:                ftype,
		Capacity:            in.Capacity,
		Location:            in.Location,
		Building:            in.Building,
		Floor:               in.Floor,
		Description:         in.Description,
		Amenities:           in.Amenities,
		ImageURLs:           in.ImageURLs,
		Status:              status,
		AvailabilityWindows: in.AvailabilityWindows,
		CreatedBy:           createdBy,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.facilities.Create(ctx, facility); err != nil {
		return nil, err
	}
	return facility, nil
}

// Update replaces a facility's editable fields.
func (s *FacilityService) Update(ctx context.Context, id uint64, in FacilityInput) (*model.Facility, error) {
	ftype, status, err := in.normalize()
	if err != nil {
		return nil, err
	}
	facility, err := s.facilities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	facility.Name = in.Name
	facility.Type = ftype
	facility.Capacity = in.Capacity
	facility.Location = in.Location
	facility.Building = in.Building
	facility.Floor = in.Floor
	facility.Description = in.Description
	facility.Amenities = in.Amenities
	facility.ImageURLs = in.ImageURLs
	facility.Status = status
	facility.AvailabilityWindows = in.AvailabilityWindows
	facility.UpdatedAt = s.clock.Now()
	if err := s.facilities.Update(ctx, facility); err != nil {
		return nil, err
	}
	return facility, nil
}

// Delete removes a facility.  Tickets keep their rows with the facility
// reference cleared; a facility with bookings cannot be deleted.
func (s *FacilityService) Delete(ctx context.Context, id uint64) error {
	return s.facilities.Delete(ctx, id)
}

// GetByID returns a single facility or domain.ErrNotFound.
func (s *FacilityService) GetByID(ctx context.Context, id uint64) (*model.Facility, error) {
	return s.facilities.GetByID(ctx, id)
}

// ListAll returns the whole catalog.
func (s *FacilityService) ListAll(ctx context.Context) ([]model.Facility, error) {
	return s.facilities.ListAll(ctx)
}

// Search filters the catalog by type, status and a free-text query over
// name, location and building.  Empty filters match everything.
func (s *FacilityService) Search(ctx context.Context, ftype, status, query string) ([]model.Facility, error) {
	if ftype != "" {
		parsed, ok := model.ParseFacilityType(ftype)
		if !ok {
			return nil, fmt.Errorf("%w: unknown facility type %q", domain.ErrInvalidArgument, ftype)
		}
		ftype = parsed
	}
	if status != "" {
		parsed, ok := model.ParseFacilityStatus(status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown facility status %q", domain.ErrInvalidArgument, status)
		}
		status = parsed
	}
	return s.facilities.Search(ctx, ftype, status, query)
}
