package ports

import (
	"context"

	"github.com/smartcampus/hub/internal/model"
)

// FacilityRepo provides persistence for the facility catalog.
// GetByID and Delete return domain.ErrNotFound when no row matches.
type FacilityRepo interface {
	Create(ctx context.Context, f *model.Facility) error
	Update(ctx context.Context, f *model.Facility) error
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (*model.Facility, error)
	ListAll(ctx context.Context) ([]model.Facility, error)
	Search(ctx context.Context, ftype, status, query string) ([]model.Facility, error)
}
