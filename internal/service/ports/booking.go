// Package ports declares the persistence and messaging interfaces the
// service layer depends on.  The concrete implementations live in the
// repository and queue packages; tests substitute mocks.
package ports

import (
	"context"
	"time"

	"github.com/smartcampus/hub/internal/model"
)

// BookingRepo provides persistence for bookings.
//
// CreateWithConflictCheck must run the overlap query and the insert in a
// single transaction that locks the facility row, so that two concurrent
// creates for the same facility serialize and at most one of a pair of
// overlapping requests succeeds.  It returns domain.ErrConflict when the
// requested interval overlaps an active booking and domain.ErrNotFound
// when the facility row is gone.
//
// Approve, Reject and Cancel are single-statement compare-and-set
// updates conditioned on the current status; they report false when no
// row matched, leaving the caller to distinguish a missing booking from
// an illegal state.
type BookingRepo interface {
	CreateWithConflictCheck(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error)
	ListByFacility(ctx context.Context, facilityID uint64) ([]model.Booking, error)
	ListByStatus(ctx context.Context, status string) ([]model.Booking, error)
	ListAll(ctx context.Context) ([]model.Booking, error)
	Approve(ctx context.Context, id, reviewerID uint64, now time.Time) (bool, error)
	Reject(ctx context.Context, id, reviewerID uint64, reason string, now time.Time) (bool, error)
	Cancel(ctx context.Context, id uint64, reason string, now time.Time) (bool, error)
}
