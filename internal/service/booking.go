// Package service implements the application's business rules on top of
// the port interfaces: the reservation manager, the ticket workflow, the
// comment thread, the notification sink and the facility catalog.
package service

import (
	"context"
	"fmt"
	"log"

	"github.com/smartcampus/hub/internal/domain"
	"github.com/smartcampus/hub/internal/model"
	"github.com/smartcampus/hub/internal/queue"
	"github.com/smartcampus/hub/internal/service/ports"
)

// BookingService is the reservation manager.  It validates booking
// requests against the facility catalog, delegates the conflict check to
// the repository (which runs it atomically with the insert), and drives
// the pending → approved/rejected/cancelled lifecycle.
type BookingService struct {
	bookings      ports.BookingRepo
	facilities    ports.FacilityRepo
	users         ports.UserReader
	notifications ports.NotificationRepo
	publisher     ports.EventPublisher
	clock         Clock
}

// NewBookingService wires a BookingService.  publisher may be nil when
// no broker is configured.
func NewBookingService(bookings ports.BookingRepo, facilities ports.FacilityRepo, users ports.UserReader, notifications ports.NotificationRepo, publisher ports.EventPublisher, clock Clock) *BookingService {
	if clock == nil {
		clock = SystemClock()
	}
	return &BookingService{
		bookings:      bookings,
		facilities:    facilities,
		users:         users,
		notifications: notifications,
		publisher:     publisher,
		clock:         clock,
	}
}

// CreateBookingInput carries the caller-supplied fields of a new booking.
type CreateBookingInput struct {
	FacilityID        uint64
	UserID            uint64
	Date              string
	StartTime         string
	EndTime           string
	Purpose           string
	ExpectedAttendees int
}

// Create validates and persists a new booking with status PENDING.
// It fails with domain.ErrNotFound when the facility is absent,
// domain.ErrInvalidState when the facility is not active,
// domain.ErrInvalidArgument on malformed or inverted time fields, and
// domain.ErrConflict when the interval overlaps an active booking.
// No notification is emitted on creation.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*model.Booking, error) {
	facility, err := s.facilities.GetByID(ctx, in.FacilityID)
	if err != nil {
		return nil, err
	}
	// the availability check precedes interval validation: an inactive
	// facility rejects the request whatever the interval looks like
	if facility.Status != model.FacilityActive {
		return nil, fmt.Errorf("%w: facility is not available for booking", domain.ErrInvalidState)
	}

	if !model.ValidDate(in.Date) {
		return nil, fmt.Errorf("%w: date must use YYYY-MM-DD", domain.ErrInvalidArgument)
	}
	if !model.ValidClock(in.StartTime) || !model.ValidClock(in.EndTime) {
		return nil, fmt.Errorf("%w: times must use HH:MM", domain.ErrInvalidArgument)
	}
	if in.StartTime >= in.EndTime {
		return nil, fmt.Errorf("%w: start time must be before end time", domain.ErrInvalidArgument)
	}

	user, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	booking := &model.Booking{
		FacilityID:        facility.ID,
		FacilityName:      facility.Name,
		UserID:            user.ID,
		UserName:          user.Name,
		Date:              in.Date,
		StartTime:         in.StartTime,
		EndTime:           in.EndTime,
		Purpose:           in.Purpose,
		ExpectedAttendees: in.ExpectedAttendees,
		Status:            model.BookingPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.bookings.CreateWithConflictCheck(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Approve transitions a pending booking to APPROVED, records the
// reviewer, and notifies the requester.  Only pending bookings can be
// approved; the repository enforces this atomically, and a lost race
// surfaces as domain.ErrInvalidState.
func (s *BookingService) Approve(ctx context.Context, bookingID, reviewerID uint64) (*model.Booking, error) {
	ok, err := s.bookings.Approve(ctx, bookingID, reviewerID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: only pending bookings can be approved", domain.ErrInvalidState)
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, &model.Notification{
		UserID:    booking.UserID,
		Title:     "Booking Approved",
		Message:   fmt.Sprintf("Your booking for %s on %s has been approved.", booking.FacilityName, booking.Date),
		Type:      model.NotifBookingApproved,
		Reference: model.BookingRef(booking.ID),
	})
	s.publish(ctx, queue.KeyBookingApproved, queue.BookingEventFrom(booking))
	return booking, nil
}

// Reject transitions a pending booking to REJECTED with a reason and
// notifies the requester, including the reason text verbatim.
func (s *BookingService) Reject(ctx context.Context, bookingID, reviewerID uint64, reason string) (*model.Booking, error) {
	ok, err := s.bookings.Reject(ctx, bookingID, reviewerID, reason, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: only pending bookings can be rejected", domain.ErrInvalidState)
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, &model.Notification{
		UserID:    booking.UserID,
		Title:     "Booking Rejected",
		Message:   fmt.Sprintf("Your booking for %s has been rejected. Reason: %s", booking.FacilityName, reason),
		Type:      model.NotifBookingRejected,
		Reference: model.BookingRef(booking.ID),
	})
	s.publish(ctx, queue.KeyBookingRejected, queue.BookingEventFrom(booking))
	return booking, nil
}

// Cancel transitions a pending or approved booking to CANCELLED.
// Cancelling twice fails, as does cancelling a rejected booking.  No
// notification is emitted on this path.
func (s *BookingService) Cancel(ctx context.Context, bookingID uint64, reason string) (*model.Booking, error) {
	ok, err := s.bookings.Cancel(ctx, bookingID, reason, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		booking, err := s.bookings.GetByID(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		switch booking.Status {
		case model.BookingCancelled:
			return nil, fmt.Errorf("%w: booking is already cancelled", domain.ErrInvalidState)
		case model.BookingRejected:
			return nil, fmt.Errorf("%w: cannot cancel a rejected booking", domain.ErrInvalidState)
		default:
			return nil, fmt.Errorf("%w: booking cannot be cancelled", domain.ErrInvalidState)
		}
	}
	return s.bookings.GetByID(ctx, bookingID)
}

// GetByID returns a single booking or domain.ErrNotFound.
func (s *BookingService) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// ListByUser returns the bookings created by a user, newest first.
func (s *BookingService) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// ListByFacility returns the bookings against a facility.
func (s *BookingService) ListByFacility(ctx context.Context, facilityID uint64) ([]model.Booking, error) {
	return s.bookings.ListByFacility(ctx, facilityID)
}

// ListByStatus returns the bookings in the given status.  The status
// string must parse to a known value.
func (s *BookingService) ListByStatus(ctx context.Context, status string) ([]model.Booking, error) {
	switch status {
	case model.BookingPending, model.BookingApproved, model.BookingRejected, model.BookingCancelled:
		return s.bookings.ListByStatus(ctx, status)
	}
	return nil, fmt.Errorf("%w: unknown booking status %q", domain.ErrInvalidArgument, status)
}

// ListAll returns every booking.
func (s *BookingService) ListAll(ctx context.Context) ([]model.Booking, error) {
	return s.bookings.ListAll(ctx)
}

// notify persists a notification, logging instead of failing: the alert
// is auxiliary to the transition that triggered it.
func (s *BookingService) notify(ctx context.Context, n *model.Notification) {
	n.CreatedAt = s.clock.Now()
	if err := s.notifications.Create(ctx, n); err != nil {
		log.Printf("booking: create notification failed: %v", err)
	}
}

func (s *BookingService) publish(ctx context.Context, key string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, key, event); err != nil {
		log.Printf("booking: publish %s failed: %v", key, err)
	}
}
