// Package mocks provides testify mocks for the service port interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/smartcampus/hub/internal/model"
)

// BookingRepo mocks ports.BookingRepo.
type BookingRepo struct{ mock.Mock }

func (m *BookingRepo) CreateWithConflictCheck(ctx context.Context, b *model.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*model.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Booking); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BookingRepo) ListByFacility(ctx context.Context, facilityID uint64) ([]model.Booking, error) {
	args := m.Called(ctx, facilityID)
	if v, ok := args.Get(0).([]model.Booking); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BookingRepo) ListByStatus(ctx context.Context, status string) ([]model.Booking, error) {
	args := m.Called(ctx, status)
	if v, ok := args.Get(0).([]model.Booking); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Booking); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BookingRepo) Approve(ctx context.Context, id, reviewerID uint64, now time.Time) (bool, error) {
	args := m.Called(ctx, id, reviewerID, now)
	return args.Bool(0), args.Error(1)
}

func (m *BookingRepo) Reject(ctx context.Context, id, reviewerID uint64, reason string, now time.Time) (bool, error) {
	args := m.Called(ctx, id, reviewerID, reason, now)
	return args.Bool(0), args.Error(1)
}

func (m *BookingRepo) Cancel(ctx context.Context, id uint64, reason string, now time.Time) (bool, error) {
	args := m.Called(ctx, id, reason, now)
	return args.Bool(0), args.Error(1)
}

// FacilityRepo mocks ports.FacilityRepo.
type FacilityRepo struct{ mock.Mock }

func (m *FacilityRepo) Create(ctx context.Context, f *model.Facility) error {
	return m.Called(ctx, f).Error(0)
}

func (m *FacilityRepo) Update(ctx context.Context, f *model.Facility) error {
	return m.Called(ctx, f).Error(0)
}

func (m *FacilityRepo) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *FacilityRepo) GetByID(ctx context.Context, id uint64) (*model.Facility, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).(*model.Facility); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FacilityRepo) ListAll(ctx context.Context) ([]model.Facility, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Facility); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FacilityRepo) Search(ctx context.Context, ftype, status, query string) ([]model.Facility, error) {
	args := m.Called(ctx, ftype, status, query)
	if v, ok := args.Get(0).([]model.Facility); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// TicketRepo mocks ports.TicketRepo.
type TicketRepo struct{ mock.Mock }

func (m *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *TicketRepo) Update(ctx context.Context, t *model.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *TicketRepo) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *TicketRepo) GetByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*model.Ticket); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TicketRepo) ListAll(ctx context.Context) ([]model.Ticket, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Ticket); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TicketRepo) ListByReporter(ctx context.Context, userID uint64) ([]model.Ticket, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Ticket); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TicketRepo) ListByAssignee(ctx context.Context, userID uint64) ([]model.Ticket, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Ticket); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TicketRepo) ListByStatus(ctx context.Context, status string) ([]model.Ticket, error) {
	args := m.Called(ctx, status)
	if v, ok := args.Get(0).([]model.Ticket); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// CommentRepo mocks ports.CommentRepo.
type CommentRepo struct{ mock.Mock }

func (m *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CommentRepo) Update(ctx context.Context, c *model.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CommentRepo) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CommentRepo) GetByID(ctx context.Context, id uint64) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*model.Comment); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CommentRepo) ListByTicket(ctx context.Context, ticketID uint64) ([]model.Comment, error) {
	args := m.Called(ctx, ticketID)
	if v, ok := args.Get(0).([]model.Comment); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// NotificationRepo mocks ports.NotificationRepo.
type NotificationRepo struct{ mock.Mock }

func (m *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *NotificationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Notification, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Notification); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NotificationRepo) ListUnread(ctx context.Context, userID uint64) ([]model.Notification, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Notification); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NotificationRepo) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepo) MarkRead(ctx context.Context, id, userID uint64) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *NotificationRepo) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepo) Delete(ctx context.Context, id, userID uint64) error {
	return m.Called(ctx, id, userID).Error(0)
}

// UserReader mocks ports.UserReader.
type UserReader struct{ mock.Mock }

func (m *UserReader) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// EventPublisher mocks ports.EventPublisher.
type EventPublisher struct{ mock.Mock }

func (m *EventPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	return m.Called(ctx, routingKey, event).Error(0)
}
