package service

import (
	"context"

	"github.com/smartcampus/hub/internal/model"
	"github.com/smartcampus/hub/internal/service/ports"
)

// NotificationService is the notification sink: a thin layer over the
// repository that stamps creation time and scopes reads and the read
// flag to the owning user.
type NotificationService struct {
	notifications ports.NotificationRepo
	clock         Clock
}

// NewNotificationService wires a NotificationService.
func NewNotificationService(notifications ports.NotificationRepo, clock Clock) *NotificationService {
	if clock == nil {
		clock = SystemClock()
	}
	return &NotificationService{notifications: notifications, clock: clock}
}

// Create persists a notification with read = false.
func (s *NotificationService) Create(ctx context.Context, n *model.Notification) error {
	n.Read = false
	n.CreatedAt = s.clock.Now()
	return s.notifications.Create(ctx, n)
}

// ListForUser returns all notifications for a user, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID uint64) ([]model.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

// ListUnread returns the user's unread notifications.
func (s *NotificationService) ListUnread(ctx context.Context, userID uint64) ([]model.Notification, error) {
	return s.notifications.ListUnread(ctx, userID)
}

// CountUnread returns the number of unread notifications for a user.
func (s *NotificationService) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	return s.notifications.CountUnread(ctx, userID)
}

// MarkRead flips the read flag on one notification, failing with
// domain.ErrNotFound when it does not exist for this user.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint64) error {
	return s.notifications.MarkRead(ctx, id, userID)
}

// MarkAllRead flips the read flag on the user's currently-unread set
// and reports how many rows changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}

// Delete removes one of the user's notifications.
func (s *NotificationService) Delete(ctx context.Context, id, userID uint64) error {
	return s.notifications.Delete(ctx, id, userID)
}
