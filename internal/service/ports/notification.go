package ports

import (
	"context"

	"github.com/smartcampus/hub/internal/model"
)

// NotificationRepo provides persistence for user notifications.
// MarkRead returns domain.ErrNotFound when the notification does not
// exist for the given user; MarkAllRead reports how many rows flipped.
type NotificationRepo interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID uint64) ([]model.Notification, error)
	ListUnread(ctx context.Context, userID uint64) ([]model.Notification, error)
	CountUnread(ctx context.Context, userID uint64) (int64, error)
	MarkRead(ctx context.Context, id, userID uint64) error
	MarkAllRead(ctx context.Context, userID uint64) (int64, error)
	Delete(ctx context.Context, id, userID uint64) error
}
