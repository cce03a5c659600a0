package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/smartcampus/hub/internal/domain"
	"github.com/smartcampus/hub/internal/model"
)

// NotificationRepo provides persistence for user notifications.  Every
// per-row operation is scoped by user_id so one user can never read or
// flip another user's notifications.
type NotificationRepo struct {
	db *sql.DB
}

// NewNotificationRepo returns a NotificationRepo bound to the given database.
func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{db: db} }

const notificationColumns = `id, user_id, title, message, type, ref_kind, ref_id, is_read, created_at`

func scanNotification(row interface{ Scan(...any) error }) (*model.Notification, error) {
	var (
		n       model.Notification
		refKind sql.NullString
		refID   sql.NullInt64
	)
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type,
		&refKind, &refID, &n.Read, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	if refKind.Valid {
		n.Reference = model.Reference{Kind: refKind.String, ID: uint64(refID.Int64)}
	}
	return &n, nil
}

// Create inserts a notification and populates its generated ID.
func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	var (
		refKind any
		refID   any
	)
	if n.Reference.Kind != "" {
		refKind = n.Reference.Kind
		refID = n.Reference.ID
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (user_id, title, message, type, ref_kind, ref_id, is_read, created_at)
		 VALUES (?,?,?,?,?,?,?,?)`,
		n.UserID, n.Title, n.Message, n.Type, refKind, refID, n.Read, n.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return nil
}

func (r *NotificationRepo) list(ctx context.Context, where string, args ...any) ([]model.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE "+where+" ORDER BY created_at DESC, id DESC",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

// ListByUser returns every notification for the given user, newest first.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Notification, error) {
	return r.list(ctx, "user_id = ?", userID)
}

// ListUnread returns the user's unread notifications, newest first.
func (r *NotificationRepo) ListUnread(ctx context.Context, userID uint64) ([]model.Notification, error) {
	return r.list(ctx, "user_id = ? AND is_read = 0", userID)
}

// CountUnread returns the number of unread notifications for the user.
func (r *NotificationRepo) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0", userID,
	).Scan(&n)
	return n, err
}

// MarkRead flags a single notification as read.  Marking an
// already-read notification succeeds; only a missing row errors.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM notifications WHERE id = ? AND user_id = ?", id, userID,
		).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return fmt.Errorf("%w: notification %d", domain.ErrNotFound, id)
		}
	}
	return nil
}

// MarkAllRead flags every unread notification for the user and reports
// how many rows flipped.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0", userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes a notification owned by the user.
func (r *NotificationRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM notifications WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: notification %d", domain.ErrNotFound, id)
	}
	return nil
}
