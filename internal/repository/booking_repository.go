// Package repository implements the persistence ports on top of MySQL
// using database/sql.  Each repository owns the SQL for one table and
// translates driver-level conditions into the domain sentinel errors the
// service layer matches on, so nothing above this package sees
// sql.ErrNoRows.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/smartcampus/hub/internal/domain"
	"github.com/smartcampus/hub/internal/model"
)

// BookingRepo provides CRUD and review operations for bookings.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, facility_id, facility_name, user_id, user_name, date,
	start_time, end_time, purpose, expected_attendees, status, reviewed_by,
	rejection_reason, cancellation_reason, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var (
		b          model.Booking
		reviewedBy sql.NullInt64
		rejReason  sql.NullString
		canReason  sql.NullString
	)
	err := row.Scan(
		&b.ID, &b.FacilityID, &b.FacilityName, &b.UserID, &b.UserName, &b.Date,
		&b.StartTime, &b.EndTime, &b.Purpose, &b.ExpectedAttendees, &b.Status,
		&reviewedBy, &rejReason, &canReason, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if reviewedBy.Valid {
		id := uint64(reviewedBy.Int64)
		b.ReviewedBy = &id
	}
	b.RejectionReason = rejReason.String
	b.CancellationReason = canReason.String
	return &b, nil
}

// CreateWithConflictCheck inserts a booking only if its half-open
// [start, end) interval does not overlap any PENDING or APPROVED booking
// for the same facility and date.  The facility row is locked with
// SELECT ... FOR UPDATE so two concurrent creates for the same facility
// serialize; without the lock both overlap queries could pass before
// either insert lands.  Returns domain.ErrConflict on overlap and
// domain.ErrNotFound when the facility row disappeared underneath the
// caller.
func (r *BookingRepo) CreateWithConflictCheck(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var facilityID uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM facilities WHERE id = ? FOR UPDATE", b.FacilityID,
	).Scan(&facilityID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: facility %d", domain.ErrNotFound, b.FacilityID)
	}
	if err != nil {
		return err
	}

	var overlapping int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings
		 WHERE facility_id = ? AND date = ?
		   AND status IN ('PENDING','APPROVED')
		   AND start_time < ? AND end_time > ?`,
		b.FacilityID, b.Date, b.EndTime, b.StartTime,
	).Scan(&overlapping)
	if err != nil {
		return err
	}
	if overlapping > 0 {
		return fmt.Errorf("%w: facility %d is already booked on %s between %s and %s",
			domain.ErrConflict, b.FacilityID, b.Date, b.StartTime, b.EndTime)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (facility_id, facility_name, user_id, user_name, date,
		   start_time, end_time, purpose, expected_attendees, status, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.FacilityID, b.FacilityName, b.UserID, b.UserName, b.Date,
		b.StartTime, b.EndTime, b.Purpose, b.ExpectedAttendees, b.Status,
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return tx.Commit()
}

// GetByID fetches a booking by id.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id = ? LIMIT 1", id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: booking %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BookingRepo) list(ctx context.Context, where string, args ...any) ([]model.Booking, error) {
	q := "SELECT " + bookingColumns + " FROM bookings"
	if where != "" {
		q += " WHERE " + where
	}
	q += " ORDER BY date DESC, start_time DESC, id DESC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// ListByUser returns every booking created by the given user.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return r.list(ctx, "user_id = ?", userID)
}

// ListByFacility returns every booking for the given facility.
func (r *BookingRepo) ListByFacility(ctx context.Context, facilityID uint64) ([]model.Booking, error) {
	return r.list(ctx, "facility_id = ?", facilityID)
}

// ListByStatus returns every booking in the given status.
func (r *BookingRepo) ListByStatus(ctx context.Context, status string) ([]model.Booking, error) {
	return r.list(ctx, "status = ?", status)
}

// ListAll returns every booking.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	return r.list(ctx, "")
}

// Approve flips a PENDING booking to APPROVED.  The status condition in
// the UPDATE makes the transition a compare-and-set: false means no
// pending row with that id existed, and the caller decides whether that
// was a missing booking or a booking past review.
func (r *BookingRepo) Approve(ctx context.Context, id, reviewerID uint64, now time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status = 'APPROVED', reviewed_by = ?, updated_at = ? WHERE id = ? AND status = 'PENDING'",
		reviewerID, now, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Reject flips a PENDING booking to REJECTED, recording the reason.
func (r *BookingRepo) Reject(ctx context.Context, id, reviewerID uint64, reason string, now time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status = 'REJECTED', reviewed_by = ?, rejection_reason = ?, updated_at = ? WHERE id = ? AND status = 'PENDING'",
		reviewerID, reason, now, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Cancel flips a PENDING or APPROVED booking to CANCELLED.
func (r *BookingRepo) Cancel(ctx context.Context, id uint64, reason string, now time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status = 'CANCELLED', cancellation_reason = ?, updated_at = ? WHERE id = ? AND status IN ('PENDING','APPROVED')",
		reason, now, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
