package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/smartcampus/hub/internal/domain"
	"github.com/smartcampus/hub/internal/model"
)

// TicketRepo provides CRUD operations for maintenance tickets.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

const ticketColumns = `id, title, facility_id, facility_name, location, category, description,
	priority, status, reported_by, reported_by_name, assigned_to, assigned_to_name,
	contact_email, contact_phone, attachment_urls, resolution_notes, rejection_reason,
	created_at, updated_at, resolved_at, closed_at`

func scanTicket(row interface{ Scan(...any) error }) (*model.Ticket, error) {
	var (
		t            model.Ticket
		facilityID   sql.NullInt64
		facilityName sql.NullString
		assignedTo   sql.NullInt64
		assignedName sql.NullString
		attachments  sql.NullString
		notes        sql.NullString
		rejReason    sql.NullString
		resolvedAt   sql.NullTime
		closedAt     sql.NullTime
	)
	err := row.Scan(
		&t.ID, &t.Title, &facilityID, &facilityName, &t.Location, &t.Category,
		&t.Description, &t.Priority, &t.Status, &t.ReportedBy, &t.ReportedByName,
		&assignedTo, &assignedName, &t.ContactEmail, &t.ContactPhone, &attachments,
		&notes, &rejReason, &t.CreatedAt, &t.UpdatedAt, &resolvedAt, &closedAt,
	)
	if err != nil {
		return nil, err
	}
	if facilityID.Valid {
		id := uint64(facilityID.Int64)
		t.FacilityID = &id
	}
	t.FacilityName = facilityName.String
	if assignedTo.Valid {
		id := uint64(assignedTo.Int64)
		t.AssignedTo = &id
	}
	t.AssignedToName = assignedName.String
	if err := unmarshalJSON(attachments, &t.AttachmentURLs); err != nil {
		return nil, err
	}
	t.ResolutionNotes = notes.String
	t.RejectionReason = rejReason.String
	if resolvedAt.Valid {
		ts := resolvedAt.Time
		t.ResolvedAt = &ts
	}
	if closedAt.Valid {
		ts := closedAt.Time
		t.ClosedAt = &ts
	}
	return &t, nil
}

// Create inserts a ticket and populates its generated ID.
func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	attachments, err := marshalJSON(t.AttachmentURLs)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tickets (title, facility_id, facility_name, location, category, description,
		   priority, status, reported_by, reported_by_name, contact_email, contact_phone,
		   attachment_urls, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		t.Title, t.FacilityID, t.FacilityName, t.Location, t.Category, t.Description,
		t.Priority, t.Status, t.ReportedBy, t.ReportedByName, t.ContactEmail, t.ContactPhone,
		attachments, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// Update rewrites every mutable column of a ticket.
func (r *TicketRepo) Update(ctx context.Context, t *model.Ticket) error {
	attachments, err := marshalJSON(t.AttachmentURLs)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET title=?, facility_id=?, facility_name=?, location=?, category=?,
		   description=?, priority=?, status=?, assigned_to=?, assigned_to_name=?,
		   contact_email=?, contact_phone=?, attachment_urls=?, resolution_notes=?,
		   rejection_reason=?, updated_at=?, resolved_at=?, closed_at=?
		 WHERE id = ?`,
		t.Title, t.FacilityID, t.FacilityName, t.Location, t.Category,
		t.Description, t.Priority, t.Status, t.AssignedTo, t.AssignedToName,
		t.ContactEmail, t.ContactPhone, attachments, t.ResolutionNotes,
		t.RejectionReason, t.UpdatedAt, t.ResolvedAt, t.ClosedAt, t.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: ticket %d", domain.ErrNotFound, t.ID)
	}
	return nil
}

// Delete removes a ticket by id.  Comments referencing it cascade at the
// schema level.
func (r *TicketRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tickets WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: ticket %d", domain.ErrNotFound, id)
	}
	return nil
}

// GetByID fetches a ticket by id.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+ticketColumns+" FROM tickets WHERE id = ? LIMIT 1", id)
	t, err := scanTicket(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: ticket %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TicketRepo) list(ctx context.Context, where string, args ...any) ([]model.Ticket, error) {
	q := "SELECT " + ticketColumns + " FROM tickets"
	if where != "" {
		q += " WHERE " + where
	}
	q += " ORDER BY created_at DESC, id DESC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// ListAll returns every ticket, newest first.
func (r *TicketRepo) ListAll(ctx context.Context) ([]model.Ticket, error) {
	return r.list(ctx, "")
}

// ListByReporter returns tickets reported by the given user.
func (r *TicketRepo) ListByReporter(ctx context.Context, userID uint64) ([]model.Ticket, error) {
	return r.list(ctx, "reported_by = ?", userID)
}

// ListByAssignee returns tickets assigned to the given user.
func (r *TicketRepo) ListByAssignee(ctx context.Context, userID uint64) ([]model.Ticket, error) {
	return r.list(ctx, "assigned_to = ?", userID)
}

// ListByStatus returns tickets in the given status.
func (r *TicketRepo) ListByStatus(ctx context.Context, status string) ([]model.Ticket, error) {
	return r.list(ctx, "status = ?", status)
}
