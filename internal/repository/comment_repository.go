package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/smartcampus/hub/internal/domain"
	"github.com/smartcampus/hub/internal/model"
)

// CommentRepo provides CRUD operations for ticket comments.
type CommentRepo struct {
	db *sql.DB
}

// NewCommentRepo returns a CommentRepo bound to the given database.
func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{db: db} }

const commentColumns = `id, ticket_id, content, author_id, author_name, author_role,
	edited, created_at, updated_at`

func scanComment(row interface{ Scan(...any) error }) (*model.Comment, error) {
	var c model.Comment
	err := row.Scan(
		&c.ID, &c.TicketID, &c.Content, &c.AuthorID, &c.AuthorName, &c.AuthorRole,
		&c.Edited, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a comment and populates its generated ID.
func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (ticket_id, content, author_id, author_name, author_role,
		   edited, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?)`,
		c.TicketID, c.Content, c.AuthorID, c.AuthorName, c.AuthorRole,
		c.Edited, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// Update rewrites a comment's content and edit flag.
func (r *CommentRepo) Update(ctx context.Context, c *model.Comment) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE comments SET content = ?, edited = ?, updated_at = ? WHERE id = ?",
		c.Content, c.Edited, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: comment %d", domain.ErrNotFound, c.ID)
	}
	return nil
}

// Delete removes a comment by id.
func (r *CommentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: comment %d", domain.ErrNotFound, id)
	}
	return nil
}

// GetByID fetches a comment by id.
func (r *CommentRepo) GetByID(ctx context.Context, id uint64) (*model.Comment, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE id = ? LIMIT 1", id)
	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: comment %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListByTicket returns a ticket's comments newest first.
func (r *CommentRepo) ListByTicket(ctx context.Context, ticketID uint64) ([]model.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE ticket_id = ? ORDER BY created_at DESC, id DESC",
		ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}
