package ports

import (
	"context"

	"github.com/smartcampus/hub/internal/model"
)

// CommentRepo provides persistence for ticket comments.  ListByTicket
// returns comments newest first.
type CommentRepo interface {
	Create(ctx context.Context, c *model.Comment) error
	Update(ctx context.Context, c *model.Comment) error
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (*model.Comment, error)
	ListByTicket(ctx context.Context, ticketID uint64) ([]model.Comment, error)
}
