package ports

import (
	"context"

	"github.com/smartcampus/hub/internal/model"
)

// TicketRepo provides persistence for maintenance tickets.  GetByID,
// Update and Delete return domain.ErrNotFound when no row matches.
type TicketRepo interface {
	Create(ctx context.Context, t *model.Ticket) error
	Update(ctx context.Context, t *model.Ticket) error
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (*model.Ticket, error)
	ListAll(ctx context.Context) ([]model.Ticket, error)
	ListByReporter(ctx context.Context, userID uint64) ([]model.Ticket, error)
	ListByAssignee(ctx context.Context, userID uint64) ([]model.Ticket, error)
	ListByStatus(ctx context.Context, status string) ([]model.Ticket, error)
}
