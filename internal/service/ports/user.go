package ports

import (
	"context"

	"github.com/smartcampus/hub/internal/model"
)

// UserReader is the slice of user persistence the domain services need:
// resolving a user id into the record whose name and roles get
// denormalized onto bookings, tickets and comments.  The full user
// repository is consumed directly by the auth handlers.
type UserReader interface {
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}
