package ports

import (
	"context"

	"github.com/acquisitions/user-api/internal/core/domain"
)

// UserRepository defines persistence operations for the user entity.
// Email uniqueness is enforced at the storage layer: Insert and Update
// return domain.ErrUserExists on a constraint violation, which closes the
// race window left by application-level pre-checks.
type UserRepository interface {
	// FindAll returns the public projection of every user.
	FindAll(ctx context.Context) ([]domain.Projection, error)
	// FindByEmail returns the full record (incl. password hash) for login.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (domain.Projection, error)
	Insert(ctx context.Context, name, email, passwordHash, role string) (domain.Projection, error)
	// Update applies only the fields set in upd and refreshes updated_at.
	Update(ctx context.Context, id int64, upd domain.UserUpdate) (domain.Projection, error)
	// Delete removes the row and returns its former projection.
	Delete(ctx context.Context, id int64) (domain.Projection, error)
}
