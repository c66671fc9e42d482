package ports

import (
	"context"

	"github.com/acquisitions/user-api/internal/core/domain"
)

// UserListCache is a read-through cache for the public user listing.
// Implementations must treat a miss as (nil, false, nil), not an error.
type UserListCache interface {
	Get(ctx context.Context) ([]domain.Projection, bool, error)
	Set(ctx context.Context, users []domain.Projection) error
	// Invalidate drops the cached listing after any user mutation.
	Invalidate(ctx context.Context) error
}
