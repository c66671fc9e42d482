package ports

import (
	"context"

	"github.com/acquisitions/user-api/internal/core/domain"
)

// UpdateUserInput carries a partial user mutation plus the requester
// identity the authorization policy is evaluated against.
type UpdateUserInput struct {
	Requester domain.Principal
	TargetID  int64
	Name      *string
	Email     *string
	// Password is plaintext here; the service hashes it before storage.
	Password *string
	Role     *string
}

// UserService defines use-case operations on the user resource.
// Mutations are gated by the authorization policy before any repository call.
type UserService interface {
	List(ctx context.Context) ([]domain.Projection, error)
	Get(ctx context.Context, id int64) (domain.Projection, error)
	Update(ctx context.Context, input UpdateUserInput) (domain.Projection, error)
	Delete(ctx context.Context, requester domain.Principal, id int64) (domain.Projection, error)
}
