package ports

import (
	"context"

	"github.com/acquisitions/user-api/internal/core/domain"
)

// RegisterInput carries a new account request. Role defaults to "user"
// when empty.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// AuthService orchestrates registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (domain.Projection, error)
	// Login returns the authenticated user's projection and a signed
	// bearer token on success.
	Login(ctx context.Context, input LoginInput) (domain.Projection, string, error)
}
