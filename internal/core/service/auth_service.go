package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/acquisitions/user-api/internal/core/auth"
	"github.com/acquisitions/user-api/internal/core/domain"
	"github.com/acquisitions/user-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenManager, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, logger: logger}
}

// Register creates a new account. The email existence pre-check keeps the
// common path friendly; the storage-level unique constraint closes the race
// between concurrent registrations of the same address.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (domain.Projection, error) {
	email := NormalizeEmail(input.Email)

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return domain.Projection{}, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.Projection{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.Projection{}, err
	}

	created, err := s.repo.Insert(ctx, input.Name, email, hash, role)
	if err != nil {
		return domain.Projection{}, err
	}

	s.logger.Info().Str("email", created.Email).Int64("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login authenticates credentials and issues a bearer token. Unknown email
// and wrong password are distinct error kinds (404 vs 401 at the API edge);
// see DESIGN.md for the information-leak trade-off this preserves.
func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (domain.Projection, string, error) {
	email := NormalizeEmail(input.Email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return domain.Projection{}, "", err
	}

	ok, err := s.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return domain.Projection{}, "", err
	}
	if !ok {
		s.logger.Warn().Str("email", email).Msg("login rejected: wrong password")
		return domain.Projection{}, "", domain.ErrInvalidCredentials
	}

	projection := user.Project()
	token, err := s.tokens.Issue(projection)
	if err != nil {
		return domain.Projection{}, "", err
	}

	s.logger.Info().Str("email", email).Int64("user_id", user.ID).Msg("user authenticated")
	return projection, token, nil
}

// NormalizeEmail lowercases and trims an address before any lookup or write,
// so the unique constraint operates on the canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
