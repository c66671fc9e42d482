package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/acquisitions/user-api/internal/core/auth"
	"github.com/acquisitions/user-api/internal/core/domain"
	"github.com/acquisitions/user-api/internal/core/ports"
)

// UserService implements CRUD on the user resource with the authorization
// policy gating every mutation.
type UserService struct {
	repo   ports.UserRepository
	cache  ports.UserListCache
	hasher *auth.PasswordHasher
	logger zerolog.Logger
}

// NewUserService builds a UserService. cache may be nil, in which case the
// listing always hits the repository.
func NewUserService(repo ports.UserRepository, cache ports.UserListCache, hasher *auth.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, hasher: hasher, logger: logger}
}

// List returns all users, read through the listing cache when one is wired.
func (s *UserService) List(ctx context.Context) ([]domain.Projection, error) {
	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx)
		if err != nil {
			// A broken cache must not take the listing down.
			s.logger.Warn().Err(err).Msg("user list cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, users); err != nil {
			s.logger.Warn().Err(err).Msg("user list cache write failed")
		}
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (domain.Projection, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial mutation after the policy check. A new password
// is hashed here so the repository only ever sees hashes.
func (s *UserService) Update(ctx context.Context, input ports.UpdateUserInput) (domain.Projection, error) {
	if err := CanModifyUser(input.Requester, input.TargetID, input.Role != nil); err != nil {
		s.logger.Warn().
			Int64("requester_id", input.Requester.ID).
			Int64("target_id", input.TargetID).
			Bool("role_change", input.Role != nil).
			Msg("user update denied")
		return domain.Projection{}, err
	}

	upd := domain.UserUpdate{Name: input.Name, Role: input.Role}
	if input.Email != nil {
		normalized := NormalizeEmail(*input.Email)
		upd.Email = &normalized
	}
	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return domain.Projection{}, err
		}
		upd.PasswordHash = &hash
	}

	updated, err := s.repo.Update(ctx, input.TargetID, upd)
	if err != nil {
		return domain.Projection{}, err
	}

	s.invalidateListing(ctx)
	s.logger.Info().Int64("user_id", updated.ID).Msg("user updated")
	return updated, nil
}

// Delete removes a user after the policy check and returns the deleted
// record's projection.
func (s *UserService) Delete(ctx context.Context, requester domain.Principal, id int64) (domain.Projection, error) {
	if err := CanDeleteUser(requester, id); err != nil {
		s.logger.Warn().
			Int64("requester_id", requester.ID).
			Int64("target_id", id).
			Msg("user delete denied")
		return domain.Projection{}, err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.Projection{}, err
	}

	s.invalidateListing(ctx)
	s.logger.Info().Int64("user_id", deleted.ID).Msg("user deleted")
	return deleted, nil
}

func (s *UserService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("user list cache invalidation failed")
	}
}
