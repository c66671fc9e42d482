package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/acquisitions/user-api/internal/core/auth"
	"github.com/acquisitions/user-api/internal/core/domain"
	"github.com/acquisitions/user-api/internal/core/ports"
)

// stubListCache records cache traffic for the listing read-through path.
type stubListCache struct {
	cached      []domain.Projection
	sets        int
	invalidates int
}

func (c *stubListCache) Get(_ context.Context) ([]domain.Projection, bool, error) {
	if c.cached == nil {
		return nil, false, nil
	}
	return c.cached, true, nil
}

func (c *stubListCache) Set(_ context.Context, users []domain.Projection) error {
	c.cached = users
	c.sets++
	return nil
}

func (c *stubListCache) Invalidate(_ context.Context) error {
	c.cached = nil
	c.invalidates++
	return nil
}

func newTestUserService(repo ports.UserRepository, cache ports.UserListCache) *UserService {
	return NewUserService(repo, cache, auth.NewPasswordHasher(bcrypt.MinCost), zerolog.Nop())
}

func seedUser(t *testing.T, repo *stubUserRepo, name, email, role string) domain.Projection {
	t.Helper()
	u, err := repo.Insert(context.Background(), name, email, "$2a$04$stubstubstubstubstubstub", role)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestUserService_List_CacheReadThrough(t *testing.T) {
	repo := newStubUserRepo()
	cache := &stubListCache{}
	svc := newTestUserService(repo, cache)

	seedUser(t, repo, "Alice", "alice@example.com", domain.RoleUser)

	first, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(first) != 1 || cache.sets != 1 {
		t.Fatalf("expected one user and one cache fill, got %d users, %d sets", len(first), cache.sets)
	}

	// Second listing is served from the cache even after a direct repo write.
	seedUser(t, repo, "Bob", "bob@example.com", domain.RoleUser)
	second, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected cached listing of 1, got %d", len(second))
	}
}

func TestUserService_List_NoCache(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, nil)

	seedUser(t, repo, "Alice", "alice@example.com", domain.RoleUser)
	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
}

func TestUserService_Get_NotFound(t *testing.T) {
	svc := newTestUserService(newStubUserRepo(), nil)

	if _, err := svc.Get(context.Background(), 99); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Update_OwnerAllowed(t *testing.T) {
	repo := newStubUserRepo()
	cache := &stubListCache{cached: []domain.Projection{}}
	svc := newTestUserService(repo, cache)

	seeded := seedUser(t, repo, "Alice", "alice@example.com", domain.RoleUser)

	name := "Alice Updated"
	password := "newsecret"
	updated, err := svc.Update(context.Background(), ports.UpdateUserInput{
		Requester: domain.Principal{ID: seeded.ID, Role: domain.RoleUser},
		TargetID:  seeded.ID,
		Name:      &name,
		Password:  &password,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Alice Updated" {
		t.Fatalf("unexpected name: %s", updated.Name)
	}

	stored := repo.byID[seeded.ID]
	if stored.PasswordHash == "newsecret" {
		t.Fatalf("password must be hashed before storage")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newsecret")); err != nil {
		t.Fatalf("stored hash does not match new password: %v", err)
	}
	if cache.invalidates != 1 {
		t.Fatalf("expected one cache invalidation, got %d", cache.invalidates)
	}
}

func TestUserService_Update_EmailNormalized(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, nil)

	seeded := seedUser(t, repo, "Alice", "alice@example.com", domain.RoleUser)

	email := "  New@Example.COM "
	updated, err := svc.Update(context.Background(), ports.UpdateUserInput{
		Requester: domain.Principal{ID: seeded.ID, Role: domain.RoleUser},
		TargetID:  seeded.ID,
		Email:     &email,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Email != "new@example.com" {
		t.Fatalf("expected normalized email, got %q", updated.Email)
	}
}

func TestUserService_Update_ForeignUserDenied(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, nil)

	target := seedUser(t, repo, "Bob", "bob@example.com", domain.RoleUser)

	name := "Hacked"
	_, err := svc.Update(context.Background(), ports.UpdateUserInput{
		Requester: domain.Principal{ID: target.ID + 1, Role: domain.RoleUser},
		TargetID:  target.ID,
		Name:      &name,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if repo.updates != 0 {
		t.Fatalf("denied update must not touch storage, saw %d updates", repo.updates)
	}
	if repo.byID[target.ID].Name != "Bob" {
		t.Fatalf("record mutated despite denial")
	}
}

func TestUserService_Update_RoleEscalationDenied(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, nil)

	seeded := seedUser(t, repo, "Bob", "bob@example.com", domain.RoleUser)

	role := domain.RoleAdmin
	_, err := svc.Update(context.Background(), ports.UpdateUserInput{
		Requester: domain.Principal{ID: seeded.ID, Role: domain.RoleUser},
		TargetID:  seeded.ID,
		Role:      &role,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for self role escalation, got %v", err)
	}
	if repo.byID[seeded.ID].Role != domain.RoleUser {
		t.Fatalf("role mutated despite denial")
	}
}

func TestUserService_Update_AdminSetsRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, nil)

	seeded := seedUser(t, repo, "Bob", "bob@example.com", domain.RoleUser)

	role := domain.RoleAdmin
	updated, err := svc.Update(context.Background(), ports.UpdateUserInput{
		Requester: domain.Principal{ID: 999, Role: domain.RoleAdmin},
		TargetID:  seeded.ID,
		Role:      &role,
	})
	if err != nil {
		t.Fatalf("admin role change failed: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin, got %s", updated.Role)
	}
}

func TestUserService_Delete_OwnerAndAdmin(t *testing.T) {
	repo := newStubUserRepo()
	cache := &stubListCache{}
	svc := newTestUserService(repo, cache)

	a := seedUser(t, repo, "A", "a@example.com", domain.RoleUser)
	b := seedUser(t, repo, "B", "b@example.com", domain.RoleUser)

	deleted, err := svc.Delete(context.Background(), domain.Principal{ID: a.ID, Role: domain.RoleUser}, a.ID)
	if err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if deleted.ID != a.ID {
		t.Fatalf("expected deleted projection for %d, got %d", a.ID, deleted.ID)
	}

	if _, err := svc.Delete(context.Background(), domain.Principal{ID: 999, Role: domain.RoleAdmin}, b.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if cache.invalidates != 2 {
		t.Fatalf("expected two cache invalidations, got %d", cache.invalidates)
	}
}

func TestUserService_Delete_ForeignUserDenied(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, nil)

	target := seedUser(t, repo, "Bob", "bob@example.com", domain.RoleUser)

	_, err := svc.Delete(context.Background(), domain.Principal{ID: target.ID + 1, Role: domain.RoleUser}, target.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if repo.deletes != 0 {
		t.Fatalf("denied delete must not touch storage")
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc := newTestUserService(newStubUserRepo(), nil)

	if _, err := svc.Delete(context.Background(), domain.Principal{ID: 1, Role: domain.RoleAdmin}, 42); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
