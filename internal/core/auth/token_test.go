package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/acquisitions/user-api/internal/core/domain"
)

func testUser() domain.Projection {
	return domain.Projection{
		ID:    42,
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  domain.RoleAdmin,
	}
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a signed token")
	}

	principal, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if principal.ID != 42 {
		t.Fatalf("expected id 42, got %d", principal.ID)
	}
	if principal.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin, got %s", principal.Role)
	}
	if principal.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %s", principal.Email)
	}
}

func TestTokenManager_VerifyWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret", time.Hour).Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := NewTokenManager("other", time.Hour).Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenManager_VerifyExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	m.ttl = -time.Minute

	token, err := m.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := m.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenManager_VerifyMalformed(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}

func TestNewTokenManager_TTLFallback(t *testing.T) {
	m := NewTokenManager("secret", 0)
	if m.ttl != defaultTokenTTL {
		t.Fatalf("expected default TTL %v, got %v", defaultTokenTTL, m.ttl)
	}
}
