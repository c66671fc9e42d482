package service

import (
	"errors"
	"testing"

	"github.com/acquisitions/user-api/internal/core/domain"
)

func TestCanModifyUser(t *testing.T) {
	admin := domain.Principal{ID: 1, Role: domain.RoleAdmin}
	owner := domain.Principal{ID: 7, Role: domain.RoleUser}

	tests := []struct {
		name        string
		requester   domain.Principal
		targetID    int64
		changesRole bool
		wantDenied  bool
	}{
		{"owner updates own record", owner, 7, false, false},
		{"owner cannot update another user", owner, 8, false, true},
		{"owner cannot change own role", owner, 7, true, true},
		{"admin updates any record", admin, 7, false, false},
		{"admin changes any role", admin, 7, true, false},
		{"admin changes own role", admin, 1, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanModifyUser(tt.requester, tt.targetID, tt.changesRole)
			if tt.wantDenied && !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
			if !tt.wantDenied && err != nil {
				t.Fatalf("expected allow, got %v", err)
			}
		})
	}
}

func TestCanDeleteUser(t *testing.T) {
	admin := domain.Principal{ID: 1, Role: domain.RoleAdmin}
	owner := domain.Principal{ID: 7, Role: domain.RoleUser}

	if err := CanDeleteUser(owner, 7); err != nil {
		t.Fatalf("owner deleting own record: expected allow, got %v", err)
	}
	if err := CanDeleteUser(admin, 7); err != nil {
		t.Fatalf("admin deleting any record: expected allow, got %v", err)
	}
	if err := CanDeleteUser(owner, 8); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
