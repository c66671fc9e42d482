// Package auth holds the leaf credential components: password hashing and
// JWT issuance/verification. Both are pure of storage concerns.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor applied to stored passwords.
const HashCost = 12

// PasswordHasher wraps bcrypt with a fixed work factor.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher using HashCost. A lower cost may be
// injected in tests to keep them fast.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = HashCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash derives a one-way salted hash from plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hashed. A mismatch returns
// (false, nil); only internal bcrypt failures surface as errors.
func (h *PasswordHasher) Verify(plaintext, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare password: %w", err)
	}
}
