package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/acquisitions/user-api/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenManager issues and verifies HS256-signed bearer tokens carrying the
// requester identity. Verification is stateless; there is no revocation list.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager. A non-positive ttl falls back to 24h.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given user.
func (m *TokenManager) Issue(user domain.Projection) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(m.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify parses and validates a signed token, returning the principal it
// carries. Malformed, expired, or foreign-signed tokens yield ErrInvalidToken.
func (m *TokenManager) Verify(token string) (domain.Principal, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return domain.Principal{}, domain.ErrInvalidToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return domain.Principal{}, domain.ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	if !domain.ValidRole(role) {
		return domain.Principal{}, domain.ErrInvalidToken
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)

	return domain.Principal{
		ID:    int64(sub),
		Name:  name,
		Email: email,
		Role:  role,
	}, nil
}
