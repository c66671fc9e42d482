package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether role is one of the enumerated user roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User is the full identity record, including the password hash.
// It never crosses the API boundary directly; handlers expose Projection.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Projection is the public-safe view of a User (no password material).
type Projection struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Project strips the credential fields from a User.
func (u *User) Project() Projection {
	return Projection{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Principal is the authenticated identity attached to a single request.
// It is derived from verified token claims and never persisted.
type Principal struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// UserUpdate carries the optional fields of a partial update.
// Nil means "leave unchanged". PasswordHash is already hashed by the
// service layer before it reaches the repository.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *string
}

// Empty reports whether the update carries no fields at all.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.PasswordHash == nil && u.Role == nil
}
