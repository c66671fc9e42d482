package handler

import (
	"regexp"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/acquisitions/user-api/internal/core/domain"
)

// --- Request types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=255"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin user"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// updateUserRequest carries a partial update; nil fields are left unchanged.
type updateUserRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=2,max=255"`
	Email    *string `json:"email"    validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=6,max=128"`
	Role     *string `json:"role"     validate:"omitempty,oneof=admin user"`
}

func (r updateUserRequest) empty() bool {
	return r.Name == nil && r.Email == nil && r.Password == nil && r.Role == nil
}

// --- Response types ---

// userResponse is the standard success envelope: a human-readable message
// plus the operation's projection.
type userResponse struct {
	Message string            `json:"message"`
	Data    domain.Projection `json:"data"`
}

type userListResponse struct {
	Message string              `json:"message"`
	Data    []domain.Projection `json:"data"`
	Count   int                 `json:"count"`
}

type loginResponse struct {
	Message string            `json:"message"`
	User    domain.Projection `json:"user"`
	Token   string            `json:"token"`
}

// --- Path parameter validation ---

var idPattern = regexp.MustCompile(`^\d+$`)

// parseUserID validates and coerces the :id path parameter.
func parseUserID(c echo.Context) (int64, error) {
	raw := c.Param("id")
	if !idPattern.MatchString(raw) {
		return 0, newValidationError("id", "id must be a valid number")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, newValidationError("id", "id must be a valid number")
	}
	return id, nil
}
