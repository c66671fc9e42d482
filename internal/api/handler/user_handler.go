package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/acquisitions/user-api/internal/api/metrics"
	"github.com/acquisitions/user-api/internal/core/domain"
	"github.com/acquisitions/user-api/internal/core/ports"
)

// UserHandler handles CRUD requests on the user resource.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns all users (public-safe projections).
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {object}  userListResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userListResponse{
		Message: "All users successfully fetched",
		Data:    users,
		Count:   len(users),
	})
}

// Get returns a single user by id.
//
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID (numeric)"
// @Success      200  {object}  userResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	if _, err := ctxPrincipal(c); err != nil {
		return err
	}

	user, err := h.userService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{
		Message: "User successfully fetched",
		Data:    user,
	})
}

// Update applies a partial update to a user. Only the owner or an admin may
// update a record; only an admin may change a role.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID (numeric)"
// @Param        body  body      updateUserRequest  true  "Fields to update (at least one)"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.empty() {
		return newValidationError("body", "at least one field must be provided for update")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.userService.Update(c.Request().Context(), ports.UpdateUserInput{
		Requester: principal,
		TargetID:  id,
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			metrics.AuthzDenialsTotal.WithLabelValues("update").Inc()
		}
		return err
	}

	metrics.UserMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, userResponse{
		Message: "User successfully updated",
		Data:    updated,
	})
}

// Delete removes a user. Only the owner or an admin may delete a record.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID (numeric)"
// @Success      200  {object}  userResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	deleted, err := h.userService.Delete(c.Request().Context(), principal, id)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			metrics.AuthzDenialsTotal.WithLabelValues("delete").Inc()
		}
		return err
	}

	metrics.UserMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, userResponse{
		Message: "User successfully deleted",
		Data:    deleted,
	})
}
