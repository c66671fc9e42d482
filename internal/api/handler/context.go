package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/acquisitions/user-api/internal/core/domain"
)

// principalKey mirrors middleware.PrincipalKey; redeclared here to keep the
// handler package free of a middleware import.
const principalKey = "principal"

// ctxPrincipal extracts the principal injected by the Auth middleware and
// fast-fails before any service call: a missing or role-less principal means
// the middleware did not run (or the token carried no usable identity).
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	principal, _ := c.Get(principalKey).(domain.Principal)
	if principal.Role == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal, nil
}
