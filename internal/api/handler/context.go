package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
)

const identityKey = "identity"

// SetIdentity stores the verified caller on the request context.
func SetIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the caller stored by SetIdentity.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}

// ctxIdentity is the fast-fail variant used by handlers behind the auth gate.
// A missing identity means the route was registered without the gate.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := IdentityFrom(c)
	if !ok || id.ID == 0 {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
	}
	return id, nil
}
