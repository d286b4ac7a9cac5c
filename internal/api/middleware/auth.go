package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aether-dashboard/aether-api/internal/api/handler"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

const (
	msgNoToken      = "Access denied. No token provided."
	msgInvalidToken = "Invalid or expired token."
)

// Auth verifies the bearer token and stores the caller's identity on the
// context. A missing token is 401; a token that fails verification is 403.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scheme, token, _ := strings.Cut(strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization)), " ")
			token = strings.TrimSpace(token)
			if scheme == "" || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, msgNoToken)
			}
			if !strings.EqualFold(scheme, "bearer") {
				return echo.NewHTTPError(http.StatusForbidden, msgInvalidToken)
			}

			id, err := verifier.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, msgInvalidToken).SetInternal(err)
			}

			handler.SetIdentity(c, id)
			return next(c)
		}
	}
}
