// Package middleware contains the HTTP gates applied to protected routes.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/opergia/energia-backend/internal/auth"
)

// sessionKey is where the resolved SessionContext lives in the echo context.
const sessionKey = "sessionContext"

// RequireSession gates a route behind the dual-token scheme: the request
// must carry both an Authorization bearer token and an X-Session-Id header,
// and auth.Service.Authenticate must accept the pair. No request reaches the
// handler without all checks passing.
func RequireSession(svc *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return unauthorized(c, "missing bearer token")
			}
			sessionID := c.Request().Header.Get("X-Session-Id")
			if sessionID == "" {
				return unauthorized(c, "missing session id")
			}
			token := strings.TrimPrefix(header, "Bearer ")

			sc, err := svc.Authenticate(c.Request().Context(), token, sessionID)
			if err != nil {
				if errors.Is(err, auth.ErrUnauthenticated) {
					return unauthorized(c, "invalid token or session")
				}
				return echo.NewHTTPError(http.StatusInternalServerError)
			}
			c.Set(sessionKey, sc)
			return next(c)
		}
	}
}

// SessionFrom returns the SessionContext attached by RequireSession, or nil
// on unprotected routes.
func SessionFrom(c echo.Context) *auth.SessionContext {
	if sc, ok := c.Get(sessionKey).(*auth.SessionContext); ok {
		return sc
	}
	return nil
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, map[string]any{
		"success": false,
		"message": msg,
	})
}
