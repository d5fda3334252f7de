package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// authorized is the single authorization predicate shared by both
// presentation adapters: a principal must be bound and authenticated.
func authorized(c echo.Context) bool {
	p, ok := GetPrincipal(c)
	return ok && p.Authenticated
}

// RequireAuth rejects unauthenticated requests with the JSON envelope
// used by all API routes. The authentication gate never rejects; this
// middleware is the single point producing 401s.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !authorized(c) {
				return c.JSON(http.StatusUnauthorized, map[string]any{
					"success": false,
					"message": "Authentication required",
				})
			}
			return next(c)
		}
	}
}

// RequireAuthRedirect is the browser-facing variant: same decision,
// redirect presentation.
func RequireAuthRedirect(loginURL string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !authorized(c) {
				return c.Redirect(http.StatusFound, loginURL)
			}
			return next(c)
		}
	}
}
