package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/openblog/blog-api/internal/api/metrics"
	"github.com/openblog/blog-api/internal/core/domain"
	"github.com/openblog/blog-api/internal/core/ports"
)

// principalKey is the echo.Context key the resolved principal is bound to.
const principalKey = "principal"

// TokenCookieName is the cookie carrying the token for browser flows.
const TokenCookieName = "jwt"

// SetPrincipal binds a principal to the request context. Later pipeline
// stages and handlers read it back with GetPrincipal.
func SetPrincipal(c echo.Context, p *domain.Principal) {
	c.Set(principalKey, p)
}

// GetPrincipal returns the principal bound to the request, if any.
func GetPrincipal(c echo.Context) (*domain.Principal, bool) {
	p, ok := c.Get(principalKey).(*domain.Principal)
	return p, ok && p != nil
}

// AuthenticateConfig configures the Authenticate middleware.
type AuthenticateConfig struct {
	Tokens ports.TokenService
	// Skipper exempts the public allow-list (signup, login, logout,
	// health, metrics, static assets, federated login entry points).
	Skipper echomiddleware.Skipper
	Logger  zerolog.Logger
}

// Authenticate resolves a request principal from a bearer token without
// ever rejecting the request. A missing or invalid token leaves the
// request anonymous and defers the decision to the authorization stage;
// only RequireAuth produces a 401. A principal bound by an earlier
// stage (the federated callback) is left untouched.
func Authenticate(cfg AuthenticateConfig) echo.MiddlewareFunc {
	skipper := cfg.Skipper
	if skipper == nil {
		skipper = echomiddleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}
			if _, ok := GetPrincipal(c); ok {
				return next(c)
			}

			raw := extractToken(c)
			if raw == "" {
				return next(c)
			}

			principal, err := cfg.Tokens.Verify(raw)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				cfg.Logger.Debug().Err(err).Str("path", c.Path()).Msg("token rejected, continuing unauthenticated")
				return next(c)
			}

			metrics.TokenVerificationsTotal.WithLabelValues("success").Inc()
			SetPrincipal(c, principal)
			return next(c)
		}
	}
}

// PublicPaths returns the Skipper for the default allow-list.
func PublicPaths() echomiddleware.Skipper {
	exact := map[string]struct{}{
		"/auth/signup": {},
		"/auth/login":  {},
		"/auth/logout": {},
		"/health":      {},
		"/metrics":     {},
	}
	prefixes := []string{"/health/", "/css/", "/js/", "/oauth2/"}

	return func(c echo.Context) bool {
		path := c.Request().URL.Path
		if _, ok := exact[path]; ok {
			return true
		}
		for _, p := range prefixes {
			if strings.HasPrefix(path, p) {
				return true
			}
		}
		return false
	}
}

// extractToken returns the candidate token: the Authorization bearer
// header when present, else the jwt cookie, else empty.
func extractToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	cookie, err := c.Cookie(TokenCookieName)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}

func verifyResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenInvalidSignature):
		return "bad_signature"
	case errors.Is(err, domain.ErrTokenUnsupported):
		return "unsupported"
	default:
		return "malformed"
	}
}
