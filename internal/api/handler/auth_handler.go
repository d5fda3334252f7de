package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openblog/blog-api/internal/api/metrics"
	"github.com/openblog/blog-api/internal/api/middleware"
	"github.com/openblog/blog-api/internal/core/domain"
	"github.com/openblog/blog-api/internal/core/ports"
)

// AuthHandler handles signup, login and logout.
type AuthHandler struct {
	authService ports.AuthService
	cookies     CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// Signup registers a new local account.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusResponse{Success: false, Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusResponse{Success: false, Message: err.Error()})
	}

	registered, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return c.JSON(http.StatusInternalServerError, statusResponse{
			Success: false,
			Message: "Registration failed: " + err.Error(),
		})
	}
	if !registered {
		metrics.SignupsTotal.WithLabelValues("conflict").Inc()
		return c.JSON(http.StatusConflict, statusResponse{Success: false, Message: "User already exists!"})
	}

	metrics.SignupsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "User registered successfully"})
}

// Login verifies credentials and returns a token. The same 401 body is
// returned for unknown usernames, wrong passwords and any internal
// failure, so nothing about the account leaks. Browser clients also get
// the token as a jwt cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusResponse{Success: false, Message: "invalid payload"})
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			c.Logger().Error(err)
		}
		return c.JSON(http.StatusUnauthorized, statusResponse{
			Success: false,
			Message: "Invalid username or password",
		})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.SetCookie(h.cookies.tokenCookie(middleware.TokenCookieName, result.Token))
	return c.JSON(http.StatusOK, loginResponse{
		Success:  true,
		Message:  "Login successful",
		Token:    result.Token,
		Username: result.Username,
		Role:     result.Role,
	})
}

// Logout clears the client-held cookie. It always succeeds from the
// caller's perspective, even when no session existed. A copy of the
// token presented via the bearer header stays valid until expiry.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.cookies.expiredCookie(middleware.TokenCookieName))
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "Logged out successfully"})
}
