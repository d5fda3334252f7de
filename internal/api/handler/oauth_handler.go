package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/openblog/blog-api/internal/api/metrics"
	"github.com/openblog/blog-api/internal/api/middleware"
	"github.com/openblog/blog-api/internal/core/ports"
)

// StateStore issues and consumes the single-use state nonces protecting
// the federated login flow against CSRF.
type StateStore interface {
	Issue(ctx context.Context) (string, error)
	Consume(ctx context.Context, state string) (bool, error)
}

// OAuthHandler implements the GitHub federated login flow: redirect to
// the provider, then back through the callback where the account is
// created on first sight and a jwt cookie is emitted.
type OAuthHandler struct {
	oauth       *oauth2.Config
	states      StateStore
	authService ports.AuthService
	tokens      ports.TokenService
	userInfoURL string
	frontendURL string
	cookies     CookieConfig
	logger      zerolog.Logger
}

func NewOAuthHandler(
	oauth *oauth2.Config,
	states StateStore,
	authService ports.AuthService,
	tokens ports.TokenService,
	userInfoURL string,
	frontendURL string,
	cookies CookieConfig,
	logger zerolog.Logger,
) *OAuthHandler {
	return &OAuthHandler{
		oauth:       oauth,
		states:      states,
		authService: authService,
		tokens:      tokens,
		userInfoURL: userInfoURL,
		frontendURL: frontendURL,
		cookies:     cookies,
		logger:      logger,
	}
}

// Login handles GET /oauth2/github: issue a state nonce and redirect to
// the provider's authorize endpoint.
func (h *OAuthHandler) Login(c echo.Context) error {
	state, err := h.states.Issue(c.Request().Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to issue oauth state")
		return c.JSON(http.StatusInternalServerError, statusResponse{Success: false, Message: "login unavailable"})
	}
	return c.Redirect(http.StatusFound, h.oauth.AuthCodeURL(state))
}

// Callback handles GET /oauth2/callback: validate the state, exchange
// the code, resolve the provider identity, create the local account if
// absent, then hand the browser a jwt cookie and send it back to the
// frontend. The token is the same one a credential login would issue.
func (h *OAuthHandler) Callback(c echo.Context) error {
	ctx := c.Request().Context()

	ok, err := h.states.Consume(ctx, c.QueryParam("state"))
	if err != nil || !ok {
		metrics.ExternalLoginsTotal.WithLabelValues("failure").Inc()
		return c.JSON(http.StatusUnauthorized, statusResponse{Success: false, Message: "invalid login state"})
	}

	code := c.QueryParam("code")
	if code == "" {
		metrics.ExternalLoginsTotal.WithLabelValues("failure").Inc()
		return c.JSON(http.StatusBadRequest, statusResponse{Success: false, Message: "missing authorization code"})
	}

	providerToken, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		metrics.ExternalLoginsTotal.WithLabelValues("failure").Inc()
		h.logger.Error().Err(err).Msg("oauth code exchange failed")
		return c.JSON(http.StatusUnauthorized, statusResponse{Success: false, Message: "login failed"})
	}

	username, err := h.fetchLogin(ctx, providerToken)
	if err != nil {
		metrics.ExternalLoginsTotal.WithLabelValues("failure").Inc()
		h.logger.Error().Err(err).Msg("failed to fetch provider identity")
		return c.JSON(http.StatusUnauthorized, statusResponse{Success: false, Message: "login failed"})
	}

	user, err := h.authService.RegisterExternalIfAbsent(ctx, username)
	if err != nil {
		metrics.ExternalLoginsTotal.WithLabelValues("failure").Inc()
		h.logger.Error().Err(err).Str("username", username).Msg("failed to register external identity")
		return c.JSON(http.StatusInternalServerError, statusResponse{Success: false, Message: "login failed"})
	}

	token, err := h.tokens.Issue(user.Username, user.Role)
	if err != nil {
		metrics.ExternalLoginsTotal.WithLabelValues("failure").Inc()
		return c.JSON(http.StatusInternalServerError, statusResponse{Success: false, Message: "login failed"})
	}

	metrics.ExternalLoginsTotal.WithLabelValues("success").Inc()
	c.SetCookie(h.cookies.tokenCookie(middleware.TokenCookieName, token))
	return c.Redirect(http.StatusFound, h.frontendURL)
}

// fetchLogin resolves the provider account name from the user-info
// endpoint using the freshly exchanged token.
func (h *OAuthHandler) fetchLogin(ctx context.Context, token *oauth2.Token) (string, error) {
	resp, err := h.oauth.Client(ctx, token).Get(h.userInfoURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("user info request failed with status %d", resp.StatusCode)
	}

	var info struct {
		Login string `json:"login"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", err
	}
	if info.Login == "" {
		return "", fmt.Errorf("provider response missing login")
	}
	return info.Login, nil
}
