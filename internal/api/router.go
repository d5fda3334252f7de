package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/openblog/blog-api/internal/api/handler"
	"github.com/openblog/blog-api/internal/api/middleware"
	"github.com/openblog/blog-api/internal/core/ports"
	"github.com/openblog/blog-api/internal/core/service"
	mongodb "github.com/openblog/blog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/openblog/blog-api/internal/infrastructure/db/redis"
	"github.com/openblog/blog-api/internal/pkg/config"
)

const githubUserInfoURL = "https://api.github.com/user"

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, error) {
	tokens, err := service.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	users := mongodb.NewUserRepository(db)
	blogs := mongodb.NewBlogRepository(db)
	authService := service.NewAuthService(users, tokens, log)
	blogService := service.NewBlogService(blogs, log)

	e := assemble(cfg, tokens, authService, blogService, log)

	// --- Readiness probe (needs live store handles) ---
	readiness := handler.NewReadinessHandler(db, rdb)
	e.GET("/health/ready", readiness.Readiness)

	// --- Federated login (only when a provider is configured) ---
	if cfg.OAuth.ClientID != "" {
		oauthCfg := &oauth2.Config{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			RedirectURL:  cfg.OAuth.RedirectURL,
			Endpoint:     github.Endpoint,
			Scopes:       []string{"read:user"},
		}
		oauthHandler := handler.NewOAuthHandler(
			oauthCfg,
			redisdb.NewStateStore(rdb),
			authService,
			tokens,
			githubUserInfoURL,
			cfg.OAuth.FrontendURL,
			cookieConfig(cfg),
			log,
		)
		e.GET("/oauth2/github", oauthHandler.Login)
		e.GET("/oauth2/callback", oauthHandler.Callback)
	}

	return e, nil
}

// assemble wires middleware, auth routes and the protected blog routes.
// It takes service interfaces so tests can drive the full pipeline with
// in-memory implementations.
func assemble(
	cfg *config.Config,
	tokens ports.TokenService,
	authService ports.AuthService,
	blogService ports.BlogService,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("blogapi"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	// Authentication gate: resolves a principal when a valid token is
	// presented, never rejects. RequireAuth on the protected groups is
	// the only producer of 401s.
	e.Use(middleware.Authenticate(middleware.AuthenticateConfig{
		Tokens:  tokens,
		Skipper: middleware.PublicPaths(),
		Logger:  log,
	}))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(authService, cookieConfig(cfg))
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Blog routes (authenticated) ---
	blogHandler := handler.NewBlogHandler(blogService)
	protected := e.Group("/blogs", middleware.RequireAuth())
	protected.GET("", blogHandler.List)
	protected.POST("", blogHandler.Create)
	protected.GET("/:id", blogHandler.Get)
	protected.PUT("/:id", blogHandler.Update)
	protected.DELETE("/:id", blogHandler.Delete)

	// --- Liveness + metrics (public) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

func cookieConfig(cfg *config.Config) handler.CookieConfig {
	return handler.CookieConfig{
		Secure: cfg.Production(),
		MaxAge: cfg.TokenTTL,
	}
}
