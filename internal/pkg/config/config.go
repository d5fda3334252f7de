package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=1h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`

	// CORSOrigin is the single trusted frontend origin.
	CORSOrigin string `env:"CORS_ORIGIN, default=http://localhost:3000"`

	Mongo MongoConfig
	Redis RedisConfig
	OAuth OAuthConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=blog_api"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// OAuthConfig configures the GitHub federated login flow. The flow is
// only registered when ClientID is set.
type OAuthConfig struct {
	ClientID     string `env:"GITHUB_CLIENT_ID"`
	ClientSecret string `env:"GITHUB_CLIENT_SECRET"`
	RedirectURL  string `env:"OAUTH_REDIRECT_URL,   default=http://localhost:8080/oauth2/callback"`
	FrontendURL  string `env:"OAUTH_FRONTEND_URL,   default=http://localhost:3000/createblog"`
}

// Production reports whether the process runs with the production
// profile; it controls cookie Secure/SameSite attributes.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
