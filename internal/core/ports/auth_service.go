package ports

import (
	"context"

	"github.com/openblog/blog-api/internal/core/domain"
)

// LoginResult carries everything the caller needs after a successful login.
type LoginResult struct {
	Token    string
	Username string
	Role     string
}

// AuthService implements registration and credential login.
type AuthService interface {
	// Register creates a local account. It returns false (with a nil
	// error) when the username is already taken; store failures surface
	// as errors.
	Register(ctx context.Context, username, password string) (bool, error)
	// Login verifies credentials and issues a token. Unknown usernames
	// and wrong passwords both fail with domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// RegisterExternalIfAbsent creates an empty-password account for a
	// federated identity unless one already exists. Idempotent; safe to
	// call on every federated login.
	RegisterExternalIfAbsent(ctx context.Context, username string) (*domain.User, error)
	// IsExternal reports whether the named account is a federated
	// identity (no local password).
	IsExternal(ctx context.Context, username string) (bool, error)
}
