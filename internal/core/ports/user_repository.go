package ports

import (
	"context"

	"github.com/openblog/blog-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Create must return domain.ErrUserExists when the username is already
// taken; the store's unique index is the backstop for the
// check-then-insert race in registration.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
