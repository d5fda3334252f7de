package ports

import (
	"context"

	"github.com/openblog/blog-api/internal/core/domain"
)

// BlogRepository defines persistence operations for blog posts.
type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) (*domain.Blog, error)
	FindByID(ctx context.Context, id string) (*domain.Blog, error)
	FindAll(ctx context.Context) ([]*domain.Blog, error)
	Update(ctx context.Context, blog *domain.Blog) (*domain.Blog, error)
	Delete(ctx context.Context, id string) error
}
