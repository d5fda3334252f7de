package ports

import (
	"context"

	"github.com/openblog/blog-api/internal/core/domain"
)

// CreateBlogInput carries the data needed to publish a new post.
// Author comes from the authenticated principal, not the payload.
type CreateBlogInput struct {
	Title   string
	Content string
	Author  string
}

// UpdateBlogInput carries the data for replacing an existing post's
// title and content.
type UpdateBlogInput struct {
	ID      string
	Title   string
	Content string
}

// BlogService defines use-case operations for blog posts.
type BlogService interface {
	List(ctx context.Context) ([]*domain.Blog, error)
	Get(ctx context.Context, id string) (*domain.Blog, error)
	Create(ctx context.Context, input CreateBlogInput) (*domain.Blog, error)
	Update(ctx context.Context, input UpdateBlogInput) (*domain.Blog, error)
	Delete(ctx context.Context, id string) error
}
