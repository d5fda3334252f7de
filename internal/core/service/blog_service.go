package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/openblog/blog-api/internal/core/domain"
	"github.com/openblog/blog-api/internal/core/ports"
)

// BlogService implements the blog post use cases.
type BlogService struct {
	repo   ports.BlogRepository
	logger zerolog.Logger
}

func NewBlogService(repo ports.BlogRepository, logger zerolog.Logger) *BlogService {
	return &BlogService{repo: repo, logger: logger}
}

func (s *BlogService) List(ctx context.Context) ([]*domain.Blog, error) {
	return s.repo.FindAll(ctx)
}

func (s *BlogService) Get(ctx context.Context, id string) (*domain.Blog, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates and persists a new post, stamping the author and
// creation time.
func (s *BlogService) Create(ctx context.Context, input ports.CreateBlogInput) (*domain.Blog, error) {
	now := time.Now().UTC()
	blog := &domain.Blog{
		Title:     input.Title,
		Content:   input.Content,
		Username:  input.Author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := blog.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, blog)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("blog_id", created.ID).Str("author", created.Username).Msg("blog created")
	return created, nil
}

// Update replaces the title and content of an existing post. The post
// must exist before validation is even attempted, matching the lookup
// order of the HTTP contract (404 before 400).
func (s *BlogService) Update(ctx context.Context, input ports.UpdateBlogInput) (*domain.Blog, error) {
	existing, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	existing.Title = input.Title
	existing.Content = input.Content
	existing.UpdatedAt = time.Now().UTC()
	if err := existing.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, existing)
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
