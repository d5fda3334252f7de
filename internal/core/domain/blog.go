package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrBlogNotFound    = errors.New("blog not found")
	ErrTitleRequired   = errors.New("blog title is required")
	ErrContentRequired = errors.New("blog content is required")
)

// Blog is a published post. Username records the author and is stamped
// from the request principal, never taken from the payload.
type Blog struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	Username  string    `json:"username" bson:"username"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Validate checks the required fields. Whitespace-only values count as blank.
func (b *Blog) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(b.Content) == "" {
		return ErrContentRequired
	}
	return nil
}
