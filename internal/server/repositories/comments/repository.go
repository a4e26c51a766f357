package comments

import (
	"context"

	"github.com/dmitrijs2005/blogify/internal/server/models"
)

// Repository persists comments. There is no update: comments are
// append-only and only leave with their blog.
type Repository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	ListByBlog(ctx context.Context, blogID string) ([]*models.Comment, error)
	DeleteByBlog(ctx context.Context, blogID string) (int64, error)
}
