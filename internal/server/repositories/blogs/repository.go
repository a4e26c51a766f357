package blogs

import (
	"context"

	"github.com/dmitrijs2005/blogify/internal/server/models"
)

// Repository persists blogs. Read methods fill Blog.Author from the users
// table and order results newest first.
type Repository interface {
	Create(ctx context.Context, blog *models.Blog) (*models.Blog, error)
	Update(ctx context.Context, blog *models.Blog) (*models.Blog, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	List(ctx context.Context) ([]*models.Blog, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Blog, error)
}
