package users

import (
	"context"

	"github.com/dmitrijs2005/blogify/internal/server/models"
)

// Repository persists user accounts. Implementations report a taken email as
// common.ErrDuplicateEmail and a missing row as common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
