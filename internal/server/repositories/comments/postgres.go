// Package comments provides the PostgreSQL-backed comment repository.
package comments

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogify/internal/common"
	"github.com/dmitrijs2005/blogify/internal/dbx"
	"github.com/dmitrijs2005/blogify/internal/server/models"
)

// BlogForeignKey is the constraint tying comments.blog_id to blogs.id.
const BlogForeignKey = "comments_blog_id_fkey"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts comment. A blog that vanished between the existence check
// and the insert is reported as common.ErrorNotFound.
func (r *PostgresRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	query := `
		INSERT INTO comments (content, blog_id, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, comment.Content, comment.BlogID, comment.CreatedBy).
		Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		if dbx.IsForeignKeyViolation(err, BlogForeignKey) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return comment, nil
}

// ListByBlog returns the comments of blogID in insertion order.
func (r *PostgresRepository) ListByBlog(ctx context.Context, blogID string) ([]*models.Comment, error) {
	query := `
		SELECT c.id, c.content, c.blog_id, c.created_by, c.created_at, c.updated_at,
			u.id, u.full_name, u.profile_image_url
		FROM comments c
		JOIN users u ON u.id = c.created_by
		WHERE c.blog_id = $1
		ORDER BY c.created_at, c.id
	`
	rows, err := r.db.QueryContext(ctx, query, blogID)
	if err != nil {
		return nil, fmt.Errorf("failed to select comments: %w", err)
	}
	defer rows.Close()

	result := []*models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID, &c.Content, &c.BlogID, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
			&c.Author.ID, &c.Author.FullName, &c.Author.ProfileImageURL,
		); err != nil {
			return nil, err
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByBlog removes every comment of blogID and reports how many went.
func (r *PostgresRepository) DeleteByBlog(ctx context.Context, blogID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE blog_id = $1`, blogID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
