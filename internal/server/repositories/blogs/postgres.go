// Package blogs provides the PostgreSQL-backed blog repository.
package blogs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blogify/internal/common"
	"github.com/dmitrijs2005/blogify/internal/dbx"
	"github.com/dmitrijs2005/blogify/internal/server/models"
)

// PostgresRepository implements blog storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts blog and fills in the generated id and timestamps.
func (r *PostgresRepository) Create(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	query := `
		INSERT INTO blogs (title, body, cover_image_key, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, blog.Title, blog.Body, blog.CoverImageKey, blog.CreatedBy).
		Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return blog, nil
}

// Update rewrites title, body and cover key of an existing blog and bumps
// updated_at. Returns common.ErrorNotFound when no row matches.
func (r *PostgresRepository) Update(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	query := `
		UPDATE blogs SET title = $2, body = $3, cover_image_key = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query, blog.ID, blog.Title, blog.Body, blog.CoverImageKey).Scan(&blog.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return blog, nil
}

// Delete removes a blog row. Returns common.ErrorNotFound when no row matches.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

const selectBlog = `
		SELECT b.id, b.title, b.body, b.cover_image_key, b.created_by, b.created_at, b.updated_at,
			u.id, u.full_name, u.profile_image_url
		FROM blogs b
		JOIN users u ON u.id = b.created_by
	`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlog(row rowScanner) (*models.Blog, error) {
	var b models.Blog
	err := row.Scan(
		&b.ID, &b.Title, &b.Body, &b.CoverImageKey, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
		&b.Author.ID, &b.Author.FullName, &b.Author.ProfileImageURL,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByID returns one blog with its author summary.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	b, err := scanBlog(r.db.QueryRowContext(ctx, selectBlog+` WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

// List returns every blog, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Blog, error) {
	return r.list(ctx, selectBlog+` ORDER BY b.created_at DESC, b.id`)
}

// ListByOwner returns the blogs created by ownerID, newest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Blog, error) {
	return r.list(ctx, selectBlog+` WHERE b.created_by = $1 ORDER BY b.created_at DESC, b.id`, ownerID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Blog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select blogs: %w", err)
	}
	defer rows.Close()

	result := []*models.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
