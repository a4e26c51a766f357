package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/blogify/internal/common"
	"github.com/dmitrijs2005/blogify/internal/dbx"
	"github.com/dmitrijs2005/blogify/internal/logging"
	"github.com/dmitrijs2005/blogify/internal/server/auth"
	"github.com/dmitrijs2005/blogify/internal/server/models"
	"github.com/dmitrijs2005/blogify/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blogify/internal/server/storage"
	"github.com/google/uuid"
)

// BlogService owns blogs, their cover images and their comments.
type BlogService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	images        storage.ImageStore
	maxUploadSize int64
	logger        logging.Logger
	now           func() time.Time
}

// NewBlogService constructs a BlogService. maxUploadSize bounds cover images;
// zero means unlimited.
func NewBlogService(db *sql.DB, m repomanager.RepositoryManager, images storage.ImageStore,
	maxUploadSize int64, logger logging.Logger) *BlogService {
	return &BlogService{
		db:            db,
		repomanager:   m,
		images:        images,
		maxUploadSize: maxUploadSize,
		logger:        logger.With("module", "blogs"),
		now:           time.Now,
	}
}

// Create stores the cover and inserts a blog owned by the caller.
func (s *BlogService) Create(ctx context.Context, id *auth.Identity, in CreateBlogInput) (*models.Blog, error) {
	if id == nil {
		return nil, common.ErrorUnauthorized
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	key, err := s.uploadCover(ctx, in.Cover)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Blogs(s.db)
	blog, err := repo.Create(ctx, &models.Blog{
		Title:         in.Title,
		Body:          in.Body,
		CoverImageKey: key,
		CreatedBy:     id.ID,
	})
	if err != nil {
		s.releaseCover(ctx, key)
		return nil, err
	}

	s.logger.Info(ctx, "blog created", "blog_id", blog.ID, "user_id", id.ID)
	return repo.GetByID(ctx, blog.ID)
}

// Update edits a blog owned by the caller. A new cover replaces the old one,
// which is released after the row is updated.
func (s *BlogService) Update(ctx context.Context, id *auth.Identity, blogID string, in UpdateBlogInput) (*models.Blog, error) {
	if id == nil {
		return nil, common.ErrorUnauthorized
	}
	blog, err := s.lookup(ctx, s.db, blogID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnership(id, blog.CreatedBy); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if t := strings.TrimSpace(in.Title); t != "" {
		blog.Title = t
	}
	if b := strings.TrimSpace(in.Body); b != "" {
		blog.Body = b
	}

	oldKey := blog.CoverImageKey
	if in.Cover != nil {
		key, err := s.uploadCover(ctx, in.Cover)
		if err != nil {
			return nil, err
		}
		blog.CoverImageKey = key
	}

	repo := s.repomanager.Blogs(s.db)
	if _, err := repo.Update(ctx, blog); err != nil {
		if blog.CoverImageKey != oldKey {
			s.releaseCover(ctx, blog.CoverImageKey)
		}
		return nil, err
	}
	if blog.CoverImageKey != oldKey {
		s.releaseCover(ctx, oldKey)
	}

	s.logger.Info(ctx, "blog updated", "blog_id", blog.ID, "user_id", id.ID)
	return repo.GetByID(ctx, blog.ID)
}

// Delete removes a blog owned by the caller together with all its comments
// in one transaction, then releases the cover image. Failing to release the
// image is logged and not reported.
func (s *BlogService) Delete(ctx context.Context, id *auth.Identity, blogID string) error {
	if id == nil {
		return common.ErrorUnauthorized
	}
	blog, err := s.lookup(ctx, s.db, blogID)
	if err != nil {
		return err
	}
	if err := auth.RequireOwnership(id, blog.CreatedBy); err != nil {
		return err
	}

	var removed int64
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		n, err := s.repomanager.Comments(tx).DeleteByBlog(ctx, blog.ID)
		if err != nil {
			return fmt.Errorf("error deleting comments: %w", err)
		}
		removed = n
		return s.repomanager.Blogs(tx).Delete(ctx, blog.ID)
	})
	if err != nil {
		return err
	}

	s.releaseCover(ctx, blog.CoverImageKey)
	s.logger.Info(ctx, "blog deleted", "blog_id", blog.ID, "user_id", id.ID, "comments_removed", removed)
	return nil
}

// List returns all blogs, newest first.
func (s *BlogService) List(ctx context.Context) ([]*models.Blog, error) {
	return s.repomanager.Blogs(s.db).List(ctx)
}

// ListMine returns the caller's blogs, newest first.
func (s *BlogService) ListMine(ctx context.Context, id *auth.Identity) ([]*models.Blog, error) {
	if id == nil {
		return nil, common.ErrorUnauthorized
	}
	return s.repomanager.Blogs(s.db).ListByOwner(ctx, id.ID)
}

// Get returns a blog and its comments in insertion order.
func (s *BlogService) Get(ctx context.Context, blogID string) (*models.Blog, []*models.Comment, error) {
	blog, err := s.lookup(ctx, s.db, blogID)
	if err != nil {
		return nil, nil, err
	}
	comments, err := s.repomanager.Comments(s.db).ListByBlog(ctx, blog.ID)
	if err != nil {
		return nil, nil, err
	}
	return blog, comments, nil
}

// AddComment appends a comment by the caller to an existing blog.
func (s *BlogService) AddComment(ctx context.Context, id *auth.Identity, blogID string, in CommentInput) (*models.Comment, error) {
	if id == nil {
		return nil, common.ErrorUnauthorized
	}
	in.Content = strings.TrimSpace(in.Content)
	if err := in.Validate(); err != nil {
		return nil, err
	}
	blog, err := s.lookup(ctx, s.db, blogID)
	if err != nil {
		return nil, err
	}

	comment, err := s.repomanager.Comments(s.db).Create(ctx, &models.Comment{
		Content:   in.Content,
		BlogID:    blog.ID,
		CreatedBy: id.ID,
	})
	if err != nil {
		return nil, err
	}

	if author, err := s.repomanager.Users(s.db).GetByID(ctx, id.ID); err == nil {
		comment.Author = models.Author{ID: author.ID, FullName: author.FullName, ProfileImageURL: author.ProfileImageURL}
	} else {
		comment.Author = models.Author{ID: id.ID, ProfileImageURL: id.ProfileImageURL}
	}

	s.logger.Info(ctx, "comment added", "blog_id", blog.ID, "comment_id", comment.ID, "user_id", id.ID)
	return comment, nil
}

// CoverURL returns a short-lived download URL for the blog's cover image.
func (s *BlogService) CoverURL(ctx context.Context, blogID string) (string, error) {
	blog, err := s.lookup(ctx, s.db, blogID)
	if err != nil {
		return "", err
	}
	if blog.CoverImageKey == "" {
		return "", common.ErrorNotFound
	}
	url, err := s.images.PresignGet(ctx, blog.CoverImageKey)
	if err != nil {
		return "", fmt.Errorf("error presigning cover: %w", err)
	}
	return url, nil
}

// lookup treats ids that are not UUIDs as missing.
func (s *BlogService) lookup(ctx context.Context, db dbx.DBTX, blogID string) (*models.Blog, error) {
	if _, err := uuid.Parse(blogID); err != nil {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Blogs(db).GetByID(ctx, blogID)
}

func (s *BlogService) uploadCover(ctx context.Context, up *Upload) (string, error) {
	contentType, ext, err := sniffImage(up.Data, s.maxUploadSize)
	if err != nil {
		return "", err
	}
	key := storage.NewKey(s.now(), ext)
	if err := s.images.Put(ctx, key, bytes.NewReader(up.Data), int64(len(up.Data)), contentType); err != nil {
		return "", fmt.Errorf("error uploading cover: %w", err)
	}
	return key, nil
}

// releaseCover deletes an image object best-effort.
func (s *BlogService) releaseCover(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.images.Delete(context.WithoutCancel(ctx), key); err != nil {
		s.logger.Warn(ctx, "failed to release cover image", "key", key, "error", err)
	}
}
