// Package memory is an in-process RepositoryManager used by service and
// HTTP tests. All repositories share one Store, so a user created through
// Users is visible as the author of blogs and comments.
//
// The DBTX handed to the factories is ignored: writes are applied
// immediately and are not undone when the surrounding transaction rolls
// back.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/blogify/internal/common"
	"github.com/dmitrijs2005/blogify/internal/dbx"
	"github.com/dmitrijs2005/blogify/internal/server/models"
	"github.com/dmitrijs2005/blogify/internal/server/repositories/blogs"
	"github.com/dmitrijs2005/blogify/internal/server/repositories/comments"
	"github.com/dmitrijs2005/blogify/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blogify/internal/server/repositories/users"
	"github.com/google/uuid"
)

type blogRow struct {
	models.Blog
	seq int64
}

type commentRow struct {
	models.Comment
	seq int64
}

// Store holds every record. Now defaults to time.Now.
type Store struct {
	mu       sync.Mutex
	seq      int64
	users    map[string]models.User
	blogs    map[string]blogRow
	comments map[string]commentRow

	Now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:    map[string]models.User{},
		blogs:    map[string]blogRow{},
		comments: map[string]commentRow{},
		Now:      time.Now,
	}
}

// Manager implements repomanager.RepositoryManager over a Store.
type Manager struct {
	Store *Store
}

var _ repomanager.RepositoryManager = (*Manager)(nil)

func NewManager() *Manager {
	return &Manager{Store: NewStore()}
}

func (m *Manager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *Manager) Users(dbx.DBTX) users.Repository              { return (*userRepo)(m.Store) }
func (m *Manager) Blogs(dbx.DBTX) blogs.Repository              { return (*blogRepo)(m.Store) }
func (m *Manager) Comments(dbx.DBTX) comments.Repository        { return (*commentRepo)(m.Store) }

// CountComments reports how many comments blogID has.
func (s *Store) CountComments(blogID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.comments {
		if c.BlogID == blogID {
			n++
		}
	}
	return n
}

func (s *Store) next() (int64, time.Time) {
	s.seq++
	return s.seq, s.Now().UTC()
}

func (s *Store) author(id string) models.Author {
	u := s.users[id]
	return models.Author{ID: u.ID, FullName: u.FullName, ProfileImageURL: u.ProfileImageURL}
}

type userRepo Store

func (r *userRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, common.ErrDuplicateEmail
		}
	}
	_, now := s.next()
	u.ID = uuid.NewString()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = *u
	return u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *userRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

type blogRepo Store

func (r *blogRepo) Create(_ context.Context, b *models.Blog) (*models.Blog, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[b.CreatedBy]; !ok {
		return nil, common.ErrorNotFound
	}
	seq, now := s.next()
	b.ID = uuid.NewString()
	b.CreatedAt, b.UpdatedAt = now, now
	s.blogs[b.ID] = blogRow{Blog: *b, seq: seq}
	return b, nil
}

func (r *blogRepo) Update(_ context.Context, b *models.Blog) (*models.Blog, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.blogs[b.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	_, now := s.next()
	row.Title, row.Body, row.CoverImageKey, row.UpdatedAt = b.Title, b.Body, b.CoverImageKey, now
	s.blogs[b.ID] = row
	b.UpdatedAt = now
	return b, nil
}

func (r *blogRepo) Delete(_ context.Context, id string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blogs[id]; !ok {
		return common.ErrorNotFound
	}
	delete(s.blogs, id)
	return nil
}

func (r *blogRepo) GetByID(_ context.Context, id string) (*models.Blog, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.blogs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	b := row.Blog
	b.Author = s.author(b.CreatedBy)
	return &b, nil
}

func (r *blogRepo) List(context.Context) ([]*models.Blog, error) {
	return r.filter(func(*models.Blog) bool { return true }), nil
}

func (r *blogRepo) ListByOwner(_ context.Context, ownerID string) ([]*models.Blog, error) {
	return r.filter(func(b *models.Blog) bool { return b.CreatedBy == ownerID }), nil
}

func (r *blogRepo) filter(keep func(*models.Blog) bool) []*models.Blog {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]blogRow, 0, len(s.blogs))
	for _, row := range s.blogs {
		if keep(&row.Blog) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })

	out := make([]*models.Blog, 0, len(rows))
	for _, row := range rows {
		b := row.Blog
		b.Author = s.author(b.CreatedBy)
		out = append(out, &b)
	}
	return out
}

type commentRepo Store

func (r *commentRepo) Create(_ context.Context, c *models.Comment) (*models.Comment, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blogs[c.BlogID]; !ok {
		return nil, common.ErrorNotFound
	}
	seq, now := s.next()
	c.ID = uuid.NewString()
	c.CreatedAt, c.UpdatedAt = now, now
	s.comments[c.ID] = commentRow{Comment: *c, seq: seq}
	return c, nil
}

func (r *commentRepo) ListByBlog(_ context.Context, blogID string) ([]*models.Comment, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := []commentRow{}
	for _, row := range s.comments {
		if row.BlogID == blogID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	out := make([]*models.Comment, 0, len(rows))
	for _, row := range rows {
		c := row.Comment
		c.Author = s.author(c.CreatedBy)
		out = append(out, &c)
	}
	return out, nil
}

func (r *commentRepo) DeleteByBlog(_ context.Context, blogID string) (int64, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, row := range s.comments {
		if row.BlogID == blogID {
			delete(s.comments, id)
			n++
		}
	}
	return n, nil
}
