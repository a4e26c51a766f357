package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/blogify/internal/logging"
	"github.com/dmitrijs2005/blogify/internal/server/auth"
	"github.com/dmitrijs2005/blogify/internal/server/repositories/memory"
	"github.com/dmitrijs2005/blogify/internal/server/storage"
	"github.com/stretchr/testify/require"
)

// pngData is the PNG signature followed by padding; enough for sniffing.
var pngData = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)

type fixture struct {
	rm     *memory.Manager
	images *storage.MemoryStore
	mock   sqlmock.Sqlmock
	db     *sql.DB
	users  *UserService
	blogs  *BlogService
	tokens *auth.TokenService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rm := memory.NewManager()
	images := storage.NewMemoryStore()
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)

	return &fixture{
		rm:     rm,
		images: images,
		mock:   mock,
		db:     db,
		tokens: tokens,
		users:  NewUserService(db, rm, tokens, logging.Nop()),
		blogs:  NewBlogService(db, rm, images, 1<<20, logging.Nop()),
	}
}

// signUp registers a user and returns the identity its token resolves to.
func (f *fixture) signUp(t *testing.T, name, email string) *auth.Identity {
	t.Helper()
	_, err := f.users.Register(context.Background(), RegisterInput{FullName: name, Email: email, Password: "Passw0rd1"})
	require.NoError(t, err)
	_, tok, err := f.users.SignIn(context.Background(), email, "Passw0rd1")
	require.NoError(t, err)
	id, err := f.tokens.Validate(tok)
	require.NoError(t, err)
	return id
}

func (f *fixture) newBlog(t *testing.T, owner *auth.Identity, title string) string {
	t.Helper()
	b, err := f.blogs.Create(context.Background(), owner, CreateBlogInput{
		Title: title, Body: "body of " + title, Cover: &Upload{Filename: "c.png", Data: pngData},
	})
	require.NoError(t, err)
	return b.ID
}
