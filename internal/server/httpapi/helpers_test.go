package httpapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/blogify/internal/common"
	"github.com/dmitrijs2005/blogify/internal/logging"
	"github.com/dmitrijs2005/blogify/internal/server/auth"
	"github.com/dmitrijs2005/blogify/internal/server/models"
	"github.com/dmitrijs2005/blogify/internal/server/repositories/memory"
	"github.com/dmitrijs2005/blogify/internal/server/services"
	"github.com/dmitrijs2005/blogify/internal/server/storage"
	"github.com/stretchr/testify/require"
)

var pngData = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

type testEnv struct {
	handler http.Handler
	store   *memory.Store
	images  *storage.MemoryStore
	mock    sqlmock.Sqlmock
	tokens  *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rm := memory.NewManager()
	images := storage.NewMemoryStore()
	tokens := auth.NewTokenService([]byte("http-test-secret"), common.DefaultTokenValidity)
	log := logging.Nop()

	srv := NewHTTPServer(":0", log,
		services.NewUserService(db, rm, tokens, log),
		services.NewBlogService(db, rm, images, 1<<20, log),
		tokens,
		Options{AllowedOrigins: []string{"http://localhost:3000"}, MaxUploadSize: 1 << 20},
	)

	return &testEnv{handler: srv.Handler(), store: rm.Store, images: images, mock: mock, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// signUpAndIn registers a user and returns the session token cookie value.
func (e *testEnv) signUpAndIn(t *testing.T, name, email, password string) string {
	t.Helper()
	rec := e.do(t, jsonRequest(http.MethodPost, "/api/user/signup",
		`{"fullName":"`+name+`","email":"`+email+`","password":"`+password+`"}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.do(t, jsonRequest(http.MethodPost, "/api/user/signin",
		`{"email":"`+email+`","password":"`+password+`"}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == common.SessionCookieName {
			return c.Value
		}
	}
	t.Fatal("no session cookie")
	return ""
}

// blogForm builds a multipart body; a nil cover leaves the file part out.
func blogForm(t *testing.T, title, body string, cover []byte) (string, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if title != "" {
		require.NoError(t, mw.WriteField("title", title))
	}
	if body != "" {
		require.NoError(t, mw.WriteField("body", body))
	}
	if cover != nil {
		fw, err := mw.CreateFormFile("coverImage", "cover.png")
		require.NoError(t, err)
		_, err = fw.Write(cover)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf.String(), mw.FormDataContentType()
}

func (e *testEnv) createBlog(t *testing.T, token, title string) string {
	t.Helper()
	body, ct := blogForm(t, title, "body of "+title, pngData)
	req := httptest.NewRequest(http.MethodPost, "/api/blog", strings.NewReader(body))
	req.Header.Set("Content-Type", ct)
	req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: token})

	rec := e.do(t, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.ID
}

func (e *testEnv) comment(t *testing.T, token, blogID, text string) {
	t.Helper()
	req := jsonRequest(http.MethodPost, "/api/blog/comment/"+blogID, `{"content":"`+text+`"}`)
	req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: token})
	rec := e.do(t, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == common.SessionCookieName {
			return c
		}
	}
	return nil
}

func expiredToken(t *testing.T) string {
	t.Helper()
	old := auth.NewTokenService([]byte("http-test-secret"), time.Hour,
		auth.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }))
	tok, err := old.Issue(&models.User{ID: "6f1c1a52-8a43-4f4e-9d2c-3b6a8d3f0c11", Email: "a@x.com"})
	require.NoError(t, err)
	return tok
}
