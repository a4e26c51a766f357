package httpapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (s *HTTPServer) routes() http.Handler {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	router.HandlerFunc(http.MethodGet, "/healthz", s.health)

	router.HandlerFunc(http.MethodPost, "/api/user/signup", s.signUp)
	router.HandlerFunc(http.MethodPost, "/api/user/signin", s.signIn)
	router.HandlerFunc(http.MethodGet, "/api/user/logout", s.logout)
	router.HandlerFunc(http.MethodPost, "/api/user/logout", s.logout)
	router.HandlerFunc(http.MethodGet, "/api/user/me", s.me)

	router.HandlerFunc(http.MethodGet, "/api/blog", s.listBlogs)
	// httprouter cannot mix /api/blog/myblogs with /api/blog/:id, so
	// blogByID dispatches the static segment itself.
	router.HandlerFunc(http.MethodGet, "/api/blog/:id", s.blogByID)
	router.HandlerFunc(http.MethodGet, "/api/blog/:id/cover", s.blogCover)
	router.HandlerFunc(http.MethodPost, "/api/blog", s.createBlog)
	router.HandlerFunc(http.MethodPost, "/api/blog/edit/:id", s.updateBlog)
	router.HandlerFunc(http.MethodPost, "/api/blog/delete/:id", s.deleteBlog)
	router.HandlerFunc(http.MethodPost, "/api/blog/comment/:blogId", s.addComment)

	return router
}

func param(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
