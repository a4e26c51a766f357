package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/blogify/internal/common"
	"github.com/dmitrijs2005/blogify/internal/server/auth"
	"github.com/dmitrijs2005/blogify/internal/server/services"
)

// multipartOverhead is allowed on top of the image for the text fields.
const multipartOverhead = 1 << 20

func (s *HTTPServer) listBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := s.blogs.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBlogs(blogs))
}

func (s *HTTPServer) blogByID(w http.ResponseWriter, r *http.Request) {
	id := param(r, "id")
	if id == "myblogs" {
		s.myBlogs(w, r)
		return
	}

	blog, comments, err := s.blogs.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := blogDetailResponse{Blog: toBlog(blog), Comments: make([]commentResponse, 0, len(comments))}
	for _, c := range comments {
		resp.Comments = append(resp.Comments, toComment(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) myBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := s.blogs.ListMine(r.Context(), auth.IdentityFromContext(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBlogs(blogs))
}

func (s *HTTPServer) blogCover(w http.ResponseWriter, r *http.Request) {
	url, err := s.blogs.CoverURL(r.Context(), param(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

func (s *HTTPServer) createBlog(w http.ResponseWriter, r *http.Request) {
	id := auth.IdentityFromContext(r.Context())
	if id == nil {
		s.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	title, body, cover, err := s.parseBlogForm(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	blog, err := s.blogs.Create(r.Context(), id, services.CreateBlogInput{Title: title, Body: body, Cover: cover})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBlog(blog))
}

func (s *HTTPServer) updateBlog(w http.ResponseWriter, r *http.Request) {
	id := auth.IdentityFromContext(r.Context())
	if id == nil {
		s.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	title, body, cover, err := s.parseBlogForm(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	blog, err := s.blogs.Update(r.Context(), id, param(r, "id"), services.UpdateBlogInput{Title: title, Body: body, Cover: cover})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBlog(blog))
}

func (s *HTTPServer) deleteBlog(w http.ResponseWriter, r *http.Request) {
	if err := s.blogs.Delete(r.Context(), auth.IdentityFromContext(r.Context()), param(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Blog deleted successfully."})
}

func (s *HTTPServer) addComment(w http.ResponseWriter, r *http.Request) {
	id := auth.IdentityFromContext(r.Context())
	if id == nil {
		s.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	var in services.CommentInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	c, err := s.blogs.AddComment(r.Context(), id, param(r, "blogId"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toComment(c))
}

// parseBlogForm reads title, body and the optional coverImage file from a
// multipart or urlencoded form.
func (s *HTTPServer) parseBlogForm(w http.ResponseWriter, r *http.Request) (string, string, *services.Upload, error) {
	limit := s.opts.MaxUploadSize
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

	err := r.ParseMultipartForm(limit + multipartOverhead)
	switch {
	case errors.Is(err, http.ErrNotMultipart):
		if err := r.ParseForm(); err != nil {
			return "", "", nil, fmt.Errorf("%w: malformed form", common.ErrorValidation)
		}
	case err != nil:
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return "", "", nil, fmt.Errorf("%w: coverImage: must be at most %d bytes", common.ErrorValidation, limit)
		}
		return "", "", nil, fmt.Errorf("%w: malformed form", common.ErrorValidation)
	}

	title, body := r.FormValue("title"), r.FormValue("body")

	file, hdr, err := r.FormFile("coverImage")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return title, body, nil, nil
		}
		return "", "", nil, fmt.Errorf("%w: malformed coverImage", common.ErrorValidation)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return "", "", nil, fmt.Errorf("error reading upload: %w", err)
	}
	return title, body, &services.Upload{Filename: hdr.Filename, Data: data}, nil
}
