package httpapi

import (
	"time"

	"github.com/dmitrijs2005/blogify/internal/server/models"
)

type userResponse struct {
	ID              string    `json:"id"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	ProfileImageURL string    `json:"profileImageURL"`
	Role            string    `json:"role"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toUser(u *models.User) userResponse {
	return userResponse{
		ID:              u.ID,
		FullName:        u.FullName,
		Email:           u.Email,
		ProfileImageURL: u.ProfileImageURL,
		Role:            u.Role,
		CreatedAt:       u.CreatedAt,
	}
}

type blogResponse struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Body          string        `json:"body"`
	CoverImageURL string        `json:"coverImageURL"`
	CreatedBy     string        `json:"createdBy"`
	Author        models.Author `json:"author"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func toBlog(b *models.Blog) blogResponse {
	return blogResponse{
		ID:            b.ID,
		Title:         b.Title,
		Body:          b.Body,
		CoverImageURL: "/api/blog/" + b.ID + "/cover",
		CreatedBy:     b.CreatedBy,
		Author:        b.Author,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func toBlogs(bs []*models.Blog) []blogResponse {
	out := make([]blogResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBlog(b))
	}
	return out
}

type commentResponse struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	BlogID    string        `json:"blogId"`
	CreatedBy string        `json:"createdBy"`
	Author    models.Author `json:"author"`
	CreatedAt time.Time     `json:"createdAt"`
}

func toComment(c *models.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		Content:   c.Content,
		BlogID:    c.BlogID,
		CreatedBy: c.CreatedBy,
		Author:    c.Author,
		CreatedAt: c.CreatedAt,
	}
}

type blogDetailResponse struct {
	Blog     blogResponse      `json:"blog"`
	Comments []commentResponse `json:"comments"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
