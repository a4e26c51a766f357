package services

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/blogify/internal/common"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// RegisterInput is the sign-up payload.
type RegisterInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// normalize trims the name and canonicalises the email.
func (in *RegisterInput) normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = normalizeEmail(in.Email)
}

func (in RegisterInput) Validate() error {
	return validationError(validation.ValidateStruct(&in,
		validation.Field(&in.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&in.Password, validation.Required, validation.Length(1, 200)),
	))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Upload is an uploaded cover image held in memory.
type Upload struct {
	Filename string
	Data     []byte
}

// CreateBlogInput carries a new blog. All fields are required.
type CreateBlogInput struct {
	Title string
	Body  string
	Cover *Upload
}

func (in CreateBlogInput) Validate() error {
	return validationError(validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Body, validation.Required),
		validation.Field(&in.Cover, validation.Required),
	))
}

// UpdateBlogInput carries an edit. Empty fields keep the stored value.
type UpdateBlogInput struct {
	Title string
	Body  string
	Cover *Upload
}

func (in UpdateBlogInput) Validate() error {
	return validationError(validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Length(0, 200)),
	))
}

// CommentInput is the body of a new comment.
type CommentInput struct {
	Content string `json:"content"`
}

func (in CommentInput) Validate() error {
	return validationError(validation.ValidateStruct(&in,
		validation.Field(&in.Content, validation.Required, validation.Length(1, 2000)),
	))
}

func validationError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", common.ErrorValidation, err.Error())
}

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// sniffImage checks that data looks like a supported image no larger than
// limit and returns its content type and key extension.
func sniffImage(data []byte, limit int64) (string, string, error) {
	if len(data) == 0 {
		return "", "", fmt.Errorf("%w: coverImage: cannot be blank", common.ErrorValidation)
	}
	if limit > 0 && int64(len(data)) > limit {
		return "", "", fmt.Errorf("%w: coverImage: must be at most %d bytes", common.ErrorValidation, limit)
	}
	ct := http.DetectContentType(data)
	ext, ok := imageExtensions[ct]
	if !ok {
		return "", "", fmt.Errorf("%w: coverImage: unsupported content type %s", common.ErrorValidation, ct)
	}
	return ct, ext, nil
}
