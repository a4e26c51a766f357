package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/blogify/internal/common"
	"github.com/dmitrijs2005/blogify/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed payload of a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID          string `json:"id"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profileImageURL"`
	Role            string `json:"role"`
}

// TokenService issues and validates stateless HS256 session tokens.
type TokenService struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// TokenOption customises a TokenService.
type TokenOption func(*TokenService)

// WithClock replaces time.Now, used by tests to move time forward.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService signs with secret and issues tokens valid for validity,
// reading the time from time.Now unless WithClock is given.
func NewTokenService(secret []byte, validity time.Duration, opts ...TokenOption) *TokenService {
	s := &TokenService{secret: secret, validity: validity, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validity is the lifetime given to every issued token.
func (s *TokenService) Validity() time.Duration {
	return s.validity
}

// Issue signs the identity claims of u with an expiry of now+validity.
func (s *TokenService) Issue(u *models.User) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("empty signing key")
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
		UserID:          u.ID,
		Email:           u.Email,
		ProfileImageURL: u.ProfileImageURL,
		Role:            u.Role,
	})

	return token.SignedString(s.secret)
}

// Validate checks signature, algorithm and expiry of tokenString. Every
// failure, whatever its cause, is reported as common.ErrInvalidToken; the
// underlying reason is available through errors.Unwrap chains only for
// logging.
func (s *TokenService) Validate(tokenString string) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Join(common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return &Identity{
		ID:              claims.UserID,
		Email:           claims.Email,
		ProfileImageURL: claims.ProfileImageURL,
		Role:            claims.Role,
		ExpiresAt:       claims.ExpiresAt.Time.UTC(),
	}, nil
}
