// Package services contains server-side business logic. This file implements
// UserService, which handles registration, credential verification and
// session token issuance.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blogify/internal/common"
	"github.com/dmitrijs2005/blogify/internal/logging"
	"github.com/dmitrijs2005/blogify/internal/server/auth"
	"github.com/dmitrijs2005/blogify/internal/server/models"
	"github.com/dmitrijs2005/blogify/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Verify hashes against these when the email is unknown so both outcomes
// cost one HMAC.
var (
	dummySalt = "00000000000000000000000000000000"
	dummyHash = auth.HashPassword(dummySalt, "")
)

// UserService provides account operations:
// - Register / CreateAdmin: create users with a fresh salt and hash
// - Verify / SignIn: check credentials and mint a session token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
	logger      logging.Logger
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenService, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		logger:      logger.With("module", "users"),
	}
}

// Register creates a USER account. A taken email yields
// common.ErrDuplicateEmail, bad input common.ErrorValidation.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	return s.create(ctx, in, common.RoleUser)
}

// CreateAdmin is Register with the ADMIN role.
func (s *UserService) CreateAdmin(ctx context.Context, in RegisterInput) (*models.User, error) {
	return s.create(ctx, in, common.RoleAdmin)
}

func (s *UserService) create(ctx context.Context, in RegisterInput, role string) (*models.User, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, common.ErrDuplicateEmail
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	user := &models.User{
		FullName:        in.FullName,
		Email:           in.Email,
		ProfileImageURL: common.DefaultProfileImageURL,
		Role:            role,
	}
	if err := auth.SetPassword(user, in.Password); err != nil {
		return nil, err
	}

	// the unique index catches a concurrent registration that passed the check above
	created, err := repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", created.ID, "role", role)
	return created, nil
}

// Verify checks email and password. It returns common.ErrUserNotFound for an
// unknown email and common.ErrInvalidCredentials for a wrong password.
func (s *UserService) Verify(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.CheckPassword(dummySalt, dummyHash, password)
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.CheckPassword(user.Salt, user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}
	return user, nil
}

// SignIn verifies the credentials and issues a session token.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.Verify(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) || errors.Is(err, common.ErrInvalidCredentials) {
			s.logger.Warn(ctx, "sign in rejected", "reason", err.Error())
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("error issuing token: %w", err)
	}
	return user, token, nil
}

// GetByID returns the user with the given id. Malformed ids are not found.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}
