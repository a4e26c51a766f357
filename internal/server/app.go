// Package server wires configuration, storage and services together and
// runs the Blogify HTTP API until the context is cancelled.
package server

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/blogify/internal/logging"
	"github.com/dmitrijs2005/blogify/internal/server/auth"
	"github.com/dmitrijs2005/blogify/internal/server/config"
	"github.com/dmitrijs2005/blogify/internal/server/httpapi"
	"github.com/dmitrijs2005/blogify/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blogify/internal/server/services"
	"github.com/dmitrijs2005/blogify/internal/server/storage"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Seams replaced by tests.
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}

	newRepositoryManager = repomanager.NewPostgresRepositoryManager

	newImageStore = func(ctx context.Context, cfg *config.Config) (storage.ImageStore, error) {
		s, err := storage.NewS3Store(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
}

// NewApp validates c and opens the database pool. The caller owns Close.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		repomanager: newRepositoryManager(),
		tokens:      auth.NewTokenService([]byte(c.SecretKey), c.TokenValidityDuration),
	}, nil
}

func (app *App) Close() error {
	return app.db.Close()
}

// Migrate applies pending schema migrations.
func (app *App) Migrate(ctx context.Context) error {
	app.logger.Info(ctx, "Running migrations...")
	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	return nil
}

// UserService exposes account operations for administrative commands.
func (app *App) UserService() *services.UserService {
	return services.NewUserService(app.db, app.repomanager, app.tokens, app.logger)
}

// Run migrates the schema, connects the image store and serves HTTP until
// ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...", "environment", app.config.Environment)

	if err := app.Migrate(ctx); err != nil {
		return err
	}

	images, err := newImageStore(ctx, app.config)
	if err != nil {
		return fmt.Errorf("image store init error: %w", err)
	}

	srv := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger,
		app.UserService(),
		services.NewBlogService(app.db, app.repomanager, images, app.config.MaxUploadSize, app.logger),
		app.tokens,
		httpapi.Options{
			SecureCookie:   app.config.IsProduction(),
			AllowedOrigins: app.config.AllowedOrigins,
			MaxUploadSize:  app.config.MaxUploadSize,
		},
	)

	if err := srv.Run(ctx); err != nil {
		return err
	}
	app.logger.Info(ctx, "App stopped")
	return nil
}
