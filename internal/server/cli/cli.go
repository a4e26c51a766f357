// Package cli defines the blogify command line: serve, migrate and
// create-admin. Every command shares the configuration flags from the
// config package.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/blogify/internal/logging"
	"github.com/dmitrijs2005/blogify/internal/server"
	"github.com/dmitrijs2005/blogify/internal/server/config"
	"github.com/dmitrijs2005/blogify/internal/server/services"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

const (
	flagEmail    = "email"
	flagName     = "name"
	flagPassword = "password"
)

// application is the part of server.App the commands drive.
type application interface {
	Run(ctx context.Context) error
	Migrate(ctx context.Context) error
	UserService() *services.UserService
	Close() error
}

// Test seams.
var (
	newApp = func(cfg *config.Config, l logging.Logger) (application, error) {
		return server.NewApp(cfg, l)
	}
	readPassword = term.ReadPassword
)

// NewCommandLine builds the urfave/cli application. Output goes to w.
func NewCommandLine(w io.Writer) *cli.App {
	return &cli.App{
		Name:   "blogify",
		Usage:  "blogging platform API server",
		Writer: w,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run migrations and serve the HTTP API",
				Flags:  config.Flags(),
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending database migrations and exit",
				Flags:  config.Flags(),
				Action: migrate,
			},
			{
				Name:  "create-admin",
				Usage: "create an ADMIN account",
				Flags: append(config.Flags(),
					&cli.StringFlag{Name: flagEmail, Usage: "admin email", Required: true},
					&cli.StringFlag{Name: flagName, Usage: "admin full name", Required: true},
					&cli.StringFlag{Name: flagPassword, Usage: "admin password (prompted when empty)", EnvVars: []string{"BLOGIFY_ADMIN_PASSWORD"}},
				),
				Action: createAdmin,
			},
		},
	}
}

// setup loads configuration, builds the logger and opens the application.
func setup(c *cli.Context) (application, logging.Logger, error) {
	cfg, err := config.Load(c)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.LogFormat, c.App.Writer)
	if err != nil {
		return nil, nil, err
	}
	app, err := newApp(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return app, logger, nil
}

func serve(c *cli.Context) error {
	app, _, err := setup(c)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Run(c.Context)
}

func migrate(c *cli.Context) error {
	app, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Migrate(c.Context); err != nil {
		return err
	}
	logger.Info(c.Context, "migrations applied")
	return nil
}

func createAdmin(c *cli.Context) error {
	password := c.String(flagPassword)
	if password == "" {
		pw, err := promptPassword(c.App.Writer)
		if err != nil {
			return err
		}
		password = pw
	}

	app, _, err := setup(c)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Migrate(c.Context); err != nil {
		return err
	}

	u, err := app.UserService().CreateAdmin(c.Context, services.RegisterInput{
		FullName: c.String(flagName),
		Email:    c.String(flagEmail),
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "admin %s created (%s)\n", u.Email, u.ID)
	return nil
}

func promptPassword(w io.Writer) (string, error) {
	fmt.Fprint(w, "Enter password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	s := strings.TrimSpace(string(pw))
	if s == "" {
		return "", errors.New("password must not be empty")
	}
	return s, nil
}
