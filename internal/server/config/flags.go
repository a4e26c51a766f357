package config

import (
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/blogify/internal/timex"
	"github.com/urfave/cli/v2"
)

// Flag names.
const (
	FlagConfig         = "config"
	FlagAddr           = "addr"
	FlagDatabaseDSN    = "database-dsn"
	FlagSecretKey      = "secret-key"
	FlagTokenValidity  = "token-validity"
	FlagEnvironment    = "environment"
	FlagAllowedOrigin  = "allowed-origin"
	FlagMaxUploadSize  = "max-upload-size"
	FlagS3User         = "s3-user"
	FlagS3Password     = "s3-password"
	FlagS3Bucket       = "s3-bucket"
	FlagS3Region       = "s3-region"
	FlagS3BaseEndpoint = "s3-endpoint"
	FlagLogFormat      = "log-format"
)

// Flags returns the command-line flags understood by Load. Every flag can
// also be given through the listed environment variables.
//
// No flag carries a default value: defaults come from LoadDefaults so that
// a JSON file can sit between them and the command line.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: FlagConfig, Aliases: []string{"c"}, Usage: "path to a JSON config file", EnvVars: []string{"BLOGIFY_CONFIG"}},
		&cli.StringFlag{Name: FlagAddr, Aliases: []string{"a"}, Usage: "address and port to run server", EnvVars: []string{"BLOGIFY_ADDR", "PORT"}},
		&cli.StringFlag{Name: FlagDatabaseDSN, Aliases: []string{"d"}, Usage: "PostgreSQL DSN", EnvVars: []string{"DATABASE_DSN"}},
		&cli.StringFlag{Name: FlagSecretKey, Aliases: []string{"s"}, Usage: "session token signing key", EnvVars: []string{"JWT_SECRET_KEY"}},
		&cli.StringFlag{Name: FlagTokenValidity, Aliases: []string{"t"}, Usage: "session validity, e.g. 168h or 7d", EnvVars: []string{"BLOGIFY_TOKEN_VALIDITY"}},
		&cli.StringFlag{Name: FlagEnvironment, Usage: "development or production", EnvVars: []string{"BLOGIFY_ENV"}},
		&cli.StringSliceFlag{Name: FlagAllowedOrigin, Usage: "browser origin allowed to call the API (repeatable)", EnvVars: []string{"CLIENT_URL"}},
		&cli.Int64Flag{Name: FlagMaxUploadSize, Usage: "maximum cover image size in bytes", EnvVars: []string{"BLOGIFY_MAX_UPLOAD_SIZE"}},
		&cli.StringFlag{Name: FlagS3User, Aliases: []string{"u"}, Usage: "S3 root user", EnvVars: []string{"S3_ROOT_USER"}},
		&cli.StringFlag{Name: FlagS3Password, Aliases: []string{"p"}, Usage: "S3 root password", EnvVars: []string{"S3_ROOT_PASSWORD"}},
		&cli.StringFlag{Name: FlagS3Bucket, Aliases: []string{"b"}, Usage: "S3 bucket for cover images", EnvVars: []string{"S3_BUCKET"}},
		&cli.StringFlag{Name: FlagS3Region, Aliases: []string{"g"}, Usage: "S3 region", EnvVars: []string{"S3_REGION"}},
		&cli.StringFlag{Name: FlagS3BaseEndpoint, Aliases: []string{"e"}, Usage: "S3 base endpoint (e.g. http://127.0.0.1:9000/)", EnvVars: []string{"S3_BASE_ENDPOINT"}},
		&cli.StringFlag{Name: FlagLogFormat, Usage: "json, text or console", EnvVars: []string{"BLOGIFY_LOG_FORMAT"}},
	}
}

// Load builds a Config from defaults, the JSON file named by --config (if
// any) and finally the flags and environment variables that were set.
func Load(c *cli.Context) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := c.String(FlagConfig); path != "" {
		if err := LoadJSON(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyFlags(c, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(c *cli.Context, cfg *Config) error {
	setString := func(name string, dst *string) {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}

	setString(FlagAddr, &cfg.EndpointAddrHTTP)
	// a bare port, as PaaS platforms export in PORT
	if _, err := strconv.Atoi(cfg.EndpointAddrHTTP); err == nil {
		cfg.EndpointAddrHTTP = ":" + cfg.EndpointAddrHTTP
	}
	setString(FlagDatabaseDSN, &cfg.DatabaseDSN)
	setString(FlagSecretKey, &cfg.SecretKey)
	setString(FlagEnvironment, &cfg.Environment)
	setString(FlagS3User, &cfg.S3RootUser)
	setString(FlagS3Password, &cfg.S3RootPassword)
	setString(FlagS3Bucket, &cfg.S3Bucket)
	setString(FlagS3Region, &cfg.S3Region)
	setString(FlagS3BaseEndpoint, &cfg.S3BaseEndpoint)
	setString(FlagLogFormat, &cfg.LogFormat)

	if c.IsSet(FlagTokenValidity) {
		d, err := timex.ParseDuration(c.String(FlagTokenValidity))
		if err != nil {
			return fmt.Errorf("invalid --%s: %w", FlagTokenValidity, err)
		}
		cfg.TokenValidityDuration = d
	}
	if c.IsSet(FlagAllowedOrigin) {
		cfg.AllowedOrigins = c.StringSlice(FlagAllowedOrigin)
	}
	if c.IsSet(FlagMaxUploadSize) {
		cfg.MaxUploadSize = c.Int64(FlagMaxUploadSize)
	}
	return nil
}
