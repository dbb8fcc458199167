package config

import (
	"context"
	"errors"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blogly/errs"
)

const defaultDatabaseURL = "host=localhost dbname=blogly sslmode=disable"

// Settings is the process-wide configuration. It is built once at startup and
// handed to every component that needs it.
type Settings struct {
	DatabaseURL     string
	ReplicaURLs     []string
	SecretKey       string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	AcceptedOrigins []string
	Environment     string
	LogLevel        string
	SQLEcho         bool
	AutoMigrate     bool
	SSMPrefix       string
}

// IsDevelopment reports whether the service runs in a developer environment.
func (s Settings) IsDevelopment() bool {
	return s.Environment == "" || s.Environment == "development"
}

// Load reads .env (when present), the process environment and, when
// SSM_PARAMETER_PREFIX is set, the matching SSM parameters. Environment values
// take precedence over SSM values.
func Load(ctx context.Context) (Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("Error loading .env file")
	}

	c := New()

	if prefix := GetString(c, "SSM_PARAMETER_PREFIX", ""); prefix != "" {
		client, err := NewSSMClient(ctx)
		if err != nil {
			return Settings{}, err
		}
		params, err := LoadSSM(ctx, client, prefix)
		if err != nil {
			return Settings{}, err
		}
		log.Info().Str("prefix", prefix).Int("parameters", len(params)).Msg("Loaded SSM parameters")
		c = Merge(c, params)
	}

	return FromMap(c)
}

// FromMap builds Settings from a key/value map and validates required keys.
func FromMap(c map[string]string) (Settings, error) {
	settings := Settings{
		DatabaseURL:     GetString(c, "DATABASE_URL", defaultDatabaseURL),
		ReplicaURLs:     GetStrings(c, "DATABASE_REPLICA_URLS"),
		SecretKey:       GetString(c, "SECRET_KEY", ""),
		Port:            GetString(c, "PORT", "8080"),
		ReadTimeout:     time.Duration(GetInt(c, "READ_TIMEOUT_SECONDS", 30)) * time.Second,
		WriteTimeout:    time.Duration(GetInt(c, "WRITE_TIMEOUT_SECONDS", 30)) * time.Second,
		IdleTimeout:     time.Duration(GetInt(c, "IDLE_TIMEOUT_SECONDS", 120)) * time.Second,
		AcceptedOrigins: GetStrings(c, "ACCEPTED_ORIGINS"),
		Environment:     GetString(c, "ENVIRONMENT", "development"),
		LogLevel:        GetString(c, "LOG_LEVEL", "info"),
		SQLEcho:         GetBool(c, "SQL_ECHO", false),
		AutoMigrate:     GetBool(c, "AUTO_MIGRATE", true),
		SSMPrefix:       GetString(c, "SSM_PARAMETER_PREFIX", ""),
	}

	if settings.SecretKey == "" {
		return Settings{}, errs.NewConfigMissingError("SECRET_KEY")
	}
	if port, err := strconv.Atoi(settings.Port); err != nil || port <= 0 || port > 65535 {
		return Settings{}, errs.NewConfigInvalidError("PORT", "must be a TCP port number")
	}

	return settings, nil
}
