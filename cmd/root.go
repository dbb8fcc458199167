// Package cmd wires the blogly command line: the web server and the schema tooling.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/rpupo63/blogly/config"
	"github.com/rpupo63/blogly/database"
)

// runner carries the settings loaded once before any subcommand runs.
type runner struct {
	settings config.Settings
}

func NewRootCommand() *cobra.Command {
	r := &runner{}

	rootCmd := &cobra.Command{
		Use:   "blogly",
		Short: "Users, posts and tags served as HTML pages",
		Long: `blogly serves a small blog over HTTP backed by Postgres.

Running without a subcommand starts the web server.

Available subcommands:
  serve     - Start the web server
  migrate   - Create or update the database tables
  generate  - Generate gorm/gen query helpers for the models
  report    - Report database columns not mapped by a model`,
		SilenceUsage:      true,
		PersistentPreRunE: r.load,
		RunE:              r.serve,
	}

	rootCmd.AddCommand(
		newServeCommand(r),
		newMigrateCommand(r),
		newGenerateCommand(r),
		newReportCommand(r),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func (r *runner) load(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	r.settings = settings
	setupLogging(settings)
	return nil
}

// setupLogging configures the global zerolog logger: console output in development, JSON otherwise.
func setupLogging(settings config.Settings) {
	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if settings.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

// openDatabase connects and checks the connection with a ping.
func (r *runner) openDatabase(ctx context.Context) (*gorm.DB, database.Database, error) {
	gormDB, err := database.Open(r.settings)
	if err != nil {
		return nil, database.Database{}, err
	}

	db := database.New(gormDB)
	if err := db.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, database.Database{}, fmt.Errorf("test database connection: %w", err)
	}
	return gormDB, db, nil
}
