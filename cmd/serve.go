package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rpupo63/blogly/api"
	"github.com/rpupo63/blogly/views"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long: `Start the web server on PORT. Tables are migrated first unless AUTO_MIGRATE=false.

The server shuts down gracefully on SIGINT or SIGTERM.`,
		RunE: r.serve,
	}
}

func (r *runner) serve(cmd *cobra.Command, _ []string) error {
	log.Info().Str("environment", r.settings.Environment).Msg("Initializing app...")

	_, db, err := r.openDatabase(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	if r.settings.AutoMigrate {
		if err := db.Migrate(); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	renderer, err := views.New()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	server := api.NewServer(r.settings, db, renderer)

	errChannel := make(chan error, 1)
	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	serverErr := waitForShutdown(errChannel, signals)
	server.ShutdownGracefully(shutdownTimeout)
	return serverErr
}

// waitForShutdown blocks until the server stops or a signal arrives. A signal is a
// clean exit; the server stopping on its own is returned as an error.
func waitForShutdown(errChannel <-chan error, signals <-chan os.Signal) error {
	select {
	case sig := <-signals:
		log.Info().Msgf("Closing server: received %s", sig)
		return nil
	case err := <-errChannel:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			log.Info().Msg("Closing server: stopped")
			return nil
		}
		log.Error().Err(err).Msg("Closing server")
		return fmt.Errorf("server stopped: %w", err)
	}
}
