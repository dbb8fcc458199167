package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newMigrateCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, db, err := r.openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Migrate(); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}
			log.Info().Msg("Database migrated")
			return nil
		},
	}
}
