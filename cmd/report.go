package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rpupo63/blogly/models"
)

func newReportCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Report database columns not mapped by a model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			gormDB, db, err := r.openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			reports, err := models.ColumnReport(gormDB)
			if err != nil {
				return fmt.Errorf("build column report: %w", err)
			}

			mismatches := 0
			for _, report := range reports {
				switch {
				case !report.Exists:
					mismatches++
					log.Warn().Str("table", report.Table).Msg("table missing")
				case len(report.Unmapped) > 0:
					mismatches++
					log.Warn().Str("table", report.Table).Strs("unmapped", report.Unmapped).Int("columns", report.Columns).Msg("unmapped columns")
				default:
					log.Info().Str("table", report.Table).Int("columns", report.Columns).Msg("table matches model")
				}
			}
			log.Info().Int("tables", len(reports)).Int("mismatches", mismatches).Msg("Column report complete")
			return nil
		},
	}
}
