package cmd

import (
	"github.com/go-extras/cobraflags"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rpupo63/blogly/models"
)

const outDirFlag = "out-dir"

var generateFlags = map[string]cobraflags.Flag{
	outDirFlag: &cobraflags.StringFlag{
		Name:  outDirFlag,
		Value: "./generated",
		Usage: "Directory where the generated query helpers are written",
	},
}

func newGenerateCommand(r *runner) *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate gorm/gen query helpers for the models",
		Long: `Generate type-safe query helpers for users, posts, tags and posts_tags.

The database connection is used to read column types.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gormDB, db, err := r.openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			outDir := generateFlags[outDirFlag].GetString()
			log.Info().Str("outDir", outDir).Msg("Generating query helpers...")
			models.GenerateQueries(gormDB, outDir)
			return nil
		},
	}

	cobraflags.RegisterMap(generateCmd, generateFlags)
	return generateCmd
}
