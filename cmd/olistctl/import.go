package main

import (
	"github.com/spf13/cobra"

	"github.com/samirrijal/olistboard/internal/adapters/csvsource"
	"github.com/samirrijal/olistboard/internal/adapters/postgres"
)

var importDir string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the CSV export into Postgres, replacing the stored tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dir := importDir
		if dir == "" {
			dir = cfg.Dataset.Dir
		}
		ds, err := csvsource.NewLoader(dir).Load(ctx)
		if err != nil {
			return err
		}

		db, err := postgres.New(ctx, cfg.Database.DSN())
		if err != nil {
			return err
		}
		defer db.Close()

		counts, err := postgres.NewDatasetRepo(db).Import(ctx, ds)
		if err != nil {
			return err
		}
		return writeCounts(cmd.OutOrStdout(), outputFormat, counts)
	},
}

func init() {
	importCmd.Flags().StringVar(&importDir, "dir", "", "directory holding the *_dataset.csv files (default dataset.dir)")
}
