package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/dailyword/internal/bootstrap"
	"github.com/at-ishikawa/dailyword/internal/datasync"
	"github.com/at-ishikawa/dailyword/internal/progress"
	"github.com/at-ishikawa/dailyword/internal/storage"
)

func newMigrateCommand() *cobra.Command {
	var driver, directory, sqlitePath string
	var dryRun bool
	var updateExisting bool

	command := &cobra.Command{
		Use:   "migrate",
		Short: "Copy the saved progress from the configured storage to another storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			if driver == "" {
				return errors.New("--to is required")
			}

			return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
				destinationConfig := services.Config.Storage
				destinationConfig.Driver = driver
				if directory != "" {
					destinationConfig.Directory = directory
				}
				if sqlitePath != "" {
					destinationConfig.SQLitePath = sqlitePath
				}
				if destinationConfig == services.Config.Storage {
					return errors.New("the destination is the configured storage")
				}

				destination, err := storage.Open(ctx, destinationConfig, services.Config.Database)
				if err != nil {
					return fmt.Errorf("open the destination storage: %w", err)
				}
				defer func() { _ = destination.Close() }()

				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "Copying progress to %s storage...\n", driver)
				importer := datasync.NewImporter(services.Store, destination, out)
				result, err := importer.Import(ctx, progress.Keys(), datasync.ImportOptions{
					DryRun:         dryRun,
					UpdateExisting: updateExisting,
				})
				if err != nil {
					return fmt.Errorf("importer.Import() > %w", err)
				}

				_, _ = fmt.Fprintf(out, "\nnew: %d, updated: %d, skipped: %d, missing: %d\n",
					result.New, result.Updated, result.Skipped, result.Missing)
				if dryRun {
					_, _ = fmt.Fprintln(out, "Dry run: nothing was written.")
				}
				return nil
			})
		},
	}

	command.Flags().StringVar(&driver, "to", "", "destination storage driver (file, sqlite, mysql or postgres)")
	command.Flags().StringVar(&directory, "directory", "", "destination directory for the file driver")
	command.Flags().StringVar(&sqlitePath, "sqlite-path", "", "destination database file for the sqlite driver")
	command.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be copied without writing")
	command.Flags().BoolVar(&updateExisting, "update-existing", false, "Overwrite records that already exist in the destination")

	return command
}
