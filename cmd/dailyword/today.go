package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/dailyword/internal/bootstrap"
	"github.com/at-ishikawa/dailyword/internal/cli"
)

func newTodayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show the item of the day and count it toward the streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
				preferences, err := requirePreferences(ctx, services)
				if err != nil {
					return err
				}
				item, err := services.ItemOfDay(preferences)
				if err != nil {
					return err
				}

				record := services.Tracker.RecordView(ctx, item.ID, services.Today())
				cli.NewPrinter(cmd.OutOrStdout(), services.Tables, preferences.NativeLanguage).ItemOfDay(item, record)
				return nil
			})
		},
	}
}
