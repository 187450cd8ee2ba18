package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/dailyword/internal/bootstrap"
	"github.com/at-ishikawa/dailyword/internal/cli"
	"github.com/at-ishikawa/dailyword/internal/statistics"
)

func newHistoryCommand() *cobra.Command {
	var favoritesOnly bool

	command := &cobra.Command{
		Use:   "history",
		Short: "List the words you have practiced",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
				words := services.Tracker.History(ctx, favoritesOnly)
				record := services.Tracker.Progress(ctx)
				cli.NewPrinter(cmd.OutOrStdout(), services.Tables, nativeLanguage(ctx, services)).
					History(words, favoritesOnly, record.TotalLearned)
				return nil
			})
		},
	}

	command.Flags().BoolVar(&favoritesOnly, "favorites", false, "Show favorites only")

	return command
}

func newFavoriteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <item-id>",
		Short: "Add a word to the favorites, or remove it when it is already there",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
				itemID := args[0]
				if services.Tracker.ToggleFavorite(ctx, itemID) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "⭐ %s added to favorites\n", itemID)
				} else {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s removed from favorites\n", itemID)
				}
				return nil
			})
		},
	}
}

func newReportCommand() *cobra.Command {
	var year, month int

	command := &cobra.Command{
		Use:   "report",
		Short: "Show how many words were learned per month",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != 0 && year == 0 {
				return errors.New("--month requires --year to be specified")
			}
			if month < 0 || month > 12 {
				return errors.New("--month must be between 1 and 12")
			}

			return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
				result := statistics.CalculateStatistics(services.Tracker.History(ctx, false), year, month)
				cli.NewPrinter(cmd.OutOrStdout(), services.Tables, nativeLanguage(ctx, services)).Statistics(result)
				return nil
			})
		},
	}

	command.Flags().IntVar(&year, "year", 0, "Filter by year (e.g., 2025)")
	command.Flags().IntVar(&month, "month", 0, "Filter by month (1-12), requires --year")

	return command
}
