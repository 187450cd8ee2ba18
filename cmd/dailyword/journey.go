package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/dailyword/internal/bootstrap"
	"github.com/at-ishikawa/dailyword/internal/cli"
	"github.com/at-ishikawa/dailyword/internal/locale"
)

func newJourneyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "journey",
		Short: "Show the streak and the next milestone",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
				record := services.Tracker.Progress(ctx)
				cli.NewPrinter(cmd.OutOrStdout(), services.Tables, nativeLanguage(ctx, services)).Journey(record.Streak)
				return nil
			})
		},
	}
}

var errResetIncomplete = errors.New("saved progress may not have been erased, try again")

func newResetCommand() *cobra.Command {
	var yes bool

	command := &cobra.Command{
		Use:   "reset",
		Short: "Erase the progress and the language preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Reset all progress? [y/N] ")
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if !strings.EqualFold(strings.TrimSpace(answer), "y") {
					return nil
				}
			}

			return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
				native := nativeLanguage(ctx, services)
				if !services.Tracker.ResetAll(ctx) {
					return errResetIncomplete
				}
				cli.NewPrinter(cmd.OutOrStdout(), services.Tables, native).Message(locale.KeyResetDone)
				return nil
			})
		},
	}

	command.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return command
}
