package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/dailyword/internal/bootstrap"
	"github.com/at-ishikawa/dailyword/internal/locale"
	"github.com/at-ishikawa/dailyword/internal/reminder"
)

var errRemindersDisabled = errors.New("reminders are disabled, set reminder.enabled in the config or pass --at")

func newRemindCommand() *cobra.Command {
	var now bool
	var at string

	command := &cobra.Command{
		Use:   "remind",
		Short: "Print a reminder with the item of the day every day at a fixed time",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
				compose := func(ctx context.Context) (reminder.Reminder, error) {
					preferences, err := requirePreferences(ctx, services)
					if err != nil {
						return reminder.Reminder{}, err
					}
					item, err := services.ItemOfDay(preferences)
					if err != nil {
						return reminder.Reminder{}, err
					}
					return reminder.Reminder{
						Title: services.Tables.Text(preferences.NativeLanguage, locale.KeyReminderTitle),
						Body:  services.Tables.Text(preferences.NativeLanguage, locale.KeyReminderBody),
						Item:  item,
					}, nil
				}

				if at == "" {
					if !now && !services.Config.Reminder.Enabled {
						return errRemindersDisabled
					}
					at = services.Config.Reminder.At
				}
				scheduler := reminder.New(reminder.NewWriterNotifier(cmd.OutOrStdout()), compose, at,
					reminder.WithLogger(services.Logger),
				)
				if now {
					return scheduler.RunNow(ctx)
				}

				if err := scheduler.Start(ctx); err != nil {
					return fmt.Errorf("scheduler.Start() > %w", err)
				}
				defer scheduler.Stop()
				services.Logger.Info("daily reminder scheduled",
					slog.String("at", at),
					slog.Time("next_run", scheduler.NextRun()),
				)
				<-ctx.Done()
				return nil
			})
		},
	}

	command.Flags().BoolVar(&now, "now", false, "Send the reminder once and exit")
	command.Flags().StringVar(&at, "at", "", "time of day as HH:MM (defaults to reminder.at)")

	return command
}
