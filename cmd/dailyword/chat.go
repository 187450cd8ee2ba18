package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/dailyword/internal/bootstrap"
	"github.com/at-ishikawa/dailyword/internal/chat"
	"github.com/at-ishikawa/dailyword/internal/cli"
)

func newChatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Practice the item of the day with the tutor",
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
				services.Tracker.AddLearnedWord(ctx, item, services.Today())

				session := chat.NewSession(services.Engine, item,
					preferences.NativeLanguage, preferences.TargetLanguage,
					chat.WithClock(services.Clock),
				)
				tutorConfig := services.Config.Tutor
				chatCLI := cli.NewChatCLI(session, services.Engine, services.Tables, preferences.NativeLanguage,
					cli.WithIO(cmd.InOrStdin(), cmd.OutOrStdout()),
					cli.WithTypingDelay(tutorConfig.MinTypingDelay, tutorConfig.MaxTypingDelay),
				)
				chatCLI.Begin()
				return chatCLI.Run(ctx, chatCLI)
			})
		},
	}
}
