package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/dailyword/internal/bootstrap"
	"github.com/at-ishikawa/dailyword/internal/calendar"
	"github.com/at-ishikawa/dailyword/internal/config"
	"github.com/at-ishikawa/dailyword/internal/language"
	"github.com/at-ishikawa/dailyword/internal/progress"
)

var errNotOnboarded = errors.New("no languages selected yet, run 'dailyword onboard' first")

// clock decides what "today" is for every command.
var clock calendar.Clock = calendar.RealClock{}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// runWithServices builds the services for one command and closes them when run returns
// or the command is interrupted.
func runWithServices(cmd *cobra.Command, run func(ctx context.Context, services *bootstrap.Services) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app := bootstrap.New()
	return app.Run(cmd.Context(), func(ctx context.Context) error {
		services, err := bootstrap.NewServices(ctx, app, cfg, bootstrap.WithClock(clock))
		if err != nil {
			return fmt.Errorf("bootstrap.NewServices() > %w", err)
		}
		return run(ctx, services)
	})
}

func requirePreferences(ctx context.Context, services *bootstrap.Services) (progress.Preferences, error) {
	preferences, ok := services.Tracker.Preferences(ctx)
	if !ok {
		return progress.Preferences{}, errNotOnboarded
	}
	return preferences, nil
}

// nativeLanguage is the UI language, English until onboarding is done.
func nativeLanguage(ctx context.Context, services *bootstrap.Services) language.Code {
	if preferences, ok := services.Tracker.Preferences(ctx); ok {
		return preferences.NativeLanguage
	}
	return language.Default
}
