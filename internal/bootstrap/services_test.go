package bootstrap

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/dailyword/internal/calendar"
	"github.com/at-ishikawa/dailyword/internal/config"
	"github.com/at-ishikawa/dailyword/internal/language"
	"github.com/at-ishikawa/dailyword/internal/progress"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Content: config.ContentConfig{DefaultLanguage: language.English},
		Storage: config.StorageConfig{
			Driver:        config.DriverFile,
			Directory:     filepath.Join(t.TempDir(), "data"),
			WriteAttempts: 1,
		},
	}
}

func TestNewServices(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local)
	app := New()
	services, err := NewServices(context.Background(), app, testConfig(t),
		WithClock(calendar.FixedClock{T: now}),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
	)
	require.NoError(t, err)

	assert.Equal(t, calendar.New(2024, time.March, 10), services.Today())

	preferences := progress.Preferences{
		NativeLanguage: language.Turkish,
		TargetLanguage: language.English,
	}
	item, err := services.ItemOfDay(preferences)
	require.NoError(t, err)
	want, err := services.Selector.ItemOfDay(language.English, "", services.Today())
	require.NoError(t, err)
	assert.Equal(t, want, item)

	record := services.Tracker.RecordView(context.Background(), item.ID, services.Today())
	assert.Equal(t, 1, record.Streak)

	require.NoError(t, app.Run(context.Background(), func(ctx context.Context) error {
		return nil
	}))
}

func TestNewServices_UnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Driver = "redis"

	_, err := NewServices(context.Background(), New(), cfg)
	assert.Error(t, err)
}
