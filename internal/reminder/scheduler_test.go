package reminder_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/dailyword/internal/catalog"
	mock_reminder "github.com/at-ishikawa/dailyword/internal/mocks/reminder"
	"github.com/at-ishikawa/dailyword/internal/reminder"
)

var testReminder = reminder.Reminder{
	Title: "📚 Daily Idiom",
	Body:  "Today's idiom is waiting for you!",
	Item:  catalog.Item{ID: "w1", TargetText: "break the ice"},
}

func composeFixed(ctx context.Context) (reminder.Reminder, error) {
	return testReminder, nil
}

func TestScheduler_RunNow(t *testing.T) {
	tests := []struct {
		name      string
		compose   reminder.ComposeFunc
		notifyErr error
		wantCall  bool
		wantErr   string
	}{
		{name: "sends", compose: composeFixed, wantCall: true},
		{
			name: "compose fails",
			compose: func(ctx context.Context) (reminder.Reminder, error) {
				return reminder.Reminder{}, errors.New("no content")
			},
			wantErr: "compose() > no content",
		},
		{name: "notify fails", compose: composeFixed, wantCall: true, notifyErr: errors.New("closed"), wantErr: "notifier.Notify() > closed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			notifier := mock_reminder.NewMockNotifier(ctrl)
			if tt.wantCall {
				notifier.EXPECT().Notify(gomock.Any(), testReminder).Return(tt.notifyErr)
			}

			scheduler := reminder.New(notifier, tt.compose, "09:00")
			err := scheduler.RunNow(context.Background())
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestScheduler_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mock_reminder.NewMockNotifier(ctrl)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	location := time.FixedZone("test", 3*60*60)
	scheduler := reminder.New(notifier, composeFixed, "21:30", reminder.WithLocation(location))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, scheduler.Start(ctx))
	defer scheduler.Stop()

	next := scheduler.NextRun().In(location)
	assert.Equal(t, 21, next.Hour())
	assert.Equal(t, 30, next.Minute())
	assert.True(t, next.After(time.Now()))
	assert.True(t, next.Before(time.Now().Add(24*time.Hour+time.Minute)))
}

func TestScheduler_Stop(t *testing.T) {
	tests := []struct {
		name string
		stop func(s *reminder.Scheduler, cancel context.CancelFunc)
	}{
		{
			name: "stop without cancelling the context",
			stop: func(s *reminder.Scheduler, cancel context.CancelFunc) {
				s.Stop()
			},
		},
		{
			name: "context cancelled",
			stop: func(s *reminder.Scheduler, cancel context.CancelFunc) {
				cancel()
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			notifier := mock_reminder.NewMockNotifier(ctrl)
			notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			scheduler := reminder.New(notifier, composeFixed, "09:00")

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			require.NoError(t, scheduler.Start(ctx))

			tt.stop(scheduler, cancel)
			select {
			case <-scheduler.Done():
			case <-time.After(time.Second):
				t.Fatal("scheduler kept watching the context after it stopped")
			}
			scheduler.Stop()
		})
	}
}

func TestScheduler_Start_InvalidTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	scheduler := reminder.New(mock_reminder.NewMockNotifier(ctrl), composeFixed, "25:99",
		reminder.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
	)
	assert.Error(t, scheduler.Start(context.Background()))
}

func TestWriterNotifier(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = false
	})

	var out strings.Builder
	notifier := reminder.NewWriterNotifier(&out)
	require.NoError(t, notifier.Notify(context.Background(), testReminder))
	assert.Equal(t, "📚 Daily Idiom\nToday's idiom is waiting for you!\n  break the ice\n", out.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, notifier.Notify(ctx, testReminder), context.Canceled)
}
