// Package reminder fires a daily reminder at a fixed local time.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// ComposeFunc builds the reminder when it is due, so it always carries the current item.
type ComposeFunc func(ctx context.Context) (Reminder, error)

type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	compose   ComposeFunc
	at        string
	logger    *slog.Logger

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

type Option func(*Scheduler)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

func WithLocation(location *time.Location) Option {
	return func(s *Scheduler) {
		s.scheduler.ChangeLocation(location)
	}
}

// New returns a scheduler that notifies every day at, an "HH:MM" clock time.
func New(notifier Notifier, compose ComposeFunc, at string, opts ...Option) *Scheduler {
	scheduler := gocron.NewScheduler(time.Local)
	scheduler.SingletonModeAll()

	s := &Scheduler{
		scheduler: scheduler,
		notifier:  notifier,
		compose:   compose,
		at:        at,
		logger:    slog.Default(),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start schedules the daily job and runs it in the background until ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.scheduler.Every(1).Day().At(s.at).Do(s.fire, ctx); err != nil {
		return fmt.Errorf("scheduler.Do(%s) > %w", s.at, err)
	}
	s.scheduler.StartAsync()
	s.logger.Debug("reminder scheduled", "next_run", s.NextRun())

	go func() {
		defer close(s.done)
		select {
		case <-ctx.Done():
			s.Stop()
		case <-s.stop:
		}
	}()
	return nil
}

// Stop cancels the daily job. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
		if s.scheduler.IsRunning() {
			s.scheduler.Stop()
		}
	})
}

// NextRun returns when the reminder fires next, or the zero time if nothing is scheduled.
func (s *Scheduler) NextRun() time.Time {
	_, next := s.scheduler.NextRun()
	return next
}

// RunNow sends the reminder immediately.
func (s *Scheduler) RunNow(ctx context.Context) error {
	reminder, err := s.compose(ctx)
	if err != nil {
		return fmt.Errorf("compose() > %w", err)
	}
	if err := s.notifier.Notify(ctx, reminder); err != nil {
		return fmt.Errorf("notifier.Notify() > %w", err)
	}
	return nil
}

func (s *Scheduler) fire(ctx context.Context) {
	if err := s.RunNow(ctx); err != nil {
		s.logger.Error("failed to send the daily reminder", "error", err)
	}
}
