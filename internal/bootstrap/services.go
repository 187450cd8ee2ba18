package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/dailyword/internal/calendar"
	"github.com/at-ishikawa/dailyword/internal/catalog"
	"github.com/at-ishikawa/dailyword/internal/config"
	"github.com/at-ishikawa/dailyword/internal/daily"
	"github.com/at-ishikawa/dailyword/internal/locale"
	"github.com/at-ishikawa/dailyword/internal/progress"
	"github.com/at-ishikawa/dailyword/internal/storage"
	"github.com/at-ishikawa/dailyword/internal/tutor"
	"github.com/at-ishikawa/dailyword/internal/validate"
)

// Services holds everything a command needs, built once from the configuration.
type Services struct {
	Config    *config.Config
	Clock     calendar.Clock
	Logger    *slog.Logger
	Validator *validate.Validator
	Catalog   *catalog.Loader
	Selector  *daily.Selector
	Store     storage.Store
	Tracker   *progress.Tracker
	Tables    *locale.Tables
	Engine    *tutor.Engine
}

type Option func(*options)

type options struct {
	clock  calendar.Clock
	logger *slog.Logger
	random tutor.Random
}

func WithClock(clock calendar.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithRandom(random tutor.Random) Option {
	return func(o *options) {
		o.random = random
	}
}

// NewServices opens the store and loads the localization tables. The store is closed by
// a shutdown hook registered on app.
func NewServices(ctx context.Context, app *App, cfg *config.Config, opts ...Option) (*Services, error) {
	o := options{
		clock:  calendar.RealClock{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	validator, err := validate.New()
	if err != nil {
		return nil, fmt.Errorf("validate.New() > %w", err)
	}
	tables, err := locale.Load(locale.WithLogger(o.logger))
	if err != nil {
		return nil, fmt.Errorf("locale.Load() > %w", err)
	}

	store, err := storage.Open(ctx, cfg.Storage, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("storage.Open() > %w", err)
	}
	app.AddShutdownHook(func(ctx context.Context) error {
		if err := store.Close(); err != nil {
			return fmt.Errorf("store.Close() > %w", err)
		}
		return nil
	})

	loader := catalog.NewLoader(
		catalog.WithDirectory(cfg.Content.CatalogDirectory),
		catalog.WithDefaultLanguage(cfg.Content.DefaultLanguage),
		catalog.WithLogger(o.logger),
	)

	var engineOptions []tutor.Option
	if o.random != nil {
		engineOptions = append(engineOptions, tutor.WithRandom(o.random))
	}

	return &Services{
		Config:    cfg,
		Clock:     o.clock,
		Logger:    o.logger,
		Validator: validator,
		Catalog:   loader,
		Selector:  daily.NewSelector(loader),
		Store:     store,
		Tracker: progress.NewTracker(store, validator,
			progress.WithLogger(o.logger),
			progress.WithWriteRetry(cfg.Storage.WriteAttempts, cfg.Storage.WriteDelay),
		),
		Tables: tables,
		Engine: tutor.NewEngine(tables, engineOptions...),
	}, nil
}

// Today is the learner's current calendar day.
func (s *Services) Today() calendar.Date {
	return calendar.Today(s.Clock)
}

// ItemOfDay returns today's item for the saved preferences.
func (s *Services) ItemOfDay(preferences progress.Preferences) (catalog.Item, error) {
	item, err := s.Selector.ItemOfDay(preferences.TargetLanguage, preferences.ProficiencyLevel, s.Today())
	if err != nil {
		return catalog.Item{}, fmt.Errorf("selector.ItemOfDay() > %w", err)
	}
	return item, nil
}
