package progress

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/dailyword/internal/calendar"
	"github.com/at-ishikawa/dailyword/internal/catalog"
	"github.com/at-ishikawa/dailyword/internal/storage"
	"github.com/at-ishikawa/dailyword/internal/validate"
)

const (
	progressKey    = "progress"
	preferencesKey = "language_preferences"
)

// Keys lists every record the Tracker persists.
func Keys() []string {
	return []string{progressKey, preferencesKey}
}

// Tracker serializes every read-modify-write of the progress record and the preferences.
// Storage failures never reach the caller: they are logged and the last record known to be
// good is used instead.
type Tracker struct {
	store     storage.Store
	validator *validate.Validator
	logger    *slog.Logger

	writeAttempts uint
	writeDelay    time.Duration

	mu          sync.Mutex
	record      Record
	preferences *Preferences
}

type TrackerOption func(*Tracker)

func WithLogger(logger *slog.Logger) TrackerOption {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// WithWriteRetry sets how many times a write is attempted and the base delay between attempts.
func WithWriteRetry(attempts uint, delay time.Duration) TrackerOption {
	return func(t *Tracker) {
		t.writeAttempts = max(attempts, 1)
		t.writeDelay = delay
	}
}

func NewTracker(store storage.Store, validator *validate.Validator, opts ...TrackerOption) *Tracker {
	tracker := &Tracker{
		store:         store,
		validator:     validator,
		logger:        slog.Default(),
		writeAttempts: 3,
		writeDelay:    50 * time.Millisecond,
		record:        NewRecord(),
	}
	for _, opt := range opts {
		opt(tracker)
	}
	return tracker
}

// RecordView registers that itemID was shown as the item of the day and returns the
// updated record.
func (t *Tracker) RecordView(ctx context.Context, itemID string, today calendar.Date) Record {
	t.mu.Lock()
	defer t.mu.Unlock()

	current := t.loadRecord(ctx)
	next := Advance(current, itemID, today)
	if !next.LastViewedDate.Equal(current.LastViewedDate) {
		t.saveRecord(ctx, next)
	}
	return next.Clone()
}

// AddLearnedWord adds item to the learned words unless it is already there.
// It reports whether the item was added.
func (t *Tracker) AddLearnedWord(ctx context.Context, item catalog.Item, today calendar.Date) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	record := t.loadRecord(ctx)
	for _, word := range record.LearnedWords {
		if word.Item.ID == item.ID {
			return false
		}
	}
	record.LearnedWords = append(record.LearnedWords, LearnedWord{
		Item:        item,
		DateLearned: today,
		IsFavorite:  record.IsFavorite(item.ID),
	})
	t.saveRecord(ctx, record)
	return true
}

// ToggleFavorite flips the favorite state of itemID and returns the new state.
// Items that were never learned can be favorites too.
func (t *Tracker) ToggleFavorite(ctx context.Context, itemID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	record := t.loadRecord(ctx)
	favorite := !record.IsFavorite(itemID)
	if favorite {
		record.Favorites = append(record.Favorites, itemID)
	} else {
		record.Favorites = slices.DeleteFunc(record.Favorites, func(id string) bool {
			return id == itemID
		})
	}
	for i := range record.LearnedWords {
		if record.LearnedWords[i].Item.ID == itemID {
			record.LearnedWords[i].IsFavorite = favorite
		}
	}
	t.saveRecord(ctx, record)
	return favorite
}

// ResetAll erases the progress record and the preferences.
// It returns false when the saved records could not be erased and may come back on the next load.
func (t *Tracker) ResetAll(ctx context.Context) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.record = NewRecord()
	t.preferences = nil
	if err := t.withRetry(ctx, func() error {
		return t.store.Delete(ctx, progressKey, preferencesKey)
	}); err != nil {
		t.logger.Error("failed to erase saved progress",
			slog.Any("error", err),
		)
		return false
	}
	return true
}

func (t *Tracker) Progress(ctx context.Context) Record {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.loadRecord(ctx).Clone()
}

// History returns the learned words, most recently learned first.
func (t *Tracker) History(ctx context.Context, favoritesOnly bool) []LearnedWord {
	t.mu.Lock()
	defer t.mu.Unlock()

	record := t.loadRecord(ctx)
	words := make([]LearnedWord, 0, len(record.LearnedWords))
	for i := len(record.LearnedWords) - 1; i >= 0; i-- {
		word := record.LearnedWords[i]
		if favoritesOnly && !word.IsFavorite {
			continue
		}
		words = append(words, word)
	}
	slices.SortStableFunc(words, func(a, b LearnedWord) int {
		return cmp.Compare(b.DateLearned.DaysSinceEpoch(), a.DateLearned.DaysSinceEpoch())
	})
	return words
}

// Preferences returns the saved preferences and whether onboarding has been completed.
func (t *Tracker) Preferences(ctx context.Context) (Preferences, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	data, err := t.store.Get(ctx, preferencesKey)
	if errors.Is(err, storage.ErrNotFound) {
		return Preferences{}, false
	}
	if err != nil {
		t.logger.Warn("failed to read language preferences, using the last known preferences",
			slog.Any("error", err),
		)
		if t.preferences == nil {
			return Preferences{}, false
		}
		return *t.preferences, true
	}

	var preferences Preferences
	if err := yaml.Unmarshal(data, &preferences); err != nil {
		t.logger.Warn("saved language preferences are malformed",
			slog.Any("error", err),
		)
		return Preferences{}, false
	}
	if err := t.validator.Struct(preferences); err != nil {
		t.logger.Warn("saved language preferences are invalid",
			slog.Any("error", err),
		)
		return Preferences{}, false
	}
	t.preferences = &preferences
	return preferences, true
}

// SavePreferences validates and stores preferences. Only validation errors are returned.
// The same native and target language is allowed, translations then fall back to English.
func (t *Tracker) SavePreferences(ctx context.Context, preferences Preferences) error {
	if err := t.validator.Struct(preferences); err != nil {
		return fmt.Errorf("validator.Struct(preferences) > %w", err)
	}
	if preferences.NativeLanguage == preferences.TargetLanguage {
		t.logger.Warn("native and target languages are the same",
			slog.String("language", string(preferences.NativeLanguage)),
		)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.preferences = &preferences
	data, err := yaml.Marshal(preferences)
	if err != nil {
		return fmt.Errorf("yaml.Marshal(preferences) > %w", err)
	}
	if err := t.withRetry(ctx, func() error {
		return t.store.Put(ctx, preferencesKey, data)
	}); err != nil {
		t.logger.Error("failed to save language preferences",
			slog.Any("error", err),
		)
	}
	return nil
}

// loadRecord reads the stored record, falling back to the last known good record.
// Callers must hold t.mu.
func (t *Tracker) loadRecord(ctx context.Context) Record {
	data, err := t.store.Get(ctx, progressKey)
	if errors.Is(err, storage.ErrNotFound) {
		t.record = NewRecord()
		return t.record.Clone()
	}
	if err != nil {
		t.logger.Warn("failed to read progress, using the last known progress",
			slog.Any("error", err),
		)
		return t.record.Clone()
	}

	record, err := decodeRecord(data)
	if err != nil {
		t.logger.Warn("saved progress is partly unreadable, unreadable fields are reset",
			slog.Any("error", err),
		)
	}
	t.record = record
	return t.record.Clone()
}

// saveRecord persists record and makes it the last known good record even if the write fails.
// Callers must hold t.mu.
func (t *Tracker) saveRecord(ctx context.Context, record Record) {
	record = normalize(record)
	t.record = record.Clone()

	data, err := encodeRecord(record)
	if err != nil {
		t.logger.Error("failed to encode progress", slog.Any("error", err))
		return
	}
	if err := t.withRetry(ctx, func() error {
		return t.store.Put(ctx, progressKey, data)
	}); err != nil {
		t.logger.Error("failed to save progress, it may be lost when the program exits",
			slog.Any("error", err),
		)
	}
}

func (t *Tracker) withRetry(ctx context.Context, fn func() error) error {
	return retry.Do(
		func() error {
			err := fn()
			if errors.Is(err, storage.ErrInvalidKey) || errors.Is(err, context.Canceled) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(t.writeAttempts),
		retry.Delay(t.writeDelay),
		retry.LastErrorOnly(true),
	)
}
