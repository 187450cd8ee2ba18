package progress

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/dailyword/internal/calendar"
	"github.com/at-ishikawa/dailyword/internal/catalog"
	"github.com/at-ishikawa/dailyword/internal/language"
	mock_storage "github.com/at-ishikawa/dailyword/internal/mocks/storage"
	"github.com/at-ishikawa/dailyword/internal/storage"
	"github.com/at-ishikawa/dailyword/internal/validate"
)

func newTracker(t *testing.T, store storage.Store) (*Tracker, *bytes.Buffer) {
	t.Helper()
	v, err := validate.New()
	require.NoError(t, err)

	var logs bytes.Buffer
	tracker := NewTracker(store, v,
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		WithWriteRetry(3, time.Millisecond),
	)
	return tracker, &logs
}

func item(id string) catalog.Item {
	return catalog.Item{
		ID:           id,
		TargetText:   "break the ice",
		Level:        language.LevelB1,
		Translations: map[language.Code]string{"en": "start a conversation"},
	}
}

func TestTracker_RecordView(t *testing.T) {
	ctx := context.Background()
	store := storage.NewFileStore(t.TempDir())
	tracker, _ := newTracker(t, store)

	got := tracker.RecordView(ctx, "a", calendar.MustParse("2024-01-05"))
	assert.Equal(t, 1, got.Streak)

	again := tracker.RecordView(ctx, "a", calendar.MustParse("2024-01-05"))
	assert.Equal(t, got, again)

	got = tracker.RecordView(ctx, "b", calendar.MustParse("2024-01-06"))
	assert.Equal(t, 2, got.Streak)
	assert.Equal(t, []string{"a", "b"}, got.ViewedItemIDs)

	// A new tracker over the same store sees the persisted record.
	reopened, _ := newTracker(t, store)
	assert.Equal(t, got, reopened.Progress(ctx))

	got = reopened.RecordView(ctx, "c", calendar.MustParse("2024-01-08"))
	assert.Equal(t, 1, got.Streak)
	assert.Equal(t, 3, got.TotalLearned)
}

func TestTracker_AddLearnedWord(t *testing.T) {
	ctx := context.Background()
	tracker, _ := newTracker(t, storage.NewFileStore(t.TempDir()))

	assert.True(t, tracker.AddLearnedWord(ctx, item("a"), calendar.MustParse("2024-01-05")))
	assert.False(t, tracker.AddLearnedWord(ctx, item("a"), calendar.MustParse("2024-01-06")))

	words := tracker.Progress(ctx).LearnedWords
	require.Len(t, words, 1)
	assert.Equal(t, "2024-01-05", words[0].DateLearned.String())
	assert.False(t, words[0].IsFavorite)
}

func TestTracker_ToggleFavorite(t *testing.T) {
	ctx := context.Background()
	tracker, _ := newTracker(t, storage.NewFileStore(t.TempDir()))
	tracker.AddLearnedWord(ctx, item("a"), calendar.MustParse("2024-01-05"))
	before := tracker.Progress(ctx)

	assert.True(t, tracker.ToggleFavorite(ctx, "a"))
	got := tracker.Progress(ctx)
	assert.Equal(t, []string{"a"}, got.Favorites)
	assert.True(t, got.LearnedWords[0].IsFavorite)

	assert.False(t, tracker.ToggleFavorite(ctx, "a"))
	assert.Equal(t, before, tracker.Progress(ctx))
}

func TestTracker_ToggleFavorite_UnknownItem(t *testing.T) {
	ctx := context.Background()
	tracker, _ := newTracker(t, storage.NewFileStore(t.TempDir()))

	assert.True(t, tracker.ToggleFavorite(ctx, "not-learned"))
	assert.Equal(t, []string{"not-learned"}, tracker.Progress(ctx).Favorites)

	// Learning a favorite item later keeps the flag in sync.
	tracker.AddLearnedWord(ctx, item("not-learned"), calendar.MustParse("2024-01-05"))
	assert.True(t, tracker.Progress(ctx).LearnedWords[0].IsFavorite)
}

func TestTracker_History(t *testing.T) {
	ctx := context.Background()
	tracker, _ := newTracker(t, storage.NewFileStore(t.TempDir()))
	tracker.AddLearnedWord(ctx, item("a"), calendar.MustParse("2024-01-05"))
	tracker.AddLearnedWord(ctx, item("b"), calendar.MustParse("2024-01-07"))
	tracker.AddLearnedWord(ctx, item("c"), calendar.MustParse("2024-01-07"))
	tracker.AddLearnedWord(ctx, item("d"), calendar.MustParse("2024-01-06"))
	tracker.ToggleFavorite(ctx, "a")
	tracker.ToggleFavorite(ctx, "c")

	ids := func(words []LearnedWord) []string {
		var result []string
		for _, word := range words {
			result = append(result, word.Item.ID)
		}
		return result
	}
	assert.Equal(t, []string{"c", "b", "d", "a"}, ids(tracker.History(ctx, false)))
	assert.Equal(t, []string{"c", "a"}, ids(tracker.History(ctx, true)))
}

func TestTracker_ResetAll(t *testing.T) {
	ctx := context.Background()
	tracker, _ := newTracker(t, storage.NewFileStore(t.TempDir()))
	tracker.RecordView(ctx, "a", calendar.MustParse("2024-01-05"))
	tracker.ToggleFavorite(ctx, "a")
	require.NoError(t, tracker.SavePreferences(ctx, Preferences{NativeLanguage: "tr", TargetLanguage: "en"}))

	assert.True(t, tracker.ResetAll(ctx))

	assert.Equal(t, NewRecord(), tracker.Progress(ctx))
	_, ok := tracker.Preferences(ctx)
	assert.False(t, ok)
}

func TestTracker_Preferences(t *testing.T) {
	ctx := context.Background()
	tracker, logs := newTracker(t, storage.NewFileStore(t.TempDir()))

	_, ok := tracker.Preferences(ctx)
	assert.False(t, ok)

	want := Preferences{NativeLanguage: "tr", TargetLanguage: "en", ProficiencyLevel: language.LevelB1}
	require.NoError(t, tracker.SavePreferences(ctx, want))
	got, ok := tracker.Preferences(ctx)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	err := tracker.SavePreferences(ctx, Preferences{NativeLanguage: "xx", TargetLanguage: "en"})
	assert.ErrorContains(t, err, "native_language must be one of the supported language codes")
	got, _ = tracker.Preferences(ctx)
	assert.Equal(t, want, got, "invalid preferences must not replace saved ones")

	require.NoError(t, tracker.SavePreferences(ctx, Preferences{NativeLanguage: "en", TargetLanguage: "en"}))
	assert.Contains(t, logs.String(), "native and target languages are the same")
}

func TestTracker_Concurrent(t *testing.T) {
	ctx := context.Background()
	tracker, _ := newTracker(t, storage.NewFileStore(t.TempDir()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tracker.AddLearnedWord(ctx, item(fmt.Sprintf("item-%d", i)), calendar.MustParse("2024-01-05"))
			tracker.RecordView(ctx, "a", calendar.MustParse("2024-01-05"))
		}(i)
	}
	wg.Wait()

	got := tracker.Progress(ctx)
	assert.Len(t, got.LearnedWords, 20)
	assert.Equal(t, 1, got.Streak)
}

func TestTracker_ReadFailureUsesLastKnownRecord(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := mock_storage.NewMockStore(ctrl)
	tracker, logs := newTracker(t, store)

	gomock.InOrder(
		store.EXPECT().Get(gomock.Any(), "progress").Return(nil, storage.ErrNotFound),
		store.EXPECT().Put(gomock.Any(), "progress", gomock.Any()).Return(nil),
		store.EXPECT().Get(gomock.Any(), "progress").Return(nil, errors.New("permission denied")),
	)

	first := tracker.RecordView(ctx, "a", calendar.MustParse("2024-01-05"))
	got := tracker.Progress(ctx)

	assert.Equal(t, first, got)
	assert.Contains(t, logs.String(), "failed to read progress")
}

func TestTracker_WriteFailureIsNotPropagated(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := mock_storage.NewMockStore(ctrl)
	tracker, logs := newTracker(t, store)

	store.EXPECT().Get(gomock.Any(), "progress").Return(nil, storage.ErrNotFound)
	store.EXPECT().Put(gomock.Any(), "progress", gomock.Any()).Return(errors.New("disk full")).Times(3)

	got := tracker.RecordView(ctx, "a", calendar.MustParse("2024-01-05"))

	assert.Equal(t, 1, got.Streak)
	assert.Contains(t, logs.String(), "failed to save progress")
	assert.Contains(t, logs.String(), "disk full")
}

func TestTracker_WriteIsRetried(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := mock_storage.NewMockStore(ctrl)
	tracker, logs := newTracker(t, store)

	store.EXPECT().Get(gomock.Any(), "progress").Return(nil, storage.ErrNotFound)
	gomock.InOrder(
		store.EXPECT().Put(gomock.Any(), "progress", gomock.Any()).Return(errors.New("database is locked")),
		store.EXPECT().Put(gomock.Any(), "progress", gomock.Any()).Return(nil),
	)

	assert.True(t, tracker.ToggleFavorite(ctx, "a"))
	assert.NotContains(t, logs.String(), "level=ERROR")
}

func TestTracker_ResetAll_DeleteFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := mock_storage.NewMockStore(ctrl)
	tracker, logs := newTracker(t, store)

	store.EXPECT().Delete(gomock.Any(), "progress", "language_preferences").Return(errors.New("read-only file system")).Times(3)

	assert.False(t, tracker.ResetAll(ctx))
	assert.Contains(t, logs.String(), "failed to erase saved progress")
}
