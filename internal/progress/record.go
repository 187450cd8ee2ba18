// Package progress owns the learner's streak, viewed items, learned words and favorites.
package progress

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/dailyword/internal/calendar"
	"github.com/at-ishikawa/dailyword/internal/catalog"
	"github.com/at-ishikawa/dailyword/internal/language"
)

// Record is the single persisted progress record of an installation.
type Record struct {
	// LastViewedDate is zero until the first acknowledged view.
	LastViewedDate calendar.Date `yaml:"last_viewed_date"`
	ViewedItemIDs  []string      `yaml:"viewed_item_ids"`
	Streak         int           `yaml:"streak"`
	// TotalLearned always equals len(ViewedItemIDs).
	TotalLearned int           `yaml:"total_learned"`
	LearnedWords []LearnedWord `yaml:"learned_words"`
	// Favorites may hold IDs that are not in LearnedWords.
	Favorites []string `yaml:"favorites"`
}

// LearnedWord is an item the learner opened a practice session for.
type LearnedWord struct {
	Item        catalog.Item  `yaml:"item"`
	DateLearned calendar.Date `yaml:"date_learned"`
	IsFavorite  bool          `yaml:"is_favorite"`
}

type Preferences struct {
	NativeLanguage   language.Code  `yaml:"native_language" validate:"required,langcode"`
	TargetLanguage   language.Code  `yaml:"target_language" validate:"required,langcode"`
	ProficiencyLevel language.Level `yaml:"proficiency_level,omitempty" validate:"omitempty,cefr"`
}

func NewRecord() Record {
	return Record{
		ViewedItemIDs: []string{},
		LearnedWords:  []LearnedWord{},
		Favorites:     []string{},
	}
}

func (r Record) Clone() Record {
	r.ViewedItemIDs = slices.Clone(r.ViewedItemIDs)
	r.LearnedWords = slices.Clone(r.LearnedWords)
	r.Favorites = slices.Clone(r.Favorites)
	return r
}

func (r Record) IsFavorite(itemID string) bool {
	return slices.Contains(r.Favorites, itemID)
}

// Advance applies a view of itemID on today:
// a second view on the same day changes nothing, a view on the day after the last one extends
// the streak, and any other view starts a new streak of 1.
func Advance(r Record, itemID string, today calendar.Date) Record {
	if !r.LastViewedDate.IsZero() && r.LastViewedDate.Equal(today) {
		return r
	}

	next := r.Clone()
	if !r.LastViewedDate.IsZero() && today.DaysSince(r.LastViewedDate) == 1 {
		next.Streak++
	} else {
		next.Streak = 1
	}
	next.LastViewedDate = today
	if itemID != "" && !slices.Contains(next.ViewedItemIDs, itemID) {
		next.ViewedItemIDs = append(next.ViewedItemIDs, itemID)
	}
	next.TotalLearned = len(next.ViewedItemIDs)
	return next
}

// normalize restores the record's invariants after it was read from storage.
func normalize(r Record) Record {
	r.ViewedItemIDs = uniqueIDs(r.ViewedItemIDs)
	r.TotalLearned = len(r.ViewedItemIDs)
	r.Favorites = uniqueIDs(r.Favorites)
	if r.Streak < 0 {
		r.Streak = 0
	}

	seen := make(map[string]bool, len(r.LearnedWords))
	words := make([]LearnedWord, 0, len(r.LearnedWords))
	for _, word := range r.LearnedWords {
		if word.Item.ID == "" || seen[word.Item.ID] {
			continue
		}
		seen[word.Item.ID] = true
		word.IsFavorite = slices.Contains(r.Favorites, word.Item.ID)
		words = append(words, word)
	}
	r.LearnedWords = words
	return r
}

func uniqueIDs(ids []string) []string {
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(result, id) {
			result = append(result, id)
		}
	}
	return result
}

// decodeRecord merges stored fields onto a default record one field at a time.
// Fields that fail to decode keep their default, and their errors are returned with the record.
func decodeRecord(data []byte) (Record, error) {
	record := NewRecord()
	var fields map[string]yaml.Node
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return record, fmt.Errorf("yaml.Unmarshal(progress) > %w", err)
	}

	err := errors.Join(
		decodeField(fields, "last_viewed_date", &record.LastViewedDate),
		decodeField(fields, "viewed_item_ids", &record.ViewedItemIDs),
		decodeField(fields, "streak", &record.Streak),
		decodeField(fields, "learned_words", &record.LearnedWords),
		decodeField(fields, "favorites", &record.Favorites),
	)
	return normalize(record), err
}

func decodeField[T any](fields map[string]yaml.Node, key string, target *T) error {
	node, ok := fields[key]
	if !ok {
		return nil
	}
	var value T
	if err := node.Decode(&value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*target = value
	return nil
}

func encodeRecord(r Record) ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("yaml.Marshal(progress) > %w", err)
	}
	return data, nil
}
