// Package daily picks the item of the day from a catalog.
package daily

import (
	"fmt"

	"github.com/at-ishikawa/dailyword/internal/calendar"
	"github.com/at-ishikawa/dailyword/internal/catalog"
	"github.com/at-ishikawa/dailyword/internal/language"
)

// Catalog is the source of items for a target language.
type Catalog interface {
	Load(target language.Code) ([]catalog.Item, error)
}

// Selector maps a calendar day to a catalog item.
// Every installation observing the same day gets the same item for the same catalog.
type Selector struct {
	catalog Catalog
}

func NewSelector(catalog Catalog) *Selector {
	return &Selector{
		catalog: catalog,
	}
}

// ItemOfDay returns the item for today. When level is set, only items at or below it are
// candidates unless none qualify.
func (s *Selector) ItemOfDay(target language.Code, level language.Level, today calendar.Date) (catalog.Item, error) {
	items, err := s.catalog.Load(target)
	if err != nil {
		return catalog.Item{}, fmt.Errorf("catalog.Load(%s) > %w", target, err)
	}
	if len(items) == 0 {
		return catalog.Item{}, fmt.Errorf("%w for %s", catalog.ErrContentUnavailable, target)
	}

	candidates := FilterByLevel(items, level)
	return candidates[Index(today, len(candidates))], nil
}

// FilterByLevel returns the items at or below level, or items itself when the level is
// empty or nothing qualifies.
func FilterByLevel(items []catalog.Item, level language.Level) []catalog.Item {
	if level == "" {
		return items
	}
	var filtered []catalog.Item
	for _, item := range items {
		if item.Level.AtOrBelow(level) {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == 0 {
		return items
	}
	return filtered
}

// Index returns the position of today's item in a sequence of n items, cycling with period n.
func Index(today calendar.Date, n int) int {
	if n <= 0 {
		return 0
	}
	index := today.DaysSinceEpoch() % int64(n)
	if index < 0 {
		index += int64(n)
	}
	return int(index)
}
