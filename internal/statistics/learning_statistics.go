// Package statistics summarizes learned words per month.
package statistics

import (
	"fmt"
	"sort"

	"github.com/at-ishikawa/dailyword/internal/language"
	"github.com/at-ishikawa/dailyword/internal/progress"
)

// PeriodStatistics holds the counts for one month
type PeriodStatistics struct {
	Period    string // "2025-01"
	Learned   int
	Favorites int
	Levels    map[language.Level]int
}

// AggregateStatistics holds totals across all periods
type AggregateStatistics struct {
	Learned   int
	Favorites int
	Levels    map[language.Level]int
}

type StatisticsResult struct {
	Periods   []PeriodStatistics
	Aggregate AggregateStatistics
}

// CalculateStatistics counts learned words per month, newest month first.
// It accepts optional year and month filters (0 means no filter).
// Words without a learned date are ignored.
func CalculateStatistics(words []progress.LearnedWord, year, month int) StatisticsResult {
	stats := make(map[string]*PeriodStatistics)
	aggregate := AggregateStatistics{
		Levels: make(map[language.Level]int),
	}

	for _, word := range words {
		if word.DateLearned.IsZero() {
			continue
		}
		learnedYear := word.DateLearned.Year()
		learnedMonth := word.DateLearned.Month()
		if !matchesFilter(learnedYear, int(learnedMonth), year, month) {
			continue
		}

		period := fmt.Sprintf("%d-%02d", learnedYear, learnedMonth)
		if stats[period] == nil {
			stats[period] = &PeriodStatistics{
				Period: period,
				Levels: make(map[language.Level]int),
			}
		}
		periodStats := stats[period]
		periodStats.Learned++
		aggregate.Learned++
		if word.IsFavorite {
			periodStats.Favorites++
			aggregate.Favorites++
		}
		if word.Item.Level != "" {
			periodStats.Levels[word.Item.Level]++
			aggregate.Levels[word.Item.Level]++
		}
	}

	periods := make([]PeriodStatistics, 0, len(stats))
	for _, periodStats := range stats {
		periods = append(periods, *periodStats)
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})

	return StatisticsResult{
		Periods:   periods,
		Aggregate: aggregate,
	}
}

func matchesFilter(learnedYear, learnedMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if learnedYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return learnedMonth == filterMonth
}
