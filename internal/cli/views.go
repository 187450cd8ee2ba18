package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/dailyword/internal/catalog"
	"github.com/at-ishikawa/dailyword/internal/journey"
	"github.com/at-ishikawa/dailyword/internal/language"
	"github.com/at-ishikawa/dailyword/internal/locale"
	"github.com/at-ishikawa/dailyword/internal/progress"
	"github.com/at-ishikawa/dailyword/internal/statistics"
)

// Printer renders screens in the learner's native language.
type Printer struct {
	w      io.Writer
	tables *locale.Tables
	native language.Code
	bold   *color.Color
	italic *color.Color
}

func NewPrinter(w io.Writer, tables *locale.Tables, native language.Code) *Printer {
	return &Printer{
		w:      w,
		tables: tables,
		native: native,
		bold:   color.New(color.Bold),
		italic: color.New(color.Italic),
	}
}

func (p *Printer) text(key string) string {
	return p.tables.Text(p.native, key)
}

// ItemOfDay prints the item with its meaning and example, and the current streak.
func (p *Printer) ItemOfDay(item catalog.Item, record progress.Record) {
	_, _ = fmt.Fprintf(p.w, "%s  🔥 %d %s\n\n", p.text(locale.KeyItemOfTheDay), record.Streak, p.text(locale.KeyDayStreak))
	_, _ = color.New(color.Bold, color.FgYellow).Fprintln(p.w, item.TargetText)
	if item.Pronunciation != "" {
		_, _ = p.italic.Fprintln(p.w, item.Pronunciation)
	}
	_, _ = fmt.Fprintf(p.w, "[%s] %s\n\n", item.Level, item.ID)

	_, _ = p.bold.Fprintln(p.w, p.text(locale.KeyMeaning))
	_, _ = fmt.Fprintf(p.w, "  %s\n\n", catalog.Translation(item, p.native))

	_, _ = p.bold.Fprintln(p.w, p.text(locale.KeyExampleSentence))
	_, _ = fmt.Fprintf(p.w, "  %s\n", item.ExampleText)
	if example := catalog.ExampleTranslation(item, p.native); example != "" {
		_, _ = p.italic.Fprintf(p.w, "  %s\n", example)
	}
}

// History prints learned words, newest first, marking favorites.
func (p *Printer) History(words []progress.LearnedWord, favoritesOnly bool, totalLearned int) {
	title := p.text(locale.KeyHistoryTitle)
	if favoritesOnly {
		title = p.text(locale.KeyFavoritesTitle)
	}
	_, _ = p.bold.Fprintln(p.w, title)
	if len(words) == 0 {
		_, _ = fmt.Fprintln(p.w, p.text(locale.KeyEmptyHistory))
		return
	}
	for _, word := range words {
		star := "  "
		if word.IsFavorite {
			star = "⭐"
		}
		_, _ = fmt.Fprintf(p.w, "%s %s  %s  %s (%s)\n",
			star,
			word.DateLearned,
			p.bold.Sprint(word.Item.TargetText),
			catalog.Translation(word.Item, p.native),
			word.Item.ID,
		)
	}
	_, _ = fmt.Fprintf(p.w, "\n%s: %d\n", p.text(locale.KeyTotalLearned), totalLearned)
}

// Journey prints the streak path with its milestones.
func (p *Printer) Journey(streak int) {
	_, _ = fmt.Fprintf(p.w, "🔥 %d %s", streak, p.text(locale.KeyDayStreak))
	if weeks := journey.Weeks(streak); weeks > 0 {
		_, _ = fmt.Fprintf(p.w, "  🗓️ %d", weeks)
	}
	_, _ = fmt.Fprintln(p.w)
	_, _ = p.italic.Fprintln(p.w, p.text(journey.MotivationKey(streak)))
	_, _ = fmt.Fprintln(p.w)

	var line strings.Builder
	for _, node := range journey.Nodes(streak) {
		switch node.Status {
		case journey.StatusCompleted:
			line.WriteString(color.GreenString("●"))
		case journey.StatusCurrent:
			line.WriteString(color.YellowString("◉"))
		default:
			line.WriteString("○")
		}
		if node.Milestone != nil {
			line.WriteString(node.Milestone.Emoji)
		}
	}
	_, _ = fmt.Fprintln(p.w, line.String())

	if next, ok := journey.NextMilestone(streak); ok {
		_, _ = fmt.Fprintf(p.w, "%s: %s %s (%d)\n", p.text(locale.KeyNextMilestone), next.Emoji, next.Label, next.Day)
	}
}

// Statistics prints the learned words per month with their levels.
func (p *Printer) Statistics(result statistics.StatisticsResult) {
	if len(result.Periods) == 0 {
		_, _ = fmt.Fprintln(p.w, "No learned words found for the specified period.")
		return
	}

	_, _ = p.bold.Fprintln(p.w, "Learning Statistics Report")
	_, _ = fmt.Fprintln(p.w, "==========================")
	_, _ = fmt.Fprintln(p.w)
	_, _ = fmt.Fprintf(p.w, "%-10s  %-8s  %-9s  %s\n", "Period", "Learned", "Favorites", "Levels")
	_, _ = fmt.Fprintf(p.w, "%-10s  %-8s  %-9s  %s\n", "------", "-------", "---------", "------")
	for _, s := range result.Periods {
		_, _ = fmt.Fprintf(p.w, "%-10s  %-8d  %-9d  %s\n", s.Period, s.Learned, s.Favorites, formatLevels(s.Levels))
	}
	_, _ = fmt.Fprintln(p.w)
	_, _ = fmt.Fprintf(p.w, "%-10s  %-8d  %-9d  %s\n",
		"Totals:", result.Aggregate.Learned, result.Aggregate.Favorites, formatLevels(result.Aggregate.Levels),
	)
}

func formatLevels(levels map[language.Level]int) string {
	var parts []string
	for _, level := range language.Levels() {
		if count := levels[level]; count > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", level, count))
		}
	}
	return strings.Join(parts, " ")
}

// Message prints a single localized line.
func (p *Printer) Message(key string) {
	_, _ = fmt.Fprintln(p.w, p.text(key))
}
