package reminder

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/at-ishikawa/dailyword/internal/catalog"
)

// Reminder is what gets shown to the learner once a day.
type Reminder struct {
	Title string
	Body  string
	Item  catalog.Item
}

//go:generate mockgen -source=notifier.go -destination=../mocks/reminder/mock_notifier.go -package=mock_reminder

type Notifier interface {
	Notify(ctx context.Context, reminder Reminder) error
}

// WriterNotifier prints reminders to a terminal.
type WriterNotifier struct {
	w io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Notify(ctx context.Context, reminder Reminder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	title := color.New(color.Bold, color.FgCyan).Sprint(reminder.Title)
	if _, err := fmt.Fprintf(n.w, "%s\n%s\n", title, reminder.Body); err != nil {
		return fmt.Errorf("fmt.Fprintf() > %w", err)
	}
	if reminder.Item.TargetText != "" {
		if _, err := fmt.Fprintf(n.w, "  %s\n", color.YellowString(reminder.Item.TargetText)); err != nil {
			return fmt.Errorf("fmt.Fprintf() > %w", err)
		}
	}
	return nil
}
