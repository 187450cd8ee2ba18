package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/dailyword/internal/catalog"
	"github.com/at-ishikawa/dailyword/internal/chat"
	"github.com/at-ishikawa/dailyword/internal/language"
	"github.com/at-ishikawa/dailyword/internal/locale"
	"github.com/at-ishikawa/dailyword/internal/tutor"
)

type firstRandom struct{}

func (firstRandom) IntN(int) int {
	return 0
}

var testItem = catalog.Item{
	ID:                  "w1",
	TargetText:          "break the ice",
	Level:               language.LevelB1,
	Translations:        map[language.Code]string{"en": "to start a friendly conversation"},
	ExampleText:         "He told a joke to break the ice.",
	ExampleTranslations: map[language.Code]string{"en": "He told a joke to relax everyone."},
}

func loadTables(t *testing.T) *locale.Tables {
	t.Helper()
	color.NoColor = true
	tables, err := locale.Load(locale.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	require.NoError(t, err)
	return tables
}

func TestChatCLI(t *testing.T) {
	tables := loadTables(t)
	engine := tutor.NewEngine(tables, tutor.WithRandom(firstRandom{}))
	session := chat.NewSession(engine, testItem, language.English, language.English)

	var waits []time.Duration
	var out bytes.Buffer
	chatCLI := NewChatCLI(session, engine, tables, language.English,
		WithIO(strings.NewReader("1\n\nI want to break the ice at the party\nquit\nnever read\n"), &out),
		WithTypingDelay(800*time.Millisecond, 1600*time.Millisecond),
		WithRandom(firstRandom{}),
		withWait(func(ctx context.Context, d time.Duration) error {
			waits = append(waits, d)
			return nil
		}),
	)

	chatCLI.Begin()
	require.NoError(t, chatCLI.Run(context.Background(), chatCLI))

	output := out.String()
	assert.Contains(t, output, "💬 Practice Time!")
	assert.Contains(t, output, `Today we'll learn: "break the ice"!`)
	assert.Contains(t, output, "[1] 📝 Give me an example")
	assert.Contains(t, output, "Type 'quit' to finish the practice.")
	assert.Contains(t, output, `Sure! Here's another example with "break the ice":`)
	assert.Contains(t, output, "Great job! 🎉 You used the idiom correctly!")
	assert.Equal(t, []time.Duration{800 * time.Millisecond, 800 * time.Millisecond}, waits)

	messages := session.Messages()
	require.Len(t, messages, 5)
	assert.Equal(t, "📝 Give me an example", messages[1].Content)
	assert.Equal(t, "I want to break the ice at the party", messages[3].Content)
}

func TestChatCLI_Session(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantErr   error
		wantCount int
	}{
		{name: "end of input", input: "", wantErr: errEnd},
		{name: "quit", input: "QUIT\n", wantErr: errEnd},
		{name: "exit", input: "exit\n", wantErr: errEnd},
		{name: "empty line is ignored", input: "   \n", wantCount: 1},
		{name: "out of range number is sent as text", input: "7\n", wantCount: 3},
		{name: "last line without line break", input: "hello there", wantCount: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := loadTables(t)
			engine := tutor.NewEngine(tables, tutor.WithRandom(firstRandom{}))
			session := chat.NewSession(engine, testItem, language.English, language.English)
			chatCLI := NewChatCLI(session, engine, tables, language.English,
				WithIO(strings.NewReader(tt.input), &bytes.Buffer{}),
			)
			session.Start()

			err := chatCLI.Session(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, session.Messages(), tt.wantCount)
		})
	}
}

func TestChatCLI_Session_Cancelled(t *testing.T) {
	tables := loadTables(t)
	engine := tutor.NewEngine(tables)
	session := chat.NewSession(engine, testItem, language.English, language.English)
	chatCLI := NewChatCLI(session, engine, tables, language.English,
		WithIO(strings.NewReader("hello there\n"), &bytes.Buffer{}),
		WithTypingDelay(time.Hour, time.Hour),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, chatCLI.Session(ctx), context.Canceled)
}
