// Package locale holds the per-language UI strings, quick replies, greeting and tutor
// response templates. Every table falls back to English on its own.
package locale

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/dailyword/internal/language"
)

//go:embed data/*.yml
var embedded embed.FS

// Keys of the UI table used outside the tutor.
const (
	KeyAppName         = "app_name"
	KeyItemOfTheDay    = "item_of_the_day"
	KeyMeaning         = "meaning"
	KeyExampleSentence = "example_sentence"
	KeyDayStreak       = "day_streak"
	KeyPracticeTime    = "practice_time"
	KeyTyping          = "typing"
	KeyWriteSentence   = "write_your_sentence"
	KeyLanguageSelect  = "language_select_title"
	KeyErrorMessage    = "error_message"
	KeyHistoryTitle    = "history_title"
	KeyFavoritesTitle  = "favorites_title"
	KeyEmptyHistory    = "empty_history"
	KeyTotalLearned    = "total_learned"
	KeyResetDone       = "reset_done"
	KeyNextMilestone   = "next_milestone"
	KeyQuitHint        = "quit_hint"
	KeyReminderTitle   = "reminder_title"
	KeyReminderBody    = "reminder_body"
)

// QuickReply is a canned message offered next to the chat input.
// Intent names the tutor branch its text triggers.
type QuickReply struct {
	Intent string `yaml:"intent"`
	Text   string `yaml:"text"`
}

// Responses are the tutor templates of one language.
type Responses struct {
	ExampleRequest       *Template   `yaml:"example_request"`
	MeaningRequest       *Template   `yaml:"meaning_request"`
	PronunciationRequest *Template   `yaml:"pronunciation_request"`
	CorrectUsage         []*Template `yaml:"correct_usage"`
	Encouragement        []*Template `yaml:"encouragement"`
	ShortMessage         *Template   `yaml:"short_message"`
}

func (r *Responses) complete() bool {
	return r != nil &&
		r.ExampleRequest != nil &&
		r.MeaningRequest != nil &&
		r.PronunciationRequest != nil &&
		r.ShortMessage != nil &&
		len(r.CorrectUsage) > 0 &&
		len(r.Encouragement) > 0
}

// Triggers are lowercase substrings that mark a request in a user message.
type Triggers struct {
	Example       []string `yaml:"example"`
	Meaning       []string `yaml:"meaning"`
	Pronunciation []string `yaml:"pronunciation"`
}

func (t *Triggers) empty() bool {
	return t == nil || len(t.Example)+len(t.Meaning)+len(t.Pronunciation) == 0
}

type entry struct {
	UI           map[string]string `yaml:"ui"`
	QuickReplies []QuickReply      `yaml:"quick_replies"`
	Greeting     *Template         `yaml:"greeting"`
	Responses    *Responses        `yaml:"responses"`
	Triggers     *Triggers         `yaml:"triggers"`
}

// Tables is read-only once loaded and safe for concurrent use.
type Tables struct {
	entries map[language.Code]*entry
	logger  *slog.Logger
}

type Option func(*Tables)

func WithLogger(logger *slog.Logger) Option {
	return func(t *Tables) {
		t.logger = logger
	}
}

// Load reads the tables compiled into the binary.
func Load(opts ...Option) (*Tables, error) {
	fsys, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("fs.Sub() > %w", err)
	}
	return LoadFS(fsys, opts...)
}

// LoadFS reads one <code>.yml file per language from the root of fsys.
// The English file must carry every table since it is the fallback of all others.
func LoadFS(fsys fs.FS, opts ...Option) (*Tables, error) {
	tables := &Tables{
		entries: make(map[language.Code]*entry),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(tables)
	}

	files, err := fs.Glob(fsys, "*.yml")
	if err != nil {
		return nil, fmt.Errorf("fs.Glob() > %w", err)
	}
	for _, file := range files {
		code, err := language.Parse(strings.TrimSuffix(path.Base(file), ".yml"))
		if err != nil {
			return nil, fmt.Errorf("locale file %s: %w", file, err)
		}
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("fs.ReadFile(%s) > %w", file, err)
		}
		var e entry
		if err := yaml.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", file, err)
		}
		tables.entries[code] = &e
	}

	en, ok := tables.entries[language.Default]
	if !ok {
		return nil, errors.New("no locale file for the default language")
	}
	switch {
	case len(en.UI) == 0:
		return nil, errors.New("default locale has no ui strings")
	case len(en.QuickReplies) == 0:
		return nil, errors.New("default locale has no quick replies")
	case en.Greeting == nil:
		return nil, errors.New("default locale has no greeting")
	case !en.Responses.complete():
		return nil, errors.New("default locale has incomplete responses")
	case en.Triggers.empty():
		return nil, errors.New("default locale has no triggers")
	}
	return tables, nil
}

// Languages returns the codes that have a locale file.
func (t *Tables) Languages() []language.Code {
	codes := make([]language.Code, 0, len(t.entries))
	for code := range t.entries {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

func (t *Tables) fallback(table string, code language.Code) *entry {
	t.logger.Debug("localization missing, using the default language",
		"table", table,
		"language", code,
	)
	return t.entries[language.Default]
}

// UI returns the UI strings of code, or the English ones when code has none.
func (t *Tables) UI(code language.Code) map[string]string {
	if e, ok := t.entries[code]; ok && len(e.UI) > 0 {
		return e.UI
	}
	return t.fallback("ui", code).UI
}

// Text returns one UI string. A key missing in code is taken from English,
// and a key missing everywhere is returned as is.
func (t *Tables) Text(code language.Code, key string) string {
	if text := t.UI(code)[key]; text != "" {
		return text
	}
	if text := t.entries[language.Default].UI[key]; text != "" {
		t.logger.Debug("ui string missing, using the default language", "language", code, "key", key)
		return text
	}
	t.logger.Debug("ui string missing", "key", key)
	return key
}

func (t *Tables) QuickReplies(code language.Code) []QuickReply {
	if e, ok := t.entries[code]; ok && len(e.QuickReplies) > 0 {
		return slices.Clone(e.QuickReplies)
	}
	return slices.Clone(t.fallback("quick_replies", code).QuickReplies)
}

func (t *Tables) Greeting(code language.Code) *Template {
	if e, ok := t.entries[code]; ok && e.Greeting != nil {
		return e.Greeting
	}
	return t.fallback("greeting", code).Greeting
}

// Responses returns the response templates of code.
// A language with only some of the templates uses the English set as a whole.
func (t *Tables) Responses(code language.Code) *Responses {
	if e, ok := t.entries[code]; ok && e.Responses.complete() {
		return e.Responses
	}
	return t.fallback("responses", code).Responses
}

func (t *Tables) Triggers(code language.Code) *Triggers {
	if e, ok := t.entries[code]; ok && !e.Triggers.empty() {
		return e.Triggers
	}
	return t.fallback("triggers", code).Triggers
}
