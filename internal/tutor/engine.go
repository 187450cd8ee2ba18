// Package tutor answers practice messages about the item of the day with localized templates.
package tutor

import (
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/at-ishikawa/dailyword/internal/catalog"
	"github.com/at-ishikawa/dailyword/internal/language"
	"github.com/at-ishikawa/dailyword/internal/locale"
)

type Intent string

const (
	IntentExample       Intent = "example"
	IntentMeaning       Intent = "meaning"
	IntentPronunciation Intent = "pronunciation"
	IntentCorrectUsage  Intent = "correct_usage"
	IntentTooShort      Intent = "too_short"
	IntentEncouragement Intent = "encouragement"
)

const (
	defaultMinTokenLength = 4
	defaultShortMessage   = 10
)

// Random picks an index in [0, n).
type Random interface {
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int {
	return rand.IntN(n)
}

// Request is one user turn of a practice conversation.
type Request struct {
	UserText       string
	Item           catalog.Item
	NativeLanguage language.Code
	TargetLanguage language.Code
	// TurnCount is the number of messages exchanged before this one.
	TurnCount int
}

type Engine struct {
	tables         *locale.Tables
	random         Random
	minTokenLength int
	shortMessage   int
}

type Option func(*Engine)

func WithRandom(random Random) Option {
	return func(e *Engine) {
		e.random = random
	}
}

// WithMinTokenLength sets how many runes a word of the target text needs
// before it alone counts as using the target text.
func WithMinTokenLength(n int) Option {
	return func(e *Engine) {
		e.minTokenLength = n
	}
}

// WithShortMessage sets the rune count below which a message is too short.
func WithShortMessage(n int) Option {
	return func(e *Engine) {
		e.shortMessage = n
	}
}

func NewEngine(tables *locale.Tables, opts ...Option) *Engine {
	engine := &Engine{
		tables:         tables,
		random:         globalRandom{},
		minTokenLength: defaultMinTokenLength,
		shortMessage:   defaultShortMessage,
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Classify returns the first matching intent in the order
// example, meaning, pronunciation, correct usage, too short, encouragement.
func (e *Engine) Classify(req Request) Intent {
	switch {
	case e.triggered(req, func(t *locale.Triggers) []string { return t.Example }):
		return IntentExample
	case e.triggered(req, func(t *locale.Triggers) []string { return t.Meaning }):
		return IntentMeaning
	case e.triggered(req, func(t *locale.Triggers) []string { return t.Pronunciation }):
		return IntentPronunciation
	case e.usesTarget(req):
		return IntentCorrectUsage
	case utf8.RuneCountInString(strings.TrimSpace(req.UserText)) < e.shortMessage:
		return IntentTooShort
	default:
		return IntentEncouragement
	}
}

func (e *Engine) usesTarget(req Request) bool {
	target := targetLanguage(req)
	phrase := target.Lower(strings.TrimSpace(req.Item.TargetText))
	if phrase == "" {
		return false
	}
	text := target.Lower(req.UserText)
	if strings.Contains(text, phrase) {
		return true
	}
	for _, token := range strings.Fields(phrase) {
		if utf8.RuneCountInString(token) >= e.minTokenLength && strings.Contains(text, token) {
			return true
		}
	}
	return false
}

// Respond returns the tutor's reply to one user message.
func (e *Engine) Respond(req Request) string {
	responses := e.tables.Responses(req.NativeLanguage)
	data := e.templateData(req)

	switch e.Classify(req) {
	case IntentExample:
		return responses.ExampleRequest.Render(data)
	case IntentMeaning:
		return responses.MeaningRequest.Render(data)
	case IntentPronunciation:
		return responses.PronunciationRequest.Render(data)
	case IntentCorrectUsage:
		return e.pick(responses.CorrectUsage).Render(data)
	case IntentTooShort:
		return responses.ShortMessage.Render(data)
	default:
		return e.pick(responses.Encouragement).Render(data)
	}
}

// Greet introduces the item at the start of a conversation.
func (e *Engine) Greet(item catalog.Item, native, target language.Code) string {
	return e.tables.Greeting(native).Render(e.templateData(Request{
		Item:           item,
		NativeLanguage: native,
		TargetLanguage: target,
	}))
}

func (e *Engine) QuickReplies(native language.Code) []locale.QuickReply {
	return e.tables.QuickReplies(native)
}

func (e *Engine) pick(pool []*locale.Template) *locale.Template {
	return pool[e.random.IntN(len(pool))]
}

func (e *Engine) templateData(req Request) locale.TemplateData {
	target := targetLanguage(req)
	pronunciation := req.Item.Pronunciation
	if pronunciation == "" {
		pronunciation = target.Lower(req.Item.TargetText)
	}
	return locale.TemplateData{
		Word:           req.Item.TargetText,
		Meaning:        catalog.Translation(req.Item, req.NativeLanguage),
		Example:        req.Item.ExampleText,
		ExampleMeaning: catalog.ExampleTranslation(req.Item, req.NativeLanguage),
		Pronunciation:  pronunciation,
		TargetLanguage: target.DisplayName(req.NativeLanguage),
		Turn:           req.TurnCount,
	}
}

func targetLanguage(req Request) language.Code {
	if req.TargetLanguage == "" {
		return language.Default
	}
	return req.TargetLanguage
}

// triggered reports whether the text contains a native or English trigger,
// each lowered with its own language's casing rules.
func (e *Engine) triggered(req Request, words func(*locale.Triggers) []string) bool {
	for _, code := range []language.Code{req.NativeLanguage, language.Default} {
		if containsAny(code.Lower(req.UserText), words(e.tables.Triggers(code))) {
			return true
		}
	}
	return false
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if word != "" && strings.Contains(text, word) {
			return true
		}
	}
	return false
}
