// Package chat keeps the messages of one practice conversation in memory.
package chat

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/dailyword/internal/calendar"
	"github.com/at-ishikawa/dailyword/internal/catalog"
	"github.com/at-ishikawa/dailyword/internal/language"
	"github.com/at-ishikawa/dailyword/internal/tutor"
)

var ErrEmptyMessage = errors.New("message is empty")

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
}

// Tutor produces the assistant side of a conversation.
type Tutor interface {
	Greet(item catalog.Item, native, target language.Code) string
	Respond(req tutor.Request) string
}

// Session is a conversation about a single item. Nothing in it is persisted.
type Session struct {
	tutor  Tutor
	item   catalog.Item
	native language.Code
	target language.Code
	clock  calendar.Clock
	newID  func() string

	mu       sync.Mutex
	messages []Message
}

type Option func(*Session)

func WithClock(clock calendar.Clock) Option {
	return func(s *Session) {
		s.clock = clock
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Session) {
		s.newID = newID
	}
}

func NewSession(t Tutor, item catalog.Item, native, target language.Code, opts ...Option) *Session {
	session := &Session{
		tutor:  t,
		item:   item,
		native: native,
		target: target,
		clock:  calendar.RealClock{},
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(session)
	}
	return session
}

// Start adds the greeting. Calling it again returns the existing greeting.
func (s *Session) Start() Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.messages) > 0 {
		return s.messages[0]
	}
	return s.appendLocked(RoleAssistant, s.tutor.Greet(s.item, s.native, s.target))
}

// Send records the user's text and the tutor's reply to it.
func (s *Session) Send(text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	turns := len(s.messages)
	s.appendLocked(RoleUser, text)
	reply := s.tutor.Respond(tutor.Request{
		UserText:       text,
		Item:           s.item,
		NativeLanguage: s.native,
		TargetLanguage: s.target,
		TurnCount:      turns,
	})
	return s.appendLocked(RoleAssistant, reply), nil
}

func (s *Session) appendLocked(role Role, content string) Message {
	message := Message{
		ID:        s.newID(),
		Role:      role,
		Content:   content,
		Timestamp: s.clock.Now(),
	}
	s.messages = append(s.messages, message)
	return message
}

// Messages returns the conversation so far, oldest first.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.messages)
}

func (s *Session) Item() catalog.Item {
	return s.item
}
