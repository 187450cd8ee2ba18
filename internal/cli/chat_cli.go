package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/dailyword/internal/chat"
	"github.com/at-ishikawa/dailyword/internal/language"
	"github.com/at-ishikawa/dailyword/internal/locale"
	"github.com/at-ishikawa/dailyword/internal/tutor"
)

var quitCommands = []string{"quit", "exit", ":q"}

// ChatCLI is the practice conversation with the tutor in a terminal.
type ChatCLI struct {
	*InteractiveCLI

	session      *chat.Session
	tables       *locale.Tables
	native       language.Code
	quickReplies []locale.QuickReply

	random   tutor.Random
	minDelay time.Duration
	maxDelay time.Duration
	wait     func(ctx context.Context, d time.Duration) error
}

type ChatOption func(*chatOptions)

type chatOptions struct {
	stdin    io.Reader
	stdout   io.Writer
	random   tutor.Random
	minDelay time.Duration
	maxDelay time.Duration
	wait     func(ctx context.Context, d time.Duration) error
}

func WithIO(stdin io.Reader, stdout io.Writer) ChatOption {
	return func(o *chatOptions) {
		o.stdin = stdin
		o.stdout = stdout
	}
}

func WithTypingDelay(minDelay, maxDelay time.Duration) ChatOption {
	return func(o *chatOptions) {
		o.minDelay = minDelay
		o.maxDelay = maxDelay
	}
}

func WithRandom(random tutor.Random) ChatOption {
	return func(o *chatOptions) {
		o.random = random
	}
}

func withWait(wait func(ctx context.Context, d time.Duration) error) ChatOption {
	return func(o *chatOptions) {
		o.wait = wait
	}
}

func NewChatCLI(
	session *chat.Session,
	engine *tutor.Engine,
	tables *locale.Tables,
	native language.Code,
	opts ...ChatOption,
) *ChatCLI {
	options := chatOptions{
		random: globalRandom{},
		wait:   chat.Wait,
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &ChatCLI{
		InteractiveCLI: newInteractiveCLI(options.stdin, options.stdout),
		session:        session,
		tables:         tables,
		native:         native,
		quickReplies:   engine.QuickReplies(native),
		random:         options.random,
		minDelay:       options.minDelay,
		maxDelay:       options.maxDelay,
		wait:           options.wait,
	}
}

// Begin prints the greeting and the quick replies.
func (c *ChatCLI) Begin() {
	out := c.stdoutWriter
	_, _ = c.bold.Fprintln(out, c.tables.Text(c.native, locale.KeyPracticeTime))
	_, _ = fmt.Fprintln(out)
	c.printAssistant(c.session.Start())

	for i, reply := range c.quickReplies {
		_, _ = fmt.Fprintf(out, "  [%d] %s\n", i+1, reply.Text)
	}
	_, _ = c.italic.Fprintln(out, c.tables.Text(c.native, locale.KeyQuitHint))
	_, _ = fmt.Fprintln(out)
}

// Session handles one line of user input.
func (c *ChatCLI) Session(ctx context.Context) error {
	_, _ = c.bold.Fprint(c.stdoutWriter, "> ")
	line, err := c.readLine()
	if errors.Is(err, io.EOF) {
		return errEnd
	}
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	text := strings.TrimSpace(line)
	for _, command := range quitCommands {
		if strings.EqualFold(text, command) {
			return errEnd
		}
	}
	if n, err := strconv.Atoi(text); err == nil && n >= 1 && n <= len(c.quickReplies) {
		text = c.quickReplies[n-1].Text
		_, _ = fmt.Fprintln(c.stdoutWriter, text)
	}

	reply, err := c.session.Send(text)
	if errors.Is(err, chat.ErrEmptyMessage) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("session.Send() > %w", err)
	}

	_, _ = c.italic.Fprintln(c.stdoutWriter, c.tables.Text(c.native, locale.KeyTyping))
	if err := c.wait(ctx, chat.TypingDelay(c.random, c.minDelay, c.maxDelay)); err != nil {
		return err
	}
	c.printAssistant(reply)
	return nil
}

func (c *ChatCLI) printAssistant(message chat.Message) {
	_, _ = color.New(color.FgCyan).Fprintf(c.stdoutWriter, "🤖 %s\n\n", message.Content)
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int {
	return rand.IntN(n)
}
