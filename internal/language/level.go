package language

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// Level is a CEFR proficiency tier.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

// levels is ordered from beginner to mastery.
var levels = []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}

func Levels() []Level {
	return slices.Clone(levels)
}

func ParseLevel(value string) (Level, error) {
	level := Level(strings.ToUpper(strings.TrimSpace(value)))
	if !level.IsValid() {
		return "", fmt.Errorf("invalid level %q, valid values are %v", value, levels)
	}
	return level, nil
}

func (l Level) IsValid() bool {
	return l.Rank() > 0
}

// Rank returns 1 for A1 through 6 for C2, and 0 for anything else.
func (l Level) Rank() int {
	return slices.Index(levels, l) + 1
}

// AtOrBelow reports whether l is a valid level not harder than max.
func (l Level) AtOrBelow(max Level) bool {
	return l.IsValid() && max.IsValid() && l.Rank() <= max.Rank()
}

// Set implements pflag.Value.
func (l *Level) Set(value string) error {
	level, err := ParseLevel(value)
	if err != nil {
		return err
	}
	*l = level
	return nil
}

// String implements pflag.Value.
func (l *Level) String() string {
	if l == nil {
		return ""
	}
	return string(*l)
}

// Type implements pflag.Value.
func (l *Level) Type() string {
	return "level"
}

var (
	_ pflag.Value = (*Level)(nil)
)
