// Package language defines the supported language codes and CEFR proficiency levels.
package language

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Code is a two-letter ISO 639-1 language code.
type Code string

const (
	English    Code = "en"
	Turkish    Code = "tr"
	Spanish    Code = "es"
	German     Code = "de"
	French     Code = "fr"
	Portuguese Code = "pt"
	Italian    Code = "it"
	Russian    Code = "ru"
	Japanese   Code = "ja"
	Korean     Code = "ko"
	Chinese    Code = "zh"

	// Default is used whenever a language-keyed table has no entry for a code.
	Default = English
)

var ErrUnsupported = errors.New("unsupported language")

var supported = []Code{
	English, Turkish, Spanish, German, French, Portuguese, Italian, Russian, Japanese, Korean, Chinese,
}

var flags = map[Code]string{
	English:    "🇺🇸",
	Turkish:    "🇹🇷",
	Spanish:    "🇪🇸",
	German:     "🇩🇪",
	French:     "🇫🇷",
	Portuguese: "🇧🇷",
	Italian:    "🇮🇹",
	Russian:    "🇷🇺",
	Japanese:   "🇯🇵",
	Korean:     "🇰🇷",
	Chinese:    "🇨🇳",
}

// Supported returns every supported code in display order.
func Supported() []Code {
	return slices.Clone(supported)
}

// Parse normalizes a BCP 47 tag such as "pt-BR" or "TR" to a supported code.
func Parse(value string) (Code, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: empty code", ErrUnsupported)
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", fmt.Errorf("language.Parse(%s) > %w", value, errors.Join(ErrUnsupported, err))
	}
	base, _ := tag.Base()
	code := Code(base.String())
	if !code.IsSupported() {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, value)
	}
	return code, nil
}

func (c Code) IsSupported() bool {
	return slices.Contains(supported, c)
}

func (c Code) Tag() language.Tag {
	return language.Make(string(c))
}

// Lower lowercases s using the casing rules of c, e.g. Turkish maps "I" to "ı".
func (c Code) Lower(s string) string {
	return cases.Lower(c.Tag()).String(s)
}

// DisplayName returns the name of c written in the language in.
func (c Code) DisplayName(in Code) string {
	namer := display.Tags(in.Tag())
	if namer == nil {
		namer = display.Tags(Default.Tag())
	}
	name := namer.Name(c.Tag())
	if name == "" {
		return strings.ToUpper(string(c))
	}
	return name
}

// NativeName returns the name of c written in c itself, e.g. "Türkçe".
func (c Code) NativeName() string {
	name := display.Self.Name(c.Tag())
	if name == "" {
		return strings.ToUpper(string(c))
	}
	return name
}

func (c Code) Flag() string {
	return flags[c]
}

// Set implements pflag.Value.
func (c *Code) Set(value string) error {
	code, err := Parse(value)
	if err != nil {
		return err
	}
	*c = code
	return nil
}

// String implements pflag.Value.
func (c *Code) String() string {
	if c == nil {
		return ""
	}
	return string(*c)
}

// Type implements pflag.Value.
func (c *Code) Type() string {
	return "language"
}

var (
	_ pflag.Value = (*Code)(nil)
)
