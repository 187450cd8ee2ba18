// Package catalog provides the immutable, language-keyed lists of learnable words and idioms.
package catalog

import (
	"github.com/at-ishikawa/dailyword/internal/language"
)

const translationNotAvailable = "Translation not available"

// Item is a single learnable word or idiom in a target language.
type Item struct {
	ID         string         `yaml:"id" validate:"required"`
	TargetText string         `yaml:"target_text" validate:"required"`
	Level      language.Level `yaml:"level" validate:"required,cefr"`

	// Translations and ExampleTranslations are keyed by UI language and always carry "en".
	Translations        map[language.Code]string `yaml:"translations" validate:"required,min=1"`
	ExampleText         string                   `yaml:"example_text" validate:"required"`
	ExampleTranslations map[language.Code]string `yaml:"example_translations"`

	Pronunciation string `yaml:"pronunciation,omitempty"`
	Category      string `yaml:"category,omitempty"`
}

// Translation returns the meaning of item in native, falling back to English.
func Translation(item Item, native language.Code) string {
	if meaning := item.Translations[native]; meaning != "" {
		return meaning
	}
	if meaning := item.Translations[language.Default]; meaning != "" {
		return meaning
	}
	return translationNotAvailable
}

// ExampleTranslation returns the translated example sentence in native, falling back to English.
func ExampleTranslation(item Item, native language.Code) string {
	if example := item.ExampleTranslations[native]; example != "" {
		return example
	}
	return item.ExampleTranslations[language.Default]
}
