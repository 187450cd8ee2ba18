package catalog

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/dailyword/internal/language"
	"github.com/at-ishikawa/dailyword/internal/validate"
)

// ValidationError represents a single problem found in a catalog
type ValidationError struct {
	Location    string
	Message     string
	Severity    string // "error" or "warning"
	Suggestions []string
}

func (e ValidationError) Error() string {
	msg := e.Message
	if e.Location != "" {
		msg = fmt.Sprintf("%s: %s", e.Location, e.Message)
	}
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" [Suggestion: %s]", strings.Join(e.Suggestions, "; "))
	}
	return msg
}

type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r *ValidationResult) AddError(err ValidationError) {
	err.Severity = "error"
	r.Errors = append(r.Errors, err)
}

func (r *ValidationResult) AddWarning(err ValidationError) {
	err.Severity = "warning"
	r.Warnings = append(r.Warnings, err)
}

// Validate checks that items form a usable catalog:
// at least one item, unique IDs, and an English meaning and example meaning for every item.
func Validate(v *validate.Validator, items []Item) *ValidationResult {
	result := &ValidationResult{}
	if len(items) == 0 {
		result.AddError(ValidationError{
			Message: "catalog has no items",
		})
		return result
	}

	seen := make(map[string]int, len(items))
	for i, item := range items {
		location := fmt.Sprintf("items[%d]", i)
		if item.ID != "" {
			location = fmt.Sprintf("items[%d] (%s)", i, item.ID)
		}

		if err := v.Struct(item); err != nil {
			result.AddError(ValidationError{
				Location: location,
				Message:  err.Error(),
			})
		}

		if item.ID != "" {
			if first, ok := seen[item.ID]; ok {
				result.AddError(ValidationError{
					Location:    location,
					Message:     fmt.Sprintf("duplicate id %q", item.ID),
					Suggestions: []string{fmt.Sprintf("the id is already used by items[%d]", first)},
				})
			} else {
				seen[item.ID] = i
			}
		}

		if item.Translations[language.Default] == "" {
			result.AddError(ValidationError{
				Location:    location,
				Message:     "missing English translation",
				Suggestions: []string{"add translations.en"},
			})
		}
		if item.ExampleTranslations[language.Default] == "" {
			result.AddError(ValidationError{
				Location:    location,
				Message:     "missing English example translation",
				Suggestions: []string{"add example_translations.en"},
			})
		}

		for code := range item.Translations {
			if !code.IsSupported() {
				result.AddWarning(ValidationError{
					Location: location,
					Message:  fmt.Sprintf("translation for unsupported language %q is never shown", code),
				})
			}
		}
		if item.ExampleText != "" && !strings.Contains(
			strings.ToLower(item.ExampleText), strings.ToLower(firstWord(item.TargetText)),
		) {
			result.AddWarning(ValidationError{
				Location: location,
				Message:  "example sentence does not contain the target text",
			})
		}
	}
	return result
}

func firstWord(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
