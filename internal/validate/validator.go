// Package validate wraps go-playground/validator with English error messages and the
// domain-specific tags used by configuration, preferences and catalogs.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/at-ishikawa/dailyword/internal/language"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Validator validates structs and returns human-readable errors.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func New() (*Validator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"mapstructure", "yaml"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	customs := []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{tag: "langcode", fn: isSupportedLanguage, message: "{0} must be one of the supported language codes"},
		{tag: "cefr", fn: isCEFRLevel, message: "{0} must be a CEFR level (A1, A2, B1, B2, C1, C2)"},
		{tag: "clock", fn: isClock, message: "{0} must be a time of day in HH:MM format"},
	}
	for _, custom := range customs {
		if err := validate.RegisterValidation(custom.tag, custom.fn); err != nil {
			return nil, fmt.Errorf("failed to register %s validation: %w", custom.tag, err)
		}
		tag, message := custom.tag, custom.message
		if err := validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
			return ut.Add(tag, message, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, fe.Field())
			return t
		}); err != nil {
			return nil, fmt.Errorf("failed to register %s translation: %w", tag, err)
		}
	}

	return &Validator{
		validate:   validate,
		translator: trans,
	}, nil
}

// Struct validates v and joins every failed rule into a single error.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validate.Struct() > %w", err)
	}
	var errorMsgs []string
	for _, e := range validationErrors {
		errorMsgs = append(errorMsgs, e.Translate(v.translator))
	}
	return errors.New(strings.Join(errorMsgs, ", "))
}

func isSupportedLanguage(fl validator.FieldLevel) bool {
	return language.Code(fl.Field().String()).IsSupported()
}

func isCEFRLevel(fl validator.FieldLevel) bool {
	return language.Level(fl.Field().String()).IsValid()
}

func isClock(fl validator.FieldLevel) bool {
	return clockPattern.MatchString(fl.Field().String())
}
