package locale

import (
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// TemplateData is what greeting and response templates can refer to.
type TemplateData struct {
	Word           string
	Meaning        string
	Example        string
	ExampleMeaning string
	Pronunciation  string
	TargetLanguage string
	Turn           int
}

// Template is a text/template parsed when its locale file is decoded.
type Template struct {
	raw  string
	tmpl *template.Template
}

func NewTemplate(name, text string) (*Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("template.Parse(%s) > %w", name, err)
	}
	return &Template{raw: text, tmpl: tmpl}, nil
}

func (t *Template) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return err
	}
	parsed, err := NewTemplate(fmt.Sprintf("line %d", value.Line), text)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}

func (t *Template) MarshalYAML() (any, error) {
	return t.raw, nil
}

// Render executes the template, returning the unrendered text if execution fails.
func (t *Template) Render(data TemplateData) string {
	var b strings.Builder
	if err := t.tmpl.Execute(&b, data); err != nil {
		return t.raw
	}
	return b.String()
}

func (t *Template) String() string {
	return t.raw
}
