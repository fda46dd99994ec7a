package notify

import (
	"bytes"
	_ "embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplates []byte

type rawTemplate struct {
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
}

type template struct {
	subject *texttemplate.Template
	body    *htmltemplate.Template
}

// Catalog holds the parsed e-mail templates keyed by template ID.
type Catalog struct {
	templates map[string]template
}

// DefaultCatalog parses the embedded templates.yaml.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultTemplates)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var raw map[string]rawTemplate
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	c := &Catalog{templates: make(map[string]template, len(raw))}
	for id, rt := range raw {
		subj, err := texttemplate.New(id).Option("missingkey=zero").Parse(rt.Subject)
		if err != nil {
			return nil, fmt.Errorf("template %s subject: %w", id, err)
		}
		body, err := htmltemplate.New(id).Option("missingkey=zero").Parse(rt.Body)
		if err != nil {
			return nil, fmt.Errorf("template %s body: %w", id, err)
		}
		c.templates[id] = template{subject: subj, body: body}
	}
	return c, nil
}

// Render fills the template with fields. Field values are HTML-escaped in the
// body.
func (c *Catalog) Render(templateID string, fields map[string]string) (subject, html string, err error) {
	t, ok := c.templates[templateID]
	if !ok {
		return "", "", fmt.Errorf("unknown template %q", templateID)
	}
	if fields == nil {
		fields = map[string]string{}
	}

	var sb, bb bytes.Buffer
	if err := t.subject.Execute(&sb, fields); err != nil {
		return "", "", err
	}
	if err := t.body.Execute(&bb, fields); err != nil {
		return "", "", err
	}
	return sb.String(), bb.String(), nil
}
