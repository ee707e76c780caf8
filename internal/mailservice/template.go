package mailservice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*
var templateFS embed.FS

// templateFuncs are available to every notification template.
var templateFuncs = template.FuncMap{
	"displayName": func(name string) string {
		if strings.TrimSpace(name) == "" {
			return "(not given)"
		}
		return name
	},
	"userURL": func(id int) string {
		return fmt.Sprintf("/api/users/%d", id)
	},
}

func NewTemplate() *Template {
	return &Template{parsed: make(map[string]*template.Template)}
}

// lookup parses an embedded template file once and keeps it for later renders.
func (tp *Template) lookup(name string) (*template.Template, error) {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if t, ok := tp.parsed[name]; ok {
		return t, nil
	}

	t, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("could not parse template %s: %w", name, err)
	}
	tp.parsed[name] = t

	return t, nil
}

// Render executes the subject, plainBody and htmlBody blocks of the named template.
// The subject is collapsed to a single trimmed line so it is safe as a mail header.
func (tp *Template) Render(name string, data any) (*Notification, error) {
	t, err := tp.lookup(name)
	if err != nil {
		return nil, err
	}

	parts := make(map[string]string, 3)
	for _, block := range []string{"subject", "plainBody", "htmlBody"} {
		buf := new(bytes.Buffer)
		if err := t.ExecuteTemplate(buf, block, data); err != nil {
			return nil, fmt.Errorf("could not render %s of %s: %w", block, name, err)
		}
		parts[block] = buf.String()
	}

	return &Notification{
		Subject:   strings.Join(strings.Fields(parts["subject"]), " "),
		PlainBody: parts["plainBody"],
		HTMLBody:  parts["htmlBody"],
	}, nil
}
