package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
)

//go:embed *.tmpl
var FS embed.FS

var registry = map[string]struct {
	subject string
	file    string
}{
	"welcome":           {subject: "Welcome to the alumni network", file: "welcome.tmpl"},
	"profile_submitted": {subject: "Your profile is in review", file: "profile_submitted.tmpl"},
}

// Render renders a named template into subject and HTML body.
func Render(name string, data map[string]any) (subject, html string, err error) {
	entry, ok := registry[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	t, err := htmpl.ParseFS(FS, entry.file)
	if err != nil {
		return "", "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return entry.subject, buf.String(), nil
}
