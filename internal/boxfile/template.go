package boxfile

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// TemplateData is the data a Boxfile template is executed with.
type TemplateData struct {
	Values  map[string]any
	Secrets map[string]any
	Env     map[string]string
}

// NewTemplateData returns TemplateData with Env built from environ
// (KEY=VALUE entries, as returned by os.Environ).
func NewTemplateData(values, secrets map[string]any, environ []string) TemplateData {
	env := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}

	if values == nil {
		values = map[string]any{}
	}
	if secrets == nil {
		secrets = map[string]any{}
	}
	return TemplateData{Values: values, Secrets: secrets, Env: env}
}

// Execute renders content as a Go template with sprig functions.
// Referencing a missing map key is an error.
func Execute(name string, content []byte, data TemplateData) ([]byte, error) {
	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(sprig.TxtFuncMap()).
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	return buf.Bytes(), nil
}
