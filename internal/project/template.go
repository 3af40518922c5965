package project

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Params carries the values rendered into starter files.
type Params struct {
	// Name is the project name; it appears in page titles and the README.
	Name string

	// PythonVersion is the pinned interpreter version.
	PythonVersion string

	// DBRelPath is the database path as the generated sources reference it.
	DBRelPath string

	// TableName is the placeholder table the viewer queries.
	TableName string
}

// Render executes the named embedded template with p.
func Render(name string, p Params) ([]byte, error) {
	t, err := template.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, p); err != nil {
		return nil, fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
