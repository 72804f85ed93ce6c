package workflow

import (
	"bytes"
	"fmt"
	"text/template"
)

// Vars is the data every step template is rendered against.
type Vars struct {
	Vendor     string
	Manifest   string
	GraphQLIDE string
	ThemeFrom  string
	ThemeTo    string
}

// ProductionURL is where the operator reviews the production workspace.
func (v Vars) ProductionURL() string {
	return fmt.Sprintf("https://production--%s.myvtex.com/", v.Vendor)
}

// Render executes a step template against vars.
func Render(input string, vars Vars) (string, error) {
	tmpl, err := template.New("step").Option("missingkey=error").Parse(input)
	if err != nil {
		return "", fmt.Errorf("parse template %q: %w", input, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("render template %q: %w", input, err)
	}
	return buf.String(), nil
}
