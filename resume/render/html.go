package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"careercoach-backend/resume/model"
)

//go:embed templates/resume.html.tmpl
var resumeHTML string

var htmlTemplate = template.Must(template.New("resume").Funcs(template.FuncMap{
	"join": strings.Join,
	"style": func(name string) template.CSS {
		return template.CSS(StyleMap[name].CSS())
	},
	"contact": func(d TemplateData) []string {
		return cleanList([]string{d.ContactEmail, d.PhoneNumber, d.Location})
	},
}).Parse(resumeHTML))

// HTML renders the resume as a standalone document for raw-HTML conversion.
func HTML(resume model.ResumeData) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, Project(resume)); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}
