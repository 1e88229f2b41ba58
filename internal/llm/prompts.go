package llm

import (
	_ "embed"
	"strconv"
	"strings"
	"text/template"
)

var (
	//go:embed prompts/cover_letter.tmpl
	coverLetterTemplate string
	//go:embed prompts/resume_optimize.tmpl
	resumeOptimizeTemplate string
)

var promptFuncs = template.FuncMap{
	"join": func(items []string) string { return strings.Join(items, ", ") },
	"inc":  func(i int) string { return strconv.Itoa(i + 1) },
}

var (
	coverLetterPrompt    = template.Must(template.New("cover_letter").Funcs(promptFuncs).Parse(coverLetterTemplate))
	resumeOptimizePrompt = template.Must(template.New("resume_optimize").Funcs(promptFuncs).Parse(resumeOptimizeTemplate))
)

func execute(t *template.Template, data any) string {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		// Templates are parsed at init and only read plain fields.
		panic("llm: render " + t.Name() + ": " + err.Error())
	}
	return strings.TrimSpace(b.String())
}
