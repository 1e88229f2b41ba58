package llm

import (
	"strings"
	"testing"

	"careercoach-backend/resume/model"
)

func optimizeParams() ResumeOptimizationParams {
	return ResumeOptimizationParams{
		Resume: model.ResumeData{
			FullName: "Ada Lovelace",
			WorkExperience: []model.WorkExperience{
				{JobTitle: "Engineer", CompanyName: "Analytical Engines", StartDate: "2020-01"},
			},
			Education: []model.Education{{Degree: "BSc", Institution: "University of London"}},
			Skills:    []string{"Go"},
		},
		JobTitle:        "Platform Engineer",
		Company:         "Acme Corp",
		Requirements:    []string{"Go", "Kubernetes"},
		EmphasizeSkills: []string{"Kubernetes"},
	}
}

func TestResumeOptimizationPromptFreezesIdentityFacts(t *testing.T) {
	prompt := ComposeResumeOptimizationPrompt(optimizeParams())

	for _, want := range []string{
		"Please optimize this resume for a Platform Engineer position at Acme Corp.",
		`"company_name": "Analytical Engines"`,
		`"end_date": null`,
		"Job Requirements:\n- Go\n- Kubernetes",
		"Skills to Emphasize: Kubernetes",
		"IMPORTANT: DO NOT add, remove, or modify any:",
		"Company names or dates",
		"Append the skills to emphasize to the existing skills list",
		"Return ONLY the optimized resume data in valid JSON format",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("missing %q in:\n%s", want, prompt)
		}
	}
}

func TestResumeOptimizationPromptOmitsEmptySections(t *testing.T) {
	p := optimizeParams()
	p.Requirements = nil
	p.EmphasizeSkills = []string{" "}
	prompt := ComposeResumeOptimizationPrompt(p)

	for _, absent := range []string{"Job Requirements:", "Skills to Emphasize", "Append the skills"} {
		if strings.Contains(prompt, absent) {
			t.Fatalf("unexpected %q in:\n%s", absent, prompt)
		}
	}
	if prompt != ComposeResumeOptimizationPrompt(p) {
		t.Fatalf("prompt is not deterministic")
	}
}
