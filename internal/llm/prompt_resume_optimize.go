package llm

import (
	"encoding/json"
	"strings"

	"careercoach-backend/resume/model"
)

// ResumeOptimizationParams are the inputs of the resume optimization prompt.
type ResumeOptimizationParams struct {
	Resume          model.ResumeData
	JobTitle        string
	Company         string
	Requirements    []string
	EmphasizeSkills []string
}

type resumeOptimizeView struct {
	JobTitle        string
	Company         string
	ResumeJSON      string
	Requirements    []string
	EmphasizeSkills []string
}

// ComposeResumeOptimizationPrompt builds the instruction for rewriting a resume
// toward a job. Identity-bearing facts are frozen by instruction only; callers
// must still parse the reply strictly.
func ComposeResumeOptimizationPrompt(p ResumeOptimizationParams) string {
	// ResumeData has only string and slice fields, so encoding cannot fail.
	raw, _ := json.MarshalIndent(p.Resume, "", "  ")
	return execute(resumeOptimizePrompt, resumeOptimizeView{
		JobTitle:        strings.TrimSpace(p.JobTitle),
		Company:         strings.TrimSpace(p.Company),
		ResumeJSON:      string(raw),
		Requirements:    compact(p.Requirements),
		EmphasizeSkills: compact(p.EmphasizeSkills),
	})
}
