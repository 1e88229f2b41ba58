package llm

import (
	"fmt"
	"strings"
	"time"
)

// UserInsights are the applicant's recent achievements, grouped for the prompt.
type UserInsights struct {
	RecentCertifications []string
	RecentProjects       []string
	RelevantExperience   []string
}

// CoverLetterParams are the inputs of the cover-letter prompt. Today is rendered as the
// letter date when set; leave it zero for a date-free prompt.
type CoverLetterParams struct {
	UserName         string
	UserEmail        string
	JobTitle         string
	Company          string
	Description      string
	Requirements     []string
	CurrentSkills    []string
	AdditionalSkills []string
	MissingSkills    []string
	Insights         UserInsights
	Today            time.Time
}

type achievementGroup struct {
	Label string
	Items []string
}

type coverLetterView struct {
	UserName         string
	UserEmail        string
	JobTitle         string
	Company          string
	Date             string
	Description      string
	Requirements     []string
	CurrentSkills    []string
	AdditionalSkills []string
	MissingSkills    []string
	Achievements     []achievementGroup
	Guidelines       []string
}

// ComposeCoverLetterPrompt builds the cover-letter instruction. Empty optional
// sections are left out entirely.
func ComposeCoverLetterPrompt(p CoverLetterParams) string {
	view := coverLetterView{
		UserName:         strings.TrimSpace(p.UserName),
		UserEmail:        strings.TrimSpace(p.UserEmail),
		JobTitle:         strings.TrimSpace(p.JobTitle),
		Company:          strings.TrimSpace(p.Company),
		Description:      strings.TrimSpace(p.Description),
		Requirements:     compact(p.Requirements),
		CurrentSkills:    compact(p.CurrentSkills),
		AdditionalSkills: compact(p.AdditionalSkills),
		MissingSkills:    compact(p.MissingSkills),
	}
	if !p.Today.IsZero() {
		view.Date = p.Today.Format("January 2, 2006")
	}

	for _, g := range []achievementGroup{
		{Label: "Recent Certifications", Items: compact(p.Insights.RecentCertifications)},
		{Label: "Recent Projects", Items: compact(p.Insights.RecentProjects)},
		{Label: "Relevant Experience", Items: compact(p.Insights.RelevantExperience)},
	} {
		if len(g.Items) > 0 {
			view.Achievements = append(view.Achievements, g)
		}
	}

	view.Guidelines = coverLetterGuidelines(view)
	return execute(coverLetterPrompt, view)
}

func coverLetterGuidelines(v coverLetterView) []string {
	g := []string{
		"Start with a strong opening that shows enthusiasm for the role and company",
		"Highlight relevant skills and experience, especially matching requirements",
	}
	if len(v.AdditionalSkills) > 0 {
		g = append(g, fmt.Sprintf("Mention the skills currently being learned (%s) as active growth areas", strings.Join(v.AdditionalSkills, ", ")))
	}
	if len(v.MissingSkills) > 0 {
		g = append(g, fmt.Sprintf("Address each missing skill (%s) positively, without omitting it or inventing experience, by:\n"+
			"   - Emphasizing quick learning ability and adaptability\n"+
			"   - Mentioning similar or transferable skills\n"+
			"   - Showing enthusiasm and concrete plans to acquire these skills", strings.Join(v.MissingSkills, ", ")))
	}
	g = append(g, "Demonstrate knowledge of the company and why you want to work there")
	if len(v.Achievements) > 0 {
		g = append(g, "Include specific examples from recent achievements")
	}
	g = append(g,
		"Keep the tone professional but engaging",
		"Include a strong closing paragraph",
		"Format as a proper business letter with a contact header, the date, an opening salutation and a closing",
	)
	return g
}

// compact trims entries and drops blanks, keeping order.
func compact(items []string) []string {
	var out []string
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
