package render

import (
	"strings"

	"careercoach-backend/resume/model"
)

// TemplateData is the payload handed to the PDF template. Every field is
// omitted when its source is empty, since the template treats presence as
// "show this section".
type TemplateData struct {
	FullName       string           `json:"full_name,omitempty"`
	ContactEmail   string           `json:"contact_email,omitempty"`
	PhoneNumber    string           `json:"phone_number,omitempty"`
	Location       string           `json:"location,omitempty"`
	Summary        string           `json:"summary,omitempty"`
	WorkExperience []ExperienceData `json:"work_experience,omitempty"`
	Education      []EducationData  `json:"education,omitempty"`
	Skills         []string         `json:"skills,omitempty"`
}

type ExperienceData struct {
	JobTitle         string   `json:"job_title,omitempty"`
	CompanyName      string   `json:"company_name,omitempty"`
	Location         string   `json:"location,omitempty"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
}

type EducationData struct {
	Degree         string `json:"degree,omitempty"`
	FieldOfStudy   string `json:"field_of_study,omitempty"`
	Institution    string `json:"institution,omitempty"`
	GraduationDate string `json:"graduation_date,omitempty"`
}

// Project flattens a resume into template data. Blank strings, blank list
// items and entries with nothing left after trimming are dropped. An ongoing
// position carries no end_date key.
func Project(resume model.ResumeData) TemplateData {
	out := TemplateData{
		FullName:     clean(resume.FullName),
		ContactEmail: clean(resume.ContactEmail),
		PhoneNumber:  clean(resume.PhoneNumber),
		Location:     clean(resume.Location),
		Summary:      clean(resume.Summary),
		Skills:       cleanList(resume.Skills),
	}

	for _, exp := range resume.WorkExperience {
		entry := ExperienceData{
			JobTitle:         clean(exp.JobTitle),
			CompanyName:      clean(exp.CompanyName),
			Location:         clean(exp.Location),
			StartDate:        clean(exp.StartDate),
			Responsibilities: cleanList(exp.Responsibilities),
		}
		if !exp.Ongoing() {
			entry.EndDate = clean(*exp.EndDate)
		}
		if !entry.empty() {
			out.WorkExperience = append(out.WorkExperience, entry)
		}
	}

	for _, edu := range resume.Education {
		entry := EducationData{
			Degree:         clean(edu.Degree),
			FieldOfStudy:   clean(edu.FieldOfStudy),
			Institution:    clean(edu.Institution),
			GraduationDate: clean(edu.GraduationDate),
		}
		if entry != (EducationData{}) {
			out.Education = append(out.Education, entry)
		}
	}

	return out
}

func (e ExperienceData) empty() bool {
	return e.JobTitle == "" && e.CompanyName == "" && e.Location == "" &&
		e.StartDate == "" && e.EndDate == "" && len(e.Responsibilities) == 0
}

func clean(s string) string {
	return strings.TrimSpace(s)
}

func cleanList(items []string) []string {
	var out []string
	for _, item := range items {
		if v := clean(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}
