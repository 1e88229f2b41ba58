package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"careercoach-backend/internal/shared/apperr"
)

// ResumeData is the user-edited resume record that feeds rendering and optimization.
type ResumeData struct {
	FullName       string           `json:"full_name" validate:"required"`
	ContactEmail   string           `json:"contact_email" validate:"omitempty,email"`
	PhoneNumber    string           `json:"phone_number"`
	Location       string           `json:"location"`
	Summary        string           `json:"summary"`
	WorkExperience []WorkExperience `json:"work_experience" validate:"dive"`
	Education      []Education      `json:"education" validate:"dive"`
	Skills         []string         `json:"skills"`
}

// WorkExperience is one position. A nil EndDate means the position is ongoing.
type WorkExperience struct {
	JobTitle         string   `json:"job_title" validate:"required"`
	CompanyName      string   `json:"company_name" validate:"required"`
	Location         string   `json:"location"`
	StartDate        string   `json:"start_date"`
	EndDate          *string  `json:"end_date"`
	Responsibilities []string `json:"responsibilities"`
}

// Ongoing reports whether the position has no end date.
func (w WorkExperience) Ongoing() bool {
	return w.EndDate == nil || strings.TrimSpace(*w.EndDate) == ""
}

type Education struct {
	Degree         string `json:"degree" validate:"required"`
	FieldOfStudy   string `json:"field_of_study"`
	Institution    string `json:"institution" validate:"required"`
	GraduationDate string `json:"graduation_date"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the identity fields required before a resume may be rendered or optimized.
func (r ResumeData) Validate() error {
	if err := validate.Struct(r); err != nil {
		return apperr.Validation("resume.validate", "%s", describeValidation(err))
	}
	return nil
}

// Clone returns a deep copy so callers can hand the record to renderers without sharing slices.
func (r ResumeData) Clone() ResumeData {
	out := r
	out.Skills = append([]string(nil), r.Skills...)
	out.Education = append([]Education(nil), r.Education...)
	if r.WorkExperience != nil {
		out.WorkExperience = make([]WorkExperience, len(r.WorkExperience))
		for i, w := range r.WorkExperience {
			w.Responsibilities = append([]string(nil), w.Responsibilities...)
			if w.EndDate != nil {
				end := *w.EndDate
				w.EndDate = &end
			}
			out.WorkExperience[i] = w
		}
	}
	return out
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "ResumeData.")
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", field))
		case "email":
			parts = append(parts, fmt.Sprintf("%s must be a valid email", field))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
