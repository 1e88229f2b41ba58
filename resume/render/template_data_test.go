package render

import (
	"encoding/json"
	"testing"

	"careercoach-backend/resume/model"
)

func strPtr(s string) *string { return &s }

func projectKeys(t *testing.T, resume model.ResumeData) map[string]any {
	t.Helper()
	raw, err := json.Marshal(Project(resume))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

func TestProjectOmitsWorkExperienceWhenNone(t *testing.T) {
	keys := projectKeys(t, model.ResumeData{
		FullName: "Ada Lovelace",
		Skills:   []string{"Go"},
	})
	if _, ok := keys["work_experience"]; ok {
		t.Fatalf("expected no work_experience key, got %v", keys)
	}
	if _, ok := keys["education"]; ok {
		t.Fatalf("expected no education key, got %v", keys)
	}
	if keys["full_name"] != "Ada Lovelace" {
		t.Fatalf("unexpected full_name %v", keys["full_name"])
	}
}

func TestProjectNeverEmitsEmptyValues(t *testing.T) {
	cases := []model.ResumeData{
		{},
		{FullName: "  ", Skills: []string{"", " "}},
		{
			FullName: "Grace Hopper",
			WorkExperience: []model.WorkExperience{
				{},
				{JobTitle: "Engineer", CompanyName: "Navy", EndDate: strPtr(""), Responsibilities: []string{""}},
			},
			Education: []model.Education{{}, {Degree: "PhD", Institution: "Yale"}},
		},
	}
	for i, resume := range cases {
		assertNoEmpty(t, i, "", projectKeys(t, resume))
	}
}

func assertNoEmpty(t *testing.T, caseIdx int, path string, v any) {
	t.Helper()
	switch val := v.(type) {
	case string:
		if val == "" {
			t.Fatalf("case %d: empty string at %s", caseIdx, path)
		}
	case []any:
		if len(val) == 0 {
			t.Fatalf("case %d: empty array at %s", caseIdx, path)
		}
		for _, item := range val {
			assertNoEmpty(t, caseIdx, path+"[]", item)
		}
	case map[string]any:
		if len(val) == 0 && path != "" {
			t.Fatalf("case %d: empty object at %s", caseIdx, path)
		}
		for k, item := range val {
			assertNoEmpty(t, caseIdx, path+"."+k, item)
		}
	case nil:
		t.Fatalf("case %d: null at %s", caseIdx, path)
	}
}

func TestProjectOngoingPositionHasNoEndDate(t *testing.T) {
	data := Project(model.ResumeData{
		WorkExperience: []model.WorkExperience{
			{JobTitle: "Engineer", CompanyName: "Acme", StartDate: "2020-01"},
			{JobTitle: "Intern", CompanyName: "Acme", StartDate: "2019-01", EndDate: strPtr("2019-06")},
		},
	})
	if len(data.WorkExperience) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(data.WorkExperience))
	}
	if data.WorkExperience[0].EndDate != "" {
		t.Fatalf("ongoing position should have no end date")
	}
	if data.WorkExperience[1].EndDate != "2019-06" {
		t.Fatalf("unexpected end date %q", data.WorkExperience[1].EndDate)
	}
}

func TestProjectDoesNotMutateInput(t *testing.T) {
	resume := model.ResumeData{FullName: " Ada ", Skills: []string{" Go ", ""}}
	_ = Project(resume)
	if resume.FullName != " Ada " || len(resume.Skills) != 2 {
		t.Fatalf("input mutated: %+v", resume)
	}
}
