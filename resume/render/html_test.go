package render

import (
	"strings"
	"testing"

	"careercoach-backend/resume/model"
)

func TestHTMLRendersSectionsAndEscapes(t *testing.T) {
	out, err := HTML(model.ResumeData{
		FullName:     "Ada <Lovelace>",
		ContactEmail: "ada@example.com",
		WorkExperience: []model.WorkExperience{
			{JobTitle: "Engineer", CompanyName: "Acme", StartDate: "2020", Responsibilities: []string{"Built engines"}},
		},
		Skills: []string{"Go", "SQL"},
	})
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	for _, want := range []string{"Ada &lt;Lovelace&gt;", "ada@example.com", "2020 - Present", "Built engines", "Go, SQL"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Education") {
		t.Fatalf("empty education section rendered")
	}
}
