package jobs

import (
	"reflect"
	"strings"
	"testing"
)

func TestPartitionSkillsIsExactCover(t *testing.T) {
	tests := []struct {
		name         string
		requirements []string
		userSkills   []string
		learning     []string
	}{
		{name: "mixed", requirements: []string{"Go", "Kubernetes", "PostgreSQL", "Terraform"}, userSkills: []string{"go", "PostgreSQL"}, learning: []string{"terraform"}},
		{name: "all missing", requirements: []string{"Rust", "Zig"}},
		{name: "all held", requirements: []string{"Go"}, userSkills: []string{"Go", "Python"}},
		{name: "learning overlaps held", requirements: []string{"Go", "Docker"}, userSkills: []string{"Go"}, learning: []string{"Go", "docker"}},
		{name: "empty", requirements: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			p := PartitionSkills(tt.requirements, tt.userSkills, tt.learning)

			seen := map[string]int{}
			for _, s := range p.All() {
				seen[strings.ToLower(s)]++
			}
			for k, n := range seen {
				if n != 1 {
					t.Fatalf("%q appears in %d groups", k, n)
				}
			}
			if len(seen) != len(tt.requirements) {
				t.Fatalf("union has %d skills, requirements have %d", len(seen), len(tt.requirements))
			}
			for _, req := range tt.requirements {
				if seen[strings.ToLower(req)] != 1 {
					t.Fatalf("requirement %q not covered", req)
				}
			}
		})
	}
}

func TestPartitionSkillsGroups(t *testing.T) {
	p := PartitionSkills([]string{"Go", "Kubernetes", " go ", "Terraform", ""}, []string{"GO"}, []string{"terraform"})
	want := SkillPartition{UserHas: []string{"Go"}, Learning: []string{"Terraform"}, Missing: []string{"Kubernetes"}}
	if !reflect.DeepEqual(p, want) {
		t.Fatalf("PartitionSkills = %+v, want %+v", p, want)
	}
}

func TestInsights(t *testing.T) {
	certs, projects, exp := Insights([]Achievement{
		{Kind: AchievementCertification, Title: "CKA", Date: "2026-01"},
		{Kind: AchievementProject, Title: "Billing rewrite"},
		{Title: "Mentored interns"},
		{Kind: AchievementProject, Title: "  "},
	})
	if !reflect.DeepEqual(certs, []string{"CKA"}) || !reflect.DeepEqual(projects, []string{"Billing rewrite"}) || !reflect.DeepEqual(exp, []string{"Mentored interns"}) {
		t.Fatalf("Insights = %v %v %v", certs, projects, exp)
	}
}
