package jobs

import "strings"

// SkillPartition splits a job's requirements by the applicant's standing on each.
// Every requirement lands in exactly one group.
type SkillPartition struct {
	UserHas  []string `json:"userHas"`
	Learning []string `json:"learning"`
	Missing  []string `json:"missing"`
}

// PartitionSkills assigns each requirement to UserHas when it appears in userSkills,
// otherwise to Learning when it appears in learning, otherwise to Missing. Matching
// is case-insensitive and trims whitespace. Duplicate requirements collapse onto
// their first spelling; blank requirements are dropped.
func PartitionSkills(requirements, userSkills, learning []string) SkillPartition {
	has := skillSet(userSkills)
	learn := skillSet(learning)
	seen := make(map[string]struct{}, len(requirements))

	var p SkillPartition
	for _, req := range requirements {
		req = strings.TrimSpace(req)
		key := strings.ToLower(req)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		switch {
		case contains(has, key):
			p.UserHas = append(p.UserHas, req)
		case contains(learn, key):
			p.Learning = append(p.Learning, req)
		default:
			p.Missing = append(p.Missing, req)
		}
	}
	return p
}

// All returns every partitioned requirement in group order.
func (p SkillPartition) All() []string {
	out := make([]string, 0, len(p.UserHas)+len(p.Learning)+len(p.Missing))
	out = append(out, p.UserHas...)
	out = append(out, p.Learning...)
	return append(out, p.Missing...)
}

// Insights buckets achievements by kind, keeping input order within each bucket.
// Achievements without a kind count as relevant experience.
func Insights(achievements []Achievement) (certifications, projects, experience []string) {
	for _, a := range achievements {
		title := strings.TrimSpace(a.Title)
		if title == "" {
			continue
		}
		switch a.Kind {
		case AchievementCertification:
			certifications = append(certifications, title)
		case AchievementProject:
			projects = append(projects, title)
		default:
			experience = append(experience, title)
		}
	}
	return certifications, projects, experience
}

func skillSet(skills []string) map[string]struct{} {
	out := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		if key := strings.ToLower(strings.TrimSpace(s)); key != "" {
			out[key] = struct{}{}
		}
	}
	return out
}

func contains(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
