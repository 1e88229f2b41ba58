package jobs

// JobPosting is the read-only job record supplied by the caller.
type JobPosting struct {
	ID           string   `json:"id"`
	Title        string   `json:"title" validate:"required"`
	Company      string   `json:"company" validate:"required"`
	Location     string   `json:"location,omitempty"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Benefits     []string `json:"benefits,omitempty"`
}

// AchievementKind groups achievements for prompt rendering.
type AchievementKind string

const (
	AchievementCertification AchievementKind = "certification"
	AchievementProject       AchievementKind = "project"
	AchievementExperience    AchievementKind = "experience"
)

type Achievement struct {
	Kind  AchievementKind `json:"kind" validate:"omitempty,oneof=certification project experience"`
	Title string          `json:"title" validate:"required"`
	Date  string          `json:"date,omitempty"`
}

// UserSkillProfile is the applicant's read-only profile snapshot.
type UserSkillProfile struct {
	Name               string        `json:"name" validate:"required"`
	Email              string        `json:"email" validate:"omitempty,email"`
	Skills             []string      `json:"skills"`
	RecentAchievements []Achievement `json:"recentAchievements" validate:"dive"`
}
