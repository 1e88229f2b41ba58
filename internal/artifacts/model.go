package artifacts

import (
	"strings"
	"time"

	"careercoach-backend/resume/model"
)

// Type distinguishes generated documents.
type Type string

const (
	TypeResume      Type = "resume"
	TypeCoverLetter Type = "cover-letter"
)

// ParseType accepts "resume", "cover-letter" and "coverLetter". The empty
// string parses to "" meaning any type.
func ParseType(raw string) (Type, bool) {
	switch strings.TrimSpace(raw) {
	case "":
		return "", true
	case string(TypeResume):
		return TypeResume, true
	case string(TypeCoverLetter), "coverLetter":
		return TypeCoverLetter, true
	default:
		return "", false
	}
}

// Metadata is the employer context and optional resume snapshot of an artifact.
type Metadata struct {
	Company        string            `json:"company,omitempty"`
	Position       string            `json:"position,omitempty"`
	JobID          string            `json:"jobId,omitempty"`
	ResumeSnapshot *model.ResumeData `json:"resumeSnapshot,omitempty"`
}

// Artifact is a persisted generated document. It is never modified after Add.
type Artifact struct {
	ID        string
	OwnerID   string
	Name      string
	Type      Type
	URL       string
	Metadata  Metadata
	CreatedAt time.Time
	UpdatedAt time.Time
}
