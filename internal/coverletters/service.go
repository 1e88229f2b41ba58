package coverletters

import (
	"context"
	"errors"
	"strings"
	"time"

	"careercoach-backend/internal/artifacts"
	"careercoach-backend/internal/assistant"
	"careercoach-backend/internal/conversation"
	"careercoach-backend/internal/jobs"
	"careercoach-backend/internal/llm"
	"careercoach-backend/internal/shared/util"
)

const textContentType = "text/plain; charset=utf-8"

// Request asks for a cover letter for one job. LearningSkills are requirements
// the applicant is actively learning and wants mentioned as such.
type Request struct {
	Job            jobs.JobPosting       `json:"job"`
	Profile        jobs.UserSkillProfile `json:"profile"`
	LearningSkills []string              `json:"learningSkills"`
}

// Result is a generated letter and the artifact it was saved as.
type Result struct {
	Letter   string
	Skills   jobs.SkillPartition
	Artifact artifacts.Artifact
}

// Service generates cover letters through the owner's assistant session.
type Service struct {
	Sessions  *assistant.Manager
	Artifacts *artifacts.Service

	now func() time.Time
}

func NewService(sessions *assistant.Manager, store *artifacts.Service) *Service {
	return &Service{Sessions: sessions, Artifacts: store, now: time.Now}
}

// Generate partitions the job's requirements, sends the composed prompt on the
// owner's cover-letter conversation, and persists the reply as a new artifact.
func (s *Service) Generate(ctx context.Context, ownerID string, req Request) (Result, error) {
	if s.Sessions == nil || s.Artifacts == nil {
		return Result{}, errors.New("missing dependencies")
	}
	if err := req.Job.Validate(); err != nil {
		return Result{}, err
	}
	if err := req.Profile.Validate(); err != nil {
		return Result{}, err
	}

	partition := jobs.PartitionSkills(req.Job.Requirements, req.Profile.Skills, req.LearningSkills)
	prompt := llm.ComposeCoverLetterPrompt(BuildParams(req, partition, s.clock()))

	reply, err := s.Sessions.For(ownerID).Send(ctx, conversation.TopicCoverLetter, prompt)
	if err != nil {
		return Result{}, err
	}

	company := strings.TrimSpace(req.Job.Company)
	artifact, err := s.Artifacts.AddStored(ctx, ownerID,
		util.DownloadFileName("cover-letter", company, "txt"),
		textContentType,
		strings.NewReader(reply.Content),
		artifacts.NewArtifact{
			Name: "Cover Letter - " + company,
			Type: artifacts.TypeCoverLetter,
			Metadata: artifacts.Metadata{
				Company:  company,
				Position: strings.TrimSpace(req.Job.Title),
				JobID:    strings.TrimSpace(req.Job.ID),
			},
		})
	if err != nil {
		return Result{}, err
	}

	return Result{Letter: reply.Content, Skills: partition, Artifact: artifact}, nil
}

// BuildParams maps a request and its skill partition onto prompt inputs.
func BuildParams(req Request, partition jobs.SkillPartition, today time.Time) llm.CoverLetterParams {
	certs, projects, experience := jobs.Insights(req.Profile.RecentAchievements)
	return llm.CoverLetterParams{
		UserName:         req.Profile.Name,
		UserEmail:        req.Profile.Email,
		JobTitle:         req.Job.Title,
		Company:          req.Job.Company,
		Description:      req.Job.Description,
		Requirements:     partition.All(),
		CurrentSkills:    req.Profile.Skills,
		AdditionalSkills: partition.Learning,
		MissingSkills:    partition.Missing,
		Insights: llm.UserInsights{
			RecentCertifications: certs,
			RecentProjects:       projects,
			RelevantExperience:   experience,
		},
		Today: today,
	}
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
