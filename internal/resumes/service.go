package resumes

import (
	"context"
	"errors"
	"strings"

	"careercoach-backend/internal/artifacts"
	"careercoach-backend/internal/assistant"
	"careercoach-backend/internal/conversation"
	"careercoach-backend/internal/jobs"
	"careercoach-backend/internal/llm"
	"careercoach-backend/internal/shared/apperr"
	"careercoach-backend/resume/model"
	"careercoach-backend/resume/render"
)

// Renderer produces a hosted PDF for a resume.
type Renderer interface {
	Render(ctx context.Context, resume model.ResumeData) (string, error)
}

// Service renders and optimizes resumes and records the results as artifacts.
type Service struct {
	Renderer  Renderer
	Sessions  *assistant.Manager
	Artifacts *artifacts.Service
}

func NewService(renderer Renderer, sessions *assistant.Manager, store *artifacts.Service) *Service {
	return &Service{Renderer: renderer, Sessions: sessions, Artifacts: store}
}

// RenderRequest renders a builder resume, optionally tagged with a target job.
type RenderRequest struct {
	Resume   model.ResumeData `json:"resume"`
	Company  string           `json:"company"`
	Position string           `json:"position"`
	JobID    string           `json:"jobId"`
}

// Render validates and renders the resume, then records it. A persistence
// failure is returned as an error; the caller never gets a URL that was not saved.
func (s *Service) Render(ctx context.Context, ownerID string, req RenderRequest) (artifacts.Artifact, error) {
	if s.Renderer == nil || s.Artifacts == nil {
		return artifacts.Artifact{}, errors.New("missing dependencies")
	}
	if err := req.Resume.Validate(); err != nil {
		return artifacts.Artifact{}, err
	}
	snapshot := req.Resume.Clone()
	url, err := s.Renderer.Render(ctx, snapshot)
	if err != nil {
		return artifacts.Artifact{}, err
	}
	return s.Artifacts.Add(ctx, ownerID, artifacts.NewArtifact{
		Name: strings.TrimSpace(snapshot.FullName) + "'s Resume",
		Type: artifacts.TypeResume,
		URL:  url,
		Metadata: artifacts.Metadata{
			Company:        strings.TrimSpace(req.Company),
			Position:       strings.TrimSpace(req.Position),
			JobID:          strings.TrimSpace(req.JobID),
			ResumeSnapshot: &snapshot,
		},
	})
}

// OptimizeRequest rewrites a resume toward a job. The source is Resume when
// set, otherwise the snapshot stored on SourceArtifactID.
type OptimizeRequest struct {
	Resume           *model.ResumeData `json:"resume"`
	SourceArtifactID string            `json:"sourceArtifactId"`
	Job              jobs.JobPosting   `json:"job"`
	EmphasizeSkills  []string          `json:"emphasizeSkills"`
	Render           bool              `json:"render"`
}

// OptimizeResult is the rewritten resume and, when rendered, its new artifact.
type OptimizeResult struct {
	Resume   model.ResumeData
	Artifact *artifacts.Artifact
}

// Optimize sends the optimization prompt on the owner's resume-optimize
// conversation and strictly parses the reply. Rendering creates a new
// artifact; the source artifact is never modified.
func (s *Service) Optimize(ctx context.Context, ownerID string, req OptimizeRequest) (OptimizeResult, error) {
	const op = "resumes.optimize"
	if s.Sessions == nil || s.Artifacts == nil {
		return OptimizeResult{}, errors.New("missing dependencies")
	}

	source, err := s.resolveSource(ctx, ownerID, req)
	if err != nil {
		return OptimizeResult{}, err
	}
	if err := source.Validate(); err != nil {
		return OptimizeResult{}, err
	}
	if err := req.Job.Validate(); err != nil {
		return OptimizeResult{}, err
	}

	emphasize := req.EmphasizeSkills
	if len(emphasize) == 0 {
		emphasize = jobs.PartitionSkills(req.Job.Requirements, source.Skills, nil).UserHas
	}
	prompt := llm.ComposeResumeOptimizationPrompt(llm.ResumeOptimizationParams{
		Resume:          source,
		JobTitle:        req.Job.Title,
		Company:         req.Job.Company,
		Requirements:    req.Job.Requirements,
		EmphasizeSkills: emphasize,
	})

	reply, err := s.Sessions.For(ownerID).Send(ctx, conversation.TopicResumeOptimize, prompt)
	if err != nil {
		return OptimizeResult{}, err
	}
	optimized, err := model.ParseGenerated(reply.Content)
	if err != nil {
		return OptimizeResult{}, err
	}

	out := OptimizeResult{Resume: optimized}
	if !req.Render {
		return out, nil
	}
	if s.Renderer == nil {
		return OptimizeResult{}, apperr.Configuration(op, "PDF rendering is not configured")
	}
	url, err := s.Renderer.Render(ctx, optimized)
	if err != nil {
		return OptimizeResult{}, err
	}
	company := strings.TrimSpace(req.Job.Company)
	snapshot := optimized.Clone()
	artifact, err := s.Artifacts.Add(ctx, ownerID, artifacts.NewArtifact{
		Name: strings.TrimSpace(optimized.FullName) + "'s Optimized Resume - " + company,
		Type: artifacts.TypeResume,
		URL:  url,
		Metadata: artifacts.Metadata{
			Company:        company,
			Position:       strings.TrimSpace(req.Job.Title),
			JobID:          strings.TrimSpace(req.Job.ID),
			ResumeSnapshot: &snapshot,
		},
	})
	if err != nil {
		return OptimizeResult{}, err
	}
	out.Artifact = &artifact
	return out, nil
}

func (s *Service) resolveSource(ctx context.Context, ownerID string, req OptimizeRequest) (model.ResumeData, error) {
	const op = "resumes.optimize"
	if req.Resume != nil {
		return req.Resume.Clone(), nil
	}
	id := strings.TrimSpace(req.SourceArtifactID)
	if id == "" {
		return model.ResumeData{}, apperr.Validation(op, "no resume selected")
	}
	artifact, err := s.Artifacts.Get(ctx, ownerID, id)
	if err != nil {
		if artifacts.IsMissing(err) {
			return model.ResumeData{}, apperr.Validation(op, "selected resume was not found")
		}
		return model.ResumeData{}, err
	}
	if artifact.Type != artifacts.TypeResume || artifact.Metadata.ResumeSnapshot == nil {
		return model.ResumeData{}, apperr.Validation(op, "selected artifact has no resume data")
	}
	return artifact.Metadata.ResumeSnapshot.Clone(), nil
}

// TemplateData previews the payload the PDF template would receive.
func (s *Service) TemplateData(resume model.ResumeData) render.TemplateData {
	return render.Project(resume)
}
