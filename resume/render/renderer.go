package render

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"careercoach-backend/internal/shared/apperr"
	"careercoach-backend/internal/shared/metrics"
	"careercoach-backend/internal/shared/telemetry"
	"careercoach-backend/resume/model"
)

// Mode selects how the resume is submitted to the PDF service.
type Mode string

const (
	ModeTemplate Mode = "template"
	ModeHTML     Mode = "html"
)

// ParseMode accepts "template" or "html"; anything else falls back to template.
func ParseMode(raw string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(raw))) == ModeHTML {
		return ModeHTML
	}
	return ModeTemplate
}

type converter interface {
	Convert(ctx context.Context, req ConvertRequest) (ConvertResult, error)
	CheckJob(ctx context.Context, jobID string) (JobStatus, error)
}

// Options configures a Renderer.
type Options struct {
	TemplateID string
	Mode       Mode
	Async      bool
	Poller     Poller
}

// Renderer turns ResumeData into a hosted PDF URL.
type Renderer struct {
	pdf  converter
	opts Options
	now  func() time.Time
}

func NewRenderer(client *PDFClient, opts Options) *Renderer {
	return newRenderer(client, opts)
}

func newRenderer(pdf converter, opts Options) *Renderer {
	if opts.Mode == "" {
		opts.Mode = ModeTemplate
	}
	if opts.Poller.MaxAttempts <= 0 || opts.Poller.Interval <= 0 {
		wait := opts.Poller.Wait
		opts.Poller = NewPoller(opts.Poller.Interval, opts.Poller.MaxAttempts)
		if wait != nil {
			opts.Poller.Wait = wait
		}
	}
	return &Renderer{pdf: pdf, opts: opts, now: time.Now}
}

// Render submits the resume and returns the document URL, polling when the
// service accepts the request asynchronously. The resume is not modified.
func (r *Renderer) Render(ctx context.Context, resume model.ResumeData) (string, error) {
	const op = "render.render"
	job := newJob()

	req, err := r.buildRequest(resume)
	if err != nil {
		return "", err
	}

	url, err := r.run(ctx, job, req)
	outcome := "ok"
	if err != nil {
		outcome = string(apperr.KindOf(err))
		if outcome == "" {
			outcome = "error"
		}
	}
	metrics.ObserveRender(string(r.opts.Mode), outcome, job.Attempts)

	fields := map[string]any{
		"mode":          r.opts.Mode,
		"state":         job.State,
		"poll_attempts": job.Attempts,
	}
	if job.ID != "" {
		fields["render_job_id"] = job.ID
	}
	if err != nil {
		fields["err"] = err
		telemetry.Error(op, fields)
		return "", err
	}
	telemetry.Info(op, fields)
	return url, nil
}

func (r *Renderer) run(ctx context.Context, job *Job, req ConvertRequest) (string, error) {
	const op = "render.render"
	res, err := r.pdf.Convert(ctx, req)
	if err != nil {
		_ = job.fail(apperr.MessageOf(err))
		return "", err
	}
	if res.URL != "" {
		_ = job.succeed(res.URL)
		return res.URL, nil
	}
	if res.JobID == "" {
		_ = job.fail("empty document url")
		return "", apperr.Upstream(op, nil, "conversion returned no document url")
	}
	if err := job.accept(res.JobID); err != nil {
		return "", err
	}
	return r.opts.Poller.Poll(ctx, job, r.pdf.CheckJob)
}

func (r *Renderer) buildRequest(resume model.ResumeData) (ConvertRequest, error) {
	req := ConvertRequest{
		Name:  fmt.Sprintf("resume_%d.pdf", r.now().UnixMilli()),
		Async: r.opts.Async,
	}
	switch r.opts.Mode {
	case ModeHTML:
		html, err := HTML(resume)
		if err != nil {
			return ConvertRequest{}, err
		}
		req.HTML = html
	default:
		if strings.TrimSpace(r.opts.TemplateID) == "" {
			return ConvertRequest{}, apperr.Configuration("render.render", "PDF template id is not configured")
		}
		data, err := json.Marshal(Project(resume))
		if err != nil {
			return ConvertRequest{}, fmt.Errorf("render: encode template data: %w", err)
		}
		req.TemplateID = r.opts.TemplateID
		req.TemplateData = string(data)
	}
	return req, nil
}
