package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"careercoach-backend/internal/shared/apperr"
)

const (
	DefaultBaseURL = "https://api.pdf.co/v1"

	convertPath    = "/pdf/convert/from/html"
	jobCheckPath   = "/job/check"
	defaultTimeout = 60 * time.Second
	maxErrorBody   = 2048
)

// PDFConfig configures the pdf.co client.
type PDFConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// PDFClient talks to the pdf.co HTML conversion and job status endpoints.
type PDFClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewPDFClient(cfg PDFConfig) *PDFClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &PDFClient{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ConvertRequest is either a template conversion (TemplateID + TemplateData)
// or a raw-HTML conversion.
type ConvertRequest struct {
	TemplateID   string `json:"templateId,omitempty"`
	TemplateData string `json:"templateData,omitempty"`
	HTML         string `json:"html,omitempty"`
	Name         string `json:"name"`
	Async        bool   `json:"async"`
}

// ConvertResult carries a finished document URL or a job id to poll.
type ConvertResult struct {
	URL   string
	JobID string
}

type convertResponse struct {
	URL     string `json:"url"`
	JobID   string `json:"jobId"`
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type jobCheckRequest struct {
	JobID string `json:"jobid"`
}

type jobCheckResponse struct {
	Status  string `json:"status"`
	URL     string `json:"url"`
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// Convert submits a conversion request.
func (c *PDFClient) Convert(ctx context.Context, req ConvertRequest) (ConvertResult, error) {
	const op = "pdfco.convert"
	var resp convertResponse
	if err := c.post(ctx, op, convertPath, req, &resp); err != nil {
		return ConvertResult{}, err
	}
	if resp.Error {
		return ConvertResult{}, apperr.Upstream(op, nil, "%s", messageOr(resp.Message, "PDF generation failed"))
	}
	if resp.URL == "" && resp.JobID == "" {
		return ConvertResult{}, apperr.Upstream(op, nil, "response has neither url nor jobId")
	}
	return ConvertResult{URL: resp.URL, JobID: resp.JobID}, nil
}

// CheckJob reports the status of an asynchronous conversion.
func (c *PDFClient) CheckJob(ctx context.Context, jobID string) (JobStatus, error) {
	const op = "pdfco.job_check"
	var resp jobCheckResponse
	if err := c.post(ctx, op, jobCheckPath, jobCheckRequest{JobID: jobID}, &resp); err != nil {
		return JobStatus{}, err
	}
	if resp.Error {
		return JobStatus{}, apperr.Upstream(op, nil, "%s", messageOr(resp.Message, "failed to check job status"))
	}
	return JobStatus{Status: resp.Status, URL: resp.URL}, nil
}

func (c *PDFClient) post(ctx context.Context, op, path string, body, out any) error {
	if c.apiKey == "" {
		return apperr.Configuration(op, "PDF service API key is not configured")
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return apperr.Transport(op, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("pdfco request failed op=%s err=%v", op, err)
		return apperr.Transport(op, err, "request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.Transport(op, err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var parsed convertResponse
		if json.Unmarshal(respBody, &parsed) == nil && parsed.Message != "" {
			return apperr.Upstream(op, nil, "%s", parsed.Message)
		}
		return apperr.Transport(op, nil, "http status %d: %s", resp.StatusCode, truncate(strings.TrimSpace(string(respBody))))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return apperr.Upstream(op, err, "malformed response body")
	}
	return nil
}

func messageOr(msg, fallback string) string {
	if strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}

func truncate(s string) string {
	if len(s) <= maxErrorBody {
		return s
	}
	return s[:maxErrorBody] + "..."
}
