package artifacts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"careercoach-backend/internal/extract"
	"careercoach-backend/internal/shared/apperr"
	"careercoach-backend/internal/shared/metrics"
	"careercoach-backend/internal/shared/storage/object"
	"careercoach-backend/internal/shared/telemetry"
	"careercoach-backend/internal/shared/util"
)

const (
	defaultFetchTimeout = 30 * time.Second
	maxDownloadSize     = 25 << 20
)

// Service contains business logic for artifacts.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
	HTTP  *http.Client

	now   func() time.Time
	newID func() string
}

// NewService wires a service. fetchTimeout bounds downloads of remote artifact URLs.
func NewService(repo Repo, store object.ObjectStore, fetchTimeout time.Duration) *Service {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &Service{
		Repo:  repo,
		Store: store,
		HTTP:  &http.Client{Timeout: fetchTimeout},
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// NewArtifact carries the caller-supplied fields of Add.
type NewArtifact struct {
	Name     string
	Type     Type
	URL      string
	Metadata Metadata
}

// Add persists a new artifact with a fresh id and timestamps. Any persistence
// failure is returned; no artifact exists unless Add returns nil.
func (s *Service) Add(ctx context.Context, ownerID string, in NewArtifact) (Artifact, error) {
	if strings.TrimSpace(ownerID) == "" || strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.URL) == "" {
		return Artifact{}, ErrInvalidInput
	}
	if in.Type != TypeResume && in.Type != TypeCoverLetter {
		return Artifact{}, ErrInvalidInput
	}

	// TIMESTAMPTZ keeps microseconds; truncate so Add returns what List reads back.
	now := s.clock().UTC().Truncate(time.Microsecond)
	artifact := Artifact{
		ID:        s.id(),
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(in.Name),
		Type:      in.Type,
		URL:       strings.TrimSpace(in.URL),
		Metadata:  in.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Metadata.ResumeSnapshot != nil {
		snapshot := in.Metadata.ResumeSnapshot.Clone()
		artifact.Metadata.ResumeSnapshot = &snapshot
	}

	if err := s.Repo.Create(ctx, artifact); err != nil {
		telemetry.Error("artifact.add_failed", map[string]any{
			"owner_id": ownerID,
			"type":     string(in.Type),
			"err":      err,
		})
		return Artifact{}, fmt.Errorf("persist artifact: %w", err)
	}
	metrics.IncArtifact(string(artifact.Type), "add")
	telemetry.Info("artifact.added", map[string]any{
		"artifact_id": artifact.ID,
		"owner_id":    ownerID,
		"type":        string(artifact.Type),
	})
	return artifact, nil
}

// AddStored writes body to the object store and adds an artifact pointing at
// it. The stored body is deleted again when the record cannot be persisted.
func (s *Service) AddStored(ctx context.Context, ownerID, fileName, contentType string, body io.Reader, in NewArtifact) (Artifact, error) {
	if s.Store == nil {
		return Artifact{}, apperr.Configuration("artifacts.add_stored", "object store is not configured")
	}
	stored, err := s.Store.Put(ctx, ownerID, fileName, contentType, body)
	if err != nil {
		return Artifact{}, fmt.Errorf("store artifact body: %w", err)
	}
	in.URL = object.URLFor(stored.Key)
	artifact, err := s.Add(ctx, ownerID, in)
	if err != nil {
		if delErr := s.Store.Delete(ctx, stored.Key); delErr != nil {
			telemetry.Warn("artifact.orphaned_body", map[string]any{"key": stored.Key, "err": delErr})
		}
		return Artifact{}, err
	}
	return artifact, nil
}

// Get returns an artifact by ID for an owner.
func (s *Service) Get(ctx context.Context, ownerID, artifactID string) (Artifact, error) {
	if ownerID == "" || artifactID == "" {
		return Artifact{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, ownerID, artifactID)
}

// List returns an owner's artifacts newest-first. An empty typ lists every type.
func (s *Service) List(ctx context.Context, ownerID string, typ Type, limit, offset int) ([]Artifact, error) {
	if ownerID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByOwner(ctx, ownerID, typ, limit, offset)
}

// Remove deletes an artifact and, for store-backed artifacts, its body.
func (s *Service) Remove(ctx context.Context, ownerID, artifactID string) error {
	artifact, err := s.Get(ctx, ownerID, artifactID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, ownerID, artifactID); err != nil {
		return err
	}
	metrics.IncArtifact(string(artifact.Type), "remove")
	if key, ok := object.KeyFromURL(artifact.URL); ok && s.Store != nil {
		if err := s.Store.Delete(ctx, key); err != nil {
			telemetry.Warn("artifact.body_delete_failed", map[string]any{
				"artifact_id": artifactID,
				"key":         key,
				"err":         err,
			})
		}
	}
	return nil
}

// Download is an artifact body ready to be streamed to the client.
type Download struct {
	FileName    string
	ContentType string
	Body        []byte
}

// Open fetches the artifact body and names it after its employer context.
// Resume bodies must be readable PDFs.
func (s *Service) Open(ctx context.Context, ownerID, artifactID string) (Download, error) {
	const op = "artifacts.open"
	artifact, err := s.Get(ctx, ownerID, artifactID)
	if err != nil {
		return Download{}, err
	}

	body, err := s.fetch(ctx, op, artifact.URL)
	if err != nil {
		return Download{}, err
	}

	dl := Download{Body: body}
	switch artifact.Type {
	case TypeResume:
		if _, err := extract.ValidatePDF(body); err != nil {
			return Download{}, apperr.Upstream(op, err, "downloaded resume is not a valid PDF")
		}
		dl.FileName = util.DownloadFileName("resume", artifact.Metadata.Company, "pdf")
		dl.ContentType = extract.MimePDF
	default:
		if len(body) == 0 {
			return Download{}, apperr.Upstream(op, extract.ErrEmptyDocument, "downloaded cover letter is empty")
		}
		dl.FileName = util.DownloadFileName("cover-letter", artifact.Metadata.Company, "txt")
		dl.ContentType = extract.MimeText + "; charset=utf-8"
	}
	metrics.IncArtifact(string(artifact.Type), "download")
	return dl, nil
}

func (s *Service) fetch(ctx context.Context, op, url string) ([]byte, error) {
	var rc io.ReadCloser
	if key, ok := object.KeyFromURL(url); ok {
		if s.Store == nil {
			return nil, apperr.Configuration(op, "object store is not configured")
		}
		r, err := s.Store.Open(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("open stored body: %w", err)
		}
		rc = r
	} else {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, apperr.Transport(op, err, "build request")
		}
		resp, err := s.httpClient().Do(req)
		if err != nil {
			return nil, apperr.Transport(op, err, "fetch document")
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			return nil, apperr.Transport(op, nil, "fetch document: http status %d", resp.StatusCode)
		}
		rc = resp.Body
	}
	defer rc.Close()

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(rc, maxDownloadSize+1))
	if err != nil {
		return nil, apperr.Transport(op, err, "read document")
	}
	if n > maxDownloadSize {
		return nil, apperr.Upstream(op, nil, "document exceeds %d bytes", maxDownloadSize)
	}
	return buf.Bytes(), nil
}

func (s *Service) httpClient() *http.Client {
	if s.HTTP != nil {
		return s.HTTP
	}
	return &http.Client{Timeout: defaultFetchTimeout}
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *Service) id() string {
	if s.newID != nil {
		return s.newID()
	}
	return uuid.NewString()
}

// IsMissing reports whether err means the artifact does not exist for the caller.
func IsMissing(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden)
}
