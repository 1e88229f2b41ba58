package artifacts

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores artifacts in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[string]Artifact
	byOwner map[string][]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:    make(map[string]Artifact),
		byOwner: make(map[string][]string),
	}
}

// Create stores the artifact.
func (r *MemoryRepo) Create(ctx context.Context, artifact Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[artifact.ID] = cloneArtifact(artifact)
	r.byOwner[artifact.OwnerID] = append(r.byOwner[artifact.OwnerID], artifact.ID)
	return nil
}

// GetByID returns an artifact by ID for an owner.
func (r *MemoryRepo) GetByID(ctx context.Context, ownerID, artifactID string) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	artifact, ok := r.byID[artifactID]
	if !ok {
		return Artifact{}, ErrNotFound
	}
	if artifact.OwnerID != ownerID {
		return Artifact{}, ErrForbidden
	}
	return cloneArtifact(artifact), nil
}

// ListByOwner returns artifacts for an owner, newest first, with limit/offset.
// An empty typ matches every type.
func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string, typ Type, limit, offset int) ([]Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	// byOwner is in insertion order; ties on CreatedAt fall back to it, newest first.
	type ranked struct {
		artifact Artifact
		seq      int
	}
	r.mu.RLock()
	matches := make([]ranked, 0, len(r.byOwner[ownerID]))
	for seq, id := range r.byOwner[ownerID] {
		artifact, ok := r.byID[id]
		if !ok || (typ != "" && artifact.Type != typ) {
			continue
		}
		matches = append(matches, ranked{artifact: cloneArtifact(artifact), seq: seq})
	}
	r.mu.RUnlock()

	if offset >= len(matches) {
		return []Artifact{}, nil
	}
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if !a.artifact.CreatedAt.Equal(b.artifact.CreatedAt) {
			return a.artifact.CreatedAt.After(b.artifact.CreatedAt)
		}
		return a.seq > b.seq
	})
	out := make([]Artifact, len(matches))
	for i, m := range matches {
		out[i] = m.artifact
	}

	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

// Delete removes an artifact owned by ownerID.
func (r *MemoryRepo) Delete(ctx context.Context, ownerID, artifactID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	artifact, ok := r.byID[artifactID]
	if !ok {
		return ErrNotFound
	}
	if artifact.OwnerID != ownerID {
		return ErrForbidden
	}
	delete(r.byID, artifactID)
	ids := r.byOwner[ownerID]
	for i, id := range ids {
		if id == artifactID {
			r.byOwner[ownerID] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func cloneArtifact(a Artifact) Artifact {
	if a.Metadata.ResumeSnapshot != nil {
		snapshot := a.Metadata.ResumeSnapshot.Clone()
		a.Metadata.ResumeSnapshot = &snapshot
	}
	return a
}

var _ Repo = (*MemoryRepo)(nil)
