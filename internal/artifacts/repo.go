package artifacts

import "context"

// Repo defines persistence operations for artifacts.
type Repo interface {
	Create(ctx context.Context, artifact Artifact) error
	GetByID(ctx context.Context, ownerID, artifactID string) (Artifact, error)
	ListByOwner(ctx context.Context, ownerID string, typ Type, limit, offset int) ([]Artifact, error)
	Delete(ctx context.Context, ownerID, artifactID string) error
}
