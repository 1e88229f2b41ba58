package artifacts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, user_id, name, type, url, metadata, created_at, updated_at`

// Create inserts an artifact.
func (r *PGRepo) Create(ctx context.Context, artifact Artifact) error {
	metadata, err := json.Marshal(artifact.Metadata)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	const query = `
INSERT INTO artifacts (
    id, user_id, name, type, url, metadata, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.DB.ExecContext(ctx, query,
		artifact.ID,
		artifact.OwnerID,
		artifact.Name,
		string(artifact.Type),
		artifact.URL,
		metadata,
		artifact.CreatedAt,
		artifact.UpdatedAt,
	)
	return err
}

// GetByID returns an artifact by ID for an owner.
func (r *PGRepo) GetByID(ctx context.Context, ownerID, artifactID string) (Artifact, error) {
	const query = `
SELECT ` + selectColumns + `
FROM artifacts
WHERE id = $1
LIMIT 1`
	artifact, err := scanArtifact(r.DB.QueryRowContext(ctx, query, artifactID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Artifact{}, ErrNotFound
		}
		return Artifact{}, err
	}
	if artifact.OwnerID != ownerID {
		return Artifact{}, ErrForbidden
	}
	return artifact, nil
}

// ListByOwner lists artifacts ordered newest-first. An empty typ matches every type.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string, typ Type, limit, offset int) ([]Artifact, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT ` + selectColumns + `
FROM artifacts
WHERE user_id = $1 AND ($2 = '' OR type = $2)
ORDER BY created_at DESC
LIMIT $3 OFFSET $4`

	rows, err := r.DB.QueryContext(ctx, query, ownerID, string(typ), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Artifact{}
	for rows.Next() {
		artifact, err := scanArtifact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, artifact)
	}
	return out, rows.Err()
}

// Delete removes an artifact owned by ownerID.
func (r *PGRepo) Delete(ctx context.Context, ownerID, artifactID string) error {
	if _, err := r.GetByID(ctx, ownerID, artifactID); err != nil {
		return err
	}
	const query = `DELETE FROM artifacts WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, artifactID, ownerID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtifact(row rowScanner) (Artifact, error) {
	var (
		artifact Artifact
		typ      string
		metadata []byte
	)
	if err := row.Scan(
		&artifact.ID,
		&artifact.OwnerID,
		&artifact.Name,
		&typ,
		&artifact.URL,
		&metadata,
		&artifact.CreatedAt,
		&artifact.UpdatedAt,
	); err != nil {
		return Artifact{}, err
	}
	artifact.Type = Type(typ)
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &artifact.Metadata); err != nil {
			return Artifact{}, fmt.Errorf("decode metadata for artifact %s: %w", artifact.ID, err)
		}
	}
	return artifact, nil
}

var _ Repo = (*PGRepo)(nil)
