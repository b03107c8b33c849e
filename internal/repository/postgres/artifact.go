package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/neoarcana-server/internal/model"
)

var _ model.ArtifactStore = (*ArtifactRepository)(nil)

const artifactColumns = `id, user_id, reading_type, period_bucket, language, payload, generated_at`

type ArtifactRepository struct {
	db *Connection
}

func NewArtifactRepository(db *Connection) *ArtifactRepository {
	return &ArtifactRepository{
		db: db,
	}
}

func (r *ArtifactRepository) Get(ctx context.Context, key model.PeriodKey) (model.Artifact, error) {
	query := `SELECT ` + artifactColumns + ` FROM reading_artifacts
			  WHERE user_id = $1 AND reading_type = $2 AND period_bucket = $3 AND language = $4`

	artifact, err := scanArtifact(r.db.QueryRow(ctx, query, key.UserID, key.ReadingType, key.Bucket, key.Language))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Artifact{}, model.ErrNotFound
		}
		return model.Artifact{}, fmt.Errorf("failed to get artifact: %w", err)
	}

	return artifact, nil
}

func (r *ArtifactRepository) CreateIfAbsent(ctx context.Context, artifact model.Artifact) (bool, error) {
	payload, err := json.Marshal(artifact.Payload)
	if err != nil {
		return false, fmt.Errorf("failed to marshal payload: %w", err)
	}

	query := `INSERT INTO reading_artifacts (` + artifactColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (user_id, reading_type, period_bucket, language) DO NOTHING`

	tag, err := r.db.Exec(ctx, query,
		artifact.ID, artifact.Key.UserID, artifact.Key.ReadingType, artifact.Key.Bucket,
		artifact.Key.Language, payload, artifact.GeneratedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create artifact: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *ArtifactRepository) GetMostRecent(ctx context.Context, userID string, readingType model.ReadingType) (model.Artifact, error) {
	query := `SELECT ` + artifactColumns + ` FROM reading_artifacts
			  WHERE user_id = $1 AND reading_type = $2
			  ORDER BY generated_at DESC LIMIT 1`

	artifact, err := scanArtifact(r.db.QueryRow(ctx, query, userID, readingType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Artifact{}, model.ErrNotFound
		}
		return model.Artifact{}, fmt.Errorf("failed to get most recent artifact: %w", err)
	}

	return artifact, nil
}

func scanArtifact(row pgx.Row) (model.Artifact, error) {
	var (
		artifact model.Artifact
		payload  []byte
	)

	err := row.Scan(
		&artifact.ID, &artifact.Key.UserID, &artifact.Key.ReadingType, &artifact.Key.Bucket,
		&artifact.Key.Language, &payload, &artifact.GeneratedAt,
	)
	if err != nil {
		return model.Artifact{}, err
	}

	if err := json.Unmarshal(payload, &artifact.Payload); err != nil {
		return model.Artifact{}, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return artifact, nil
}
