package minio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/dtroode/neoarcana-server/internal/model"
)

// Internal adapter interface to enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

var _ model.HistorySink = (*Archive)(nil)

// Archive writes a JSON copy of every served reading to object storage.
type Archive struct {
	api    minioAPI
	bucket string
}

// NewArchive creates an archive backed by a real *minio.Client.
func NewArchive(ctx context.Context, client *minio.Client, bucket string) (*Archive, error) {
	return NewArchiveWithAPI(ctx, client, bucket)
}

// NewArchiveWithAPI allows injecting a mockable API (used in tests).
func NewArchiveWithAPI(ctx context.Context, api minioAPI, bucket string) (*Archive, error) {
	a := &Archive{
		api:    api,
		bucket: bucket,
	}

	if err := a.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return a, nil
}

func (a *Archive) ensureBucketExists(ctx context.Context) error {
	exists, err := a.api.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = a.api.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

func (a *Archive) Name() string {
	return "minio"
}

// Append uploads entry as users/<user>/readings/<timestamp>-<id>.json.
func (a *Archive) Append(ctx context.Context, entry model.HistoryEntry) error {
	body, err := json.Marshal(archivedReading{
		ID:          entry.ID.String(),
		UserID:      entry.UserID,
		ReadingType: string(entry.ReadingType),
		Language:    entry.Language,
		Bucket:      entry.Bucket,
		Cached:      entry.Cached,
		CreatedAt:   entry.CreatedAt.UTC(),
		Payload:     entry.Payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	_, err = a.api.PutObject(ctx, a.bucket, ObjectKey(entry), bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}

	return nil
}

// ObjectKey returns the object name an entry is archived under.
func ObjectKey(entry model.HistoryEntry) string {
	return fmt.Sprintf("users/%s/readings/%s-%s.json",
		entry.UserID, entry.CreatedAt.UTC().Format("20060102T150405Z"), entry.ID)
}

type archivedReading struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	ReadingType string        `json:"readingType"`
	Language    string        `json:"language"`
	Bucket      string        `json:"periodBucket"`
	Cached      bool          `json:"cached"`
	CreatedAt   time.Time     `json:"createdAt"`
	Payload     model.Payload `json:"payload"`
}
