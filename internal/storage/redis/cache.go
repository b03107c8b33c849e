package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dtroode/neoarcana-server/internal/logger"
	"github.com/dtroode/neoarcana-server/internal/model"
)

const keyPrefix = "neoarcana:artifact:"

// redisAPI is the subset of *redis.Client used by the cache.
type redisAPI interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

var _ model.ArtifactStore = (*ArtifactCache)(nil)

// ArtifactCache is a read-through cache in front of an ArtifactStore.
// Committed artifacts never change, so entries are never invalidated; they only expire.
// Redis failures degrade to the wrapped store.
type ArtifactCache struct {
	client redisAPI
	store  model.ArtifactStore
	ttl    time.Duration
	logger *logger.Logger
}

func NewArtifactCache(client redisAPI, store model.ArtifactStore, ttl time.Duration, logger *logger.Logger) *ArtifactCache {
	return &ArtifactCache{
		client: client,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *ArtifactCache) Get(ctx context.Context, key model.PeriodKey) (model.Artifact, error) {
	raw, err := c.client.Get(ctx, cacheKey(key)).Bytes()
	switch {
	case err == nil:
		artifact, decodeErr := decode(raw)
		if decodeErr == nil {
			return artifact, nil
		}
		c.logger.Warn("Artifact cache: failed to decode entry", "period_key", key.String(), "error", decodeErr)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("Artifact cache: get failed", "period_key", key.String(), "error", err)
	}

	artifact, err := c.store.Get(ctx, key)
	if err != nil {
		return model.Artifact{}, err
	}

	c.put(ctx, artifact)

	return artifact, nil
}

func (c *ArtifactCache) CreateIfAbsent(ctx context.Context, artifact model.Artifact) (bool, error) {
	created, err := c.store.CreateIfAbsent(ctx, artifact)
	if err != nil {
		return false, err
	}
	if created {
		c.put(ctx, artifact)
	}

	return created, nil
}

// GetMostRecent is not cached since it moves with every commit.
func (c *ArtifactCache) GetMostRecent(ctx context.Context, userID string, readingType model.ReadingType) (model.Artifact, error) {
	return c.store.GetMostRecent(ctx, userID, readingType)
}

func (c *ArtifactCache) put(ctx context.Context, artifact model.Artifact) {
	raw, err := encode(artifact)
	if err != nil {
		c.logger.Warn("Artifact cache: failed to encode entry", "period_key", artifact.Key.String(), "error", err)
		return
	}
	if err := c.client.Set(ctx, cacheKey(artifact.Key), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Artifact cache: set failed", "period_key", artifact.Key.String(), "error", err)
	}
}

func cacheKey(key model.PeriodKey) string {
	return keyPrefix + key.String()
}

type entry struct {
	ID          uuid.UUID     `json:"id"`
	UserID      string        `json:"userId"`
	ReadingType string        `json:"readingType"`
	Bucket      string        `json:"bucket"`
	Language    string        `json:"language"`
	Payload     model.Payload `json:"payload"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

func encode(a model.Artifact) ([]byte, error) {
	return json.Marshal(entry{
		ID:          a.ID,
		UserID:      a.Key.UserID,
		ReadingType: string(a.Key.ReadingType),
		Bucket:      a.Key.Bucket,
		Language:    a.Key.Language,
		Payload:     a.Payload,
		GeneratedAt: a.GeneratedAt,
	})
}

func decode(raw []byte) (model.Artifact, error) {
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return model.Artifact{}, fmt.Errorf("failed to unmarshal artifact: %w", err)
	}

	return model.Artifact{
		ID: e.ID,
		Key: model.PeriodKey{
			UserID:      e.UserID,
			ReadingType: model.ReadingType(e.ReadingType),
			Bucket:      e.Bucket,
			Language:    e.Language,
		},
		Payload:     e.Payload,
		GeneratedAt: e.GeneratedAt,
	}, nil
}
