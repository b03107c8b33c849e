package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/neoarcana-server/internal/logger"
	"github.com/dtroode/neoarcana-server/internal/model"
)

const dayBucketLayout = time.DateOnly

// Cache maps period keys to committed artifacts.
type Cache struct {
	store    model.ArtifactStore
	location *time.Location
	logger   *logger.Logger
}

func NewCache(store model.ArtifactStore, location *time.Location, logger *logger.Logger) *Cache {
	if location == nil {
		location = time.UTC
	}
	return &Cache{
		store:    store,
		location: location,
		logger:   logger,
	}
}

// PeriodKey derives the slot a reading requested at now belongs to.
// Weekly readings are keyed by the cycle the next consumption would open.
func (c *Cache) PeriodKey(user model.User, readingType model.ReadingType, language string, now time.Time) model.PeriodKey {
	key := model.PeriodKey{
		UserID:      user.ID,
		ReadingType: readingType,
		Language:    language,
	}
	if readingType.Policy() == model.PolicyWeeklyRolling {
		key.Bucket = model.WeeklyBucket(user.WeeklyCycle + 1)
	} else {
		key.Bucket = now.In(c.location).Format(dayBucketLayout)
	}
	return key
}

// Lookup returns the committed artifact for key, if any.
func (c *Cache) Lookup(ctx context.Context, key model.PeriodKey) (model.Artifact, bool, error) {
	artifact, err := c.store.Get(ctx, key)
	if errors.Is(err, model.ErrNotFound) {
		return model.Artifact{}, false, nil
	}
	if err != nil {
		return model.Artifact{}, false, fmt.Errorf("failed to get artifact: %w", err)
	}
	return artifact, true, nil
}

// LookupMostRecent returns the newest artifact of the type regardless of period.
func (c *Cache) LookupMostRecent(ctx context.Context, userID string, readingType model.ReadingType) (model.Artifact, bool, error) {
	artifact, err := c.store.GetMostRecent(ctx, userID, readingType)
	if errors.Is(err, model.ErrNotFound) {
		return model.Artifact{}, false, nil
	}
	if err != nil {
		return model.Artifact{}, false, fmt.Errorf("failed to get most recent artifact: %w", err)
	}
	return artifact, true, nil
}

// Store commits artifact unless its key is occupied. Storing identical content
// again is a no-op. When the key holds different content the committed artifact
// is returned together with ErrStoreConflict.
func (c *Cache) Store(ctx context.Context, artifact model.Artifact) (model.Artifact, error) {
	if artifact.IsFallback {
		return model.Artifact{}, fmt.Errorf("%w: fallback artifacts are not cached", model.ErrInvalidArgument)
	}

	created, err := c.store.CreateIfAbsent(ctx, artifact)
	if err != nil {
		return model.Artifact{}, fmt.Errorf("failed to create artifact: %w", err)
	}
	if created {
		return artifact, nil
	}

	existing, err := c.store.Get(ctx, artifact.Key)
	if err != nil {
		return model.Artifact{}, fmt.Errorf("failed to get conflicting artifact: %w", err)
	}
	if existing.Payload.Equal(artifact.Payload) {
		return existing, nil
	}

	c.logger.Debug("Cache service: period key already occupied",
		"key", artifact.Key.String(),
		"existing_id", existing.ID,
	)
	return existing, model.ErrStoreConflict
}
