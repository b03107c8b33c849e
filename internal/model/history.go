package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is one served reading recorded for the user.
type HistoryEntry struct {
	ID          uuid.UUID
	UserID      string
	ReadingType ReadingType
	Language    string
	Bucket      string
	Payload     Payload
	Cached      bool
	CreatedAt   time.Time
}

// HistorySink receives history entries on a best-effort basis.
type HistorySink interface {
	Append(ctx context.Context, entry HistoryEntry) error
	Name() string
}

// HistoryReader lists history entries, newest first. An empty readingType lists all.
type HistoryReader interface {
	List(ctx context.Context, userID string, readingType ReadingType, limit uint64) ([]HistoryEntry, error)
}
