package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/dtroode/neoarcana-server/internal/model"
)

var (
	_ model.HistorySink   = (*HistoryRepository)(nil)
	_ model.HistoryReader = (*HistoryRepository)(nil)
)

const maxHistoryLimit = 100

type HistoryRepository struct {
	db *Connection
	qb sq.StatementBuilderType
}

func NewHistoryRepository(db *Connection) *HistoryRepository {
	return &HistoryRepository{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *HistoryRepository) Name() string {
	return "postgres"
}

func (r *HistoryRepository) Append(ctx context.Context, entry model.HistoryEntry) error {
	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	query, args, err := r.qb.Insert("reading_history").
		Columns("id", "user_id", "reading_type", "language", "period_bucket", "payload", "cached", "created_at").
		Values(entry.ID, entry.UserID, entry.ReadingType, entry.Language, entry.Bucket, payload, entry.Cached, entry.CreatedAt).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build history insert: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}

	return nil
}

func (r *HistoryRepository) List(ctx context.Context, userID string, readingType model.ReadingType, limit uint64) ([]model.HistoryEntry, error) {
	query, args, err := r.listQuery(userID, readingType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build history query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var (
			entry   model.HistoryEntry
			payload []byte
		)
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.ReadingType, &entry.Language, &entry.Bucket,
			&payload, &entry.Cached, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if err := json.Unmarshal(payload, &entry.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}

	return entries, nil
}

func (r *HistoryRepository) listQuery(userID string, readingType model.ReadingType, limit uint64) (string, []any, error) {
	if limit == 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	b := r.qb.Select("id", "user_id", "reading_type", "language", "period_bucket", "payload", "cached", "created_at").
		From("reading_history").
		Where(sq.Eq{"user_id": userID})
	if readingType != "" {
		b = b.Where(sq.Eq{"reading_type": readingType})
	}

	return b.OrderBy("created_at DESC").Limit(limit).ToSql()
}
