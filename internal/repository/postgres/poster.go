package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/neoarcana-server/internal/model"
)

var _ model.PosterStore = (*PosterRepository)(nil)

const uniqueViolation = "23505"

type PosterRepository struct {
	db *Connection
}

func NewPosterRepository(db *Connection) *PosterRepository {
	return &PosterRepository{
		db: db,
	}
}

func (r *PosterRepository) GetByCode(ctx context.Context, code string) (model.Poster, error) {
	var (
		poster   model.Poster
		nfcID    *string
		linkedID *string
	)
	query := `SELECT code, registered, nfc_id, linked_user_id, registered_at, created_at
			  FROM posters WHERE code = $1`

	err := r.db.QueryRow(ctx, query, code).Scan(
		&poster.Code, &poster.Registered, &nfcID, &linkedID, &poster.RegisteredAt, &poster.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Poster{}, model.ErrNotFound
		}
		return model.Poster{}, fmt.Errorf("failed to get poster by code: %w", err)
	}
	if nfcID != nil {
		poster.NFCID = *nfcID
	}
	if linkedID != nil {
		poster.LinkedUserID = *linkedID
	}

	return poster, nil
}

// Create inserts an unregistered poster code. Used by seeding and tests.
func (r *PosterRepository) Create(ctx context.Context, code string) error {
	query := `INSERT INTO posters (code, registered) VALUES ($1, FALSE) ON CONFLICT (code) DO NOTHING`

	_, err := r.db.Exec(ctx, query, code)
	if err != nil {
		return fmt.Errorf("failed to create poster: %w", err)
	}

	return nil
}

func (r *PosterRepository) Register(ctx context.Context, code string, user model.User) (model.User, error) {
	prefs, err := json.Marshal(user.Preferences)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to marshal preferences: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var registered bool
	err = tx.QueryRow(ctx, `SELECT registered FROM posters WHERE code = $1 FOR UPDATE`, code).Scan(&registered)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrInvalidCode
		}
		return model.User{}, fmt.Errorf("failed to lock poster: %w", err)
	}
	if registered {
		return model.User{}, model.ErrAlreadyRegistered
	}

	now := time.Now().UTC()
	insertUser := `INSERT INTO users (id, poster_code, name, date_of_birth, zodiac_sign, preferences,
			  registration_complete, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $7)`

	_, err = tx.Exec(ctx, insertUser, user.ID, code, user.Name, user.DateOfBirth, user.ZodiacSign, prefs, now)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.User{}, model.ErrAlreadyRegistered
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	flip := `UPDATE posters SET registered = TRUE, nfc_id = COALESCE(nfc_id, $2), linked_user_id = $2, registered_at = $3
			  WHERE code = $1 AND registered = FALSE`

	tag, err := tx.Exec(ctx, flip, code, user.ID, now)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to mark poster registered: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.User{}, model.ErrAlreadyRegistered
	}

	if err := tx.Commit(ctx); err != nil {
		return model.User{}, fmt.Errorf("failed to commit registration: %w", err)
	}

	user.PosterCode = code
	user.RegistrationComplete = true
	user.CreatedAt = now
	user.UpdatedAt = now

	return user, nil
}
