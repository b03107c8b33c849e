package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/neoarcana-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, poster_code, name, date_of_birth, zodiac_sign, preferences, registration_complete,
			  last_daily_reading_at, last_weekly_reading_at, weekly_cycle, created_at, updated_at`

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user model.User) error {
	prefs, err := json.Marshal(user.Preferences)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	query := `UPDATE users SET name = $2, date_of_birth = $3, zodiac_sign = $4, preferences = $5, updated_at = now()
			  WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, user.ID, user.Name, user.DateOfBirth, user.ZodiacSign, prefs)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *UserRepository) MarkDailyConsumed(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE users SET last_daily_reading_at = $2, updated_at = now()
			  WHERE id = $1 AND (last_daily_reading_at IS NULL OR last_daily_reading_at < $2)`

	_, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to mark daily reading consumed: %w", err)
	}

	return nil
}

func (r *UserRepository) MarkWeeklyConsumed(ctx context.Context, id string, at time.Time, cycle int64) error {
	query := `UPDATE users SET last_weekly_reading_at = $2, weekly_cycle = $3, updated_at = now()
			  WHERE id = $1 AND weekly_cycle < $3`

	_, err := r.db.Exec(ctx, query, id, at, cycle)
	if err != nil {
		return fmt.Errorf("failed to mark weekly reading consumed: %w", err)
	}

	return nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var (
		user  model.User
		prefs []byte
	)

	err := row.Scan(
		&user.ID, &user.PosterCode, &user.Name, &user.DateOfBirth, &user.ZodiacSign, &prefs,
		&user.RegistrationComplete, &user.LastDailyReadingAt, &user.LastWeeklyReadingAt,
		&user.WeeklyCycle, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return model.User{}, err
	}

	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &user.Preferences); err != nil {
			return model.User{}, fmt.Errorf("failed to unmarshal preferences: %w", err)
		}
	}

	return user, nil
}
