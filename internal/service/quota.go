package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/neoarcana-server/internal/logger"
	"github.com/dtroode/neoarcana-server/internal/model"
)

// WeeklyWindow is the rolling window of the weekly reading.
const WeeklyWindow = 7 * 24 * time.Hour

// Quota decides whether a user may consume a reading and records consumption.
type Quota struct {
	users    model.UserStore
	location *time.Location
	now      func() time.Time
	logger   *logger.Logger
}

func NewQuota(users model.UserStore, location *time.Location, logger *logger.Logger) *Quota {
	if location == nil {
		location = time.UTC
	}
	return &Quota{
		users:    users,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// Location is the reference time zone for daily buckets.
func (q *Quota) Location() *time.Location {
	return q.location
}

// Admit evaluates the policy of readingType against the user's consumption state.
func (q *Quota) Admit(user model.User, readingType model.ReadingType, now time.Time) model.Admission {
	switch readingType.Policy() {
	case model.PolicyDailyBucketed:
		if user.LastDailyReadingAt == nil {
			return model.Allow()
		}
		local := now.In(q.location)
		if !sameDay(user.LastDailyReadingAt.In(q.location), local) {
			return model.Allow()
		}
		midnight := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, q.location)
		return model.Deny(midnight.Sub(now))
	case model.PolicyWeeklyRolling:
		if user.LastWeeklyReadingAt == nil {
			return model.Allow()
		}
		elapsed := max(now.Sub(*user.LastWeeklyReadingAt), 0)
		if elapsed >= WeeklyWindow {
			return model.Allow()
		}
		return model.Deny(WeeklyWindow - elapsed)
	default:
		return model.Allow()
	}
}

// Check loads the user and evaluates admission at the current time.
func (q *Quota) Check(ctx context.Context, userID string, readingType model.ReadingType) (model.Admission, error) {
	user, err := q.users.GetByID(ctx, userID)
	if err != nil {
		return model.Admission{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return q.Admit(user, readingType, q.now()), nil
}

// MarkConsumed records that the artifact under key was committed at the given time.
// Unlimited reading types are not tracked.
func (q *Quota) MarkConsumed(ctx context.Context, key model.PeriodKey, at time.Time) error {
	switch key.ReadingType.Policy() {
	case model.PolicyDailyBucketed:
		if err := q.users.MarkDailyConsumed(ctx, key.UserID, at); err != nil {
			return fmt.Errorf("failed to mark daily reading: %w", err)
		}
	case model.PolicyWeeklyRolling:
		cycle, err := model.ParseWeeklyBucket(key.Bucket)
		if err != nil {
			return err
		}
		if err := q.users.MarkWeeklyConsumed(ctx, key.UserID, at, cycle); err != nil {
			return fmt.Errorf("failed to mark weekly reading: %w", err)
		}
	default:
		return nil
	}

	q.logger.Debug("Quota service: consumption recorded",
		"user_id", key.UserID,
		"reading_type", key.ReadingType,
		"bucket", key.Bucket,
	)
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
