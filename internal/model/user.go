package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByID(ctx context.Context, id string) (User, error)
	UpdateProfile(ctx context.Context, user User) error
	// MarkDailyConsumed records a committed daily-bucketed generation.
	MarkDailyConsumed(ctx context.Context, id string, at time.Time) error
	// MarkWeeklyConsumed records a committed weekly generation and advances the cycle.
	// The write is skipped when the stored cycle is already at or past cycle.
	MarkWeeklyConsumed(ctx context.Context, id string, at time.Time, cycle int64) error
}

// User represents a registered reader.
type User struct {
	ID                   string
	PosterCode           string
	Name                 string
	DateOfBirth          string
	ZodiacSign           string
	Preferences          Preferences
	RegistrationComplete bool
	LastDailyReadingAt   *time.Time
	LastWeeklyReadingAt  *time.Time
	WeeklyCycle          int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ZodiacSigns lists accepted zodiac sign names.
var ZodiacSigns = []string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// IsZodiacSign reports whether sign is one of ZodiacSigns.
func IsZodiacSign(sign string) bool {
	for _, s := range ZodiacSigns {
		if s == sign {
			return true
		}
	}
	return false
}
