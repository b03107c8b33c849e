package model

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReadingType enumerates reading kinds.
type ReadingType string

const (
	// ReadingTypeDailySingle is the single-card daily reading.
	ReadingTypeDailySingle ReadingType = "daily_single"
	// ReadingTypeThreeCardDaily is the past/present/future spread, once per day.
	ReadingTypeThreeCardDaily ReadingType = "three_card_daily"
	// ReadingTypeThreeCardWeekly is the challenge/opportunity/outcome spread, once per rolling week.
	ReadingTypeThreeCardWeekly ReadingType = "three_card_weekly"
)

// ReadingTypes lists all reading types.
var ReadingTypes = []ReadingType{ReadingTypeDailySingle, ReadingTypeThreeCardDaily, ReadingTypeThreeCardWeekly}

// ParseReadingType validates s as a reading type.
func ParseReadingType(s string) (ReadingType, error) {
	t := ReadingType(s)
	if !slices.Contains(ReadingTypes, t) {
		return "", fmt.Errorf("%w: %q", ErrInvalidReadingType, s)
	}
	return t, nil
}

// Policy is the admission rule for a reading type.
type Policy int

const (
	PolicyUnlimited Policy = iota
	PolicyDailyBucketed
	PolicyWeeklyRolling
)

func (p Policy) String() string {
	switch p {
	case PolicyUnlimited:
		return "unlimited"
	case PolicyDailyBucketed:
		return "daily"
	case PolicyWeeklyRolling:
		return "weekly"
	default:
		return "unknown"
	}
}

// Policy returns the admission policy of t.
func (t ReadingType) Policy() Policy {
	switch t {
	case ReadingTypeThreeCardDaily:
		return PolicyDailyBucketed
	case ReadingTypeThreeCardWeekly:
		return PolicyWeeklyRolling
	default:
		return PolicyUnlimited
	}
}

// CardCount returns how many cards the reading draws.
func (t ReadingType) CardCount() int {
	if t == ReadingTypeDailySingle {
		return 1
	}
	return 3
}

// Admission is the result of a quota check.
type Admission struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Allow admits a request.
func Allow() Admission {
	return Admission{Allowed: true}
}

// Deny rejects a request until retryAfter elapses.
func Deny(retryAfter time.Duration) Admission {
	return Admission{RetryAfter: retryAfter}
}

// PeriodKey identifies one cacheable artifact slot.
type PeriodKey struct {
	UserID      string
	ReadingType ReadingType
	Bucket      string
	Language    string
}

func (k PeriodKey) String() string {
	return strings.Join([]string{k.UserID, string(k.ReadingType), k.Bucket, k.Language}, ":")
}

const weeklyBucketPrefix = "cycle-"

// WeeklyBucket formats a weekly cycle id as a period bucket.
func WeeklyBucket(cycle int64) string {
	return weeklyBucketPrefix + strconv.FormatInt(cycle, 10)
}

// ParseWeeklyBucket extracts the cycle id from a weekly period bucket.
func ParseWeeklyBucket(bucket string) (int64, error) {
	raw, ok := strings.CutPrefix(bucket, weeklyBucketPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: weekly bucket %q", ErrInvalidArgument, bucket)
	}
	cycle, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: weekly bucket %q", ErrInvalidArgument, bucket)
	}
	return cycle, nil
}

// Payload is the generated content of a reading.
type Payload struct {
	Text      string            `json:"text"`
	CardNames []string          `json:"cardNames,omitempty"`
	Positions []string          `json:"positions,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Equal reports whether both payloads carry the same content.
func (p Payload) Equal(other Payload) bool {
	if p.Text != other.Text {
		return false
	}
	if !slices.Equal(p.CardNames, other.CardNames) || !slices.Equal(p.Positions, other.Positions) {
		return false
	}
	if len(p.Metadata) != len(other.Metadata) {
		return false
	}
	for k, v := range p.Metadata {
		if ov, ok := other.Metadata[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Artifact is a reading bound to a period key.
type Artifact struct {
	ID          uuid.UUID
	Key         PeriodKey
	Payload     Payload
	GeneratedAt time.Time
	IsFallback  bool
}

// ArtifactStore persists committed artifacts.
type ArtifactStore interface {
	// Get returns ErrNotFound when nothing is committed under key.
	Get(ctx context.Context, key PeriodKey) (Artifact, error)
	// CreateIfAbsent atomically writes the artifact unless its key is occupied.
	// It returns false when the key already existed.
	CreateIfAbsent(ctx context.Context, artifact Artifact) (bool, error)
	// GetMostRecent returns ErrNotFound when the user has no artifact of the type.
	GetMostRecent(ctx context.Context, userID string, readingType ReadingType) (Artifact, error)
}

// TemplateInputs are caller supplied prompt inputs.
type TemplateInputs struct {
	Question string
	Extra    map[string]string
}

// GenerationRequest is passed to a Generator.
type GenerationRequest struct {
	ReadingType ReadingType
	Language    string
	Profile     User
	Inputs      TemplateInputs
	Now         time.Time
}

// Generator produces reading payloads. Failures should be *GenerationError.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (Payload, error)
}

// FallbackProvider returns static readings used when generation fails.
type FallbackProvider interface {
	Fallback(readingType ReadingType, language string) Payload
}

// ReadingResult is returned by the reading service.
type ReadingResult struct {
	Payload     Payload
	ReadingType ReadingType
	Language    string
	GeneratedAt time.Time
	Cached      bool
	IsFallback  bool
}
