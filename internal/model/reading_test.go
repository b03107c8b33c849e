package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingType_Policy(t *testing.T) {
	tests := []struct {
		readingType ReadingType
		policy      Policy
		cards       int
	}{
		{ReadingTypeDailySingle, PolicyUnlimited, 1},
		{ReadingTypeThreeCardDaily, PolicyDailyBucketed, 3},
		{ReadingTypeThreeCardWeekly, PolicyWeeklyRolling, 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.readingType), func(t *testing.T) {
			assert.Equal(t, tt.policy, tt.readingType.Policy())
			assert.Equal(t, tt.cards, tt.readingType.CardCount())
		})
	}
}

func TestParseReadingType(t *testing.T) {
	rt, err := ParseReadingType("three_card_weekly")
	require.NoError(t, err)
	assert.Equal(t, ReadingTypeThreeCardWeekly, rt)

	_, err = ParseReadingType("celtic_cross")
	assert.ErrorIs(t, err, ErrInvalidReadingType)
}

func TestWeeklyBucket(t *testing.T) {
	assert.Equal(t, "cycle-3", WeeklyBucket(3))

	cycle, err := ParseWeeklyBucket("cycle-42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), cycle)

	_, err = ParseWeeklyBucket("2025-01-01")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ParseWeeklyBucket("cycle-x")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPeriodKey_String(t *testing.T) {
	key := PeriodKey{UserID: "nfc_ABCD1234", ReadingType: ReadingTypeThreeCardDaily, Bucket: "2025-03-01", Language: "en"}
	assert.Equal(t, "nfc_ABCD1234:three_card_daily:2025-03-01:en", key.String())
}

func TestPayload_Equal(t *testing.T) {
	base := Payload{
		Text:      "The Star shines",
		CardNames: []string{"The Star"},
		Metadata:  map[string]string{"source": "ai"},
	}

	tests := []struct {
		name  string
		other Payload
		want  bool
	}{
		{"identical", Payload{Text: "The Star shines", CardNames: []string{"The Star"}, Metadata: map[string]string{"source": "ai"}}, true},
		{"different text", Payload{Text: "The Sun", CardNames: []string{"The Star"}, Metadata: map[string]string{"source": "ai"}}, false},
		{"different cards", Payload{Text: "The Star shines", CardNames: []string{"The Sun"}, Metadata: map[string]string{"source": "ai"}}, false},
		{"missing metadata", Payload{Text: "The Star shines", CardNames: []string{"The Star"}}, false},
		{"different metadata", Payload{Text: "The Star shines", CardNames: []string{"The Star"}, Metadata: map[string]string{"source": "static"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Equal(tt.other))
		})
	}
}

func TestErrors_Unwrap(t *testing.T) {
	var err error = &QuotaExceededError{ReadingType: ReadingTypeThreeCardWeekly, RetryAfter: 2 * time.Hour}
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	var qe *QuotaExceededError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, 2*time.Hour, qe.RetryAfter)

	err = &ValidationError{Kind: ErrAlreadyRegistered, Detail: "ABCD1234"}
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Equal(t, "poster already registered: ABCD1234", err.Error())

	cause := errors.New("boom")
	gen := &GenerationError{Reason: GenerationReasonProvider, Err: cause}
	assert.ErrorIs(t, gen, ErrGeneration)
	assert.ErrorIs(t, gen, cause)
	assert.True(t, gen.Retryable())
	assert.False(t, (&GenerationError{Reason: GenerationReasonInvalidOutput}).Retryable())
}
