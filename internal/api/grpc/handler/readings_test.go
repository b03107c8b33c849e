package handler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/neoarcana-server/internal/mocks"
	"github.com/dtroode/neoarcana-server/internal/model"
	"github.com/dtroode/neoarcana-server/internal/testutil"
)

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

type handlerDeps struct {
	readings      *mocks.ReadingService
	registrations *mocks.RegistrationService
	contexts      *mocks.ContextManager
}

func newTestHandler(t *testing.T) (*Readings, handlerDeps) {
	t.Helper()
	deps := handlerDeps{
		readings:      mocks.NewReadingService(t),
		registrations: mocks.NewRegistrationService(t),
		contexts:      mocks.NewContextManager(t),
	}
	return NewReadings(deps.readings, deps.registrations, deps.contexts, testutil.MakeNoopLogger()), deps
}

func TestReadings_GetReading(t *testing.T) {
	t.Parallel()

	h, deps := newTestHandler(t)
	generatedAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	deps.contexts.On("GetUserIDFromContext", mock.Anything).Return("u1", true)
	deps.readings.On("GetReading", mock.Anything, model.ReadingRequest{
		UserID:      "u1",
		ReadingType: model.ReadingTypeThreeCardWeekly,
		Language:    "ka",
		Inputs:      model.TemplateInputs{Question: "career?"},
	}).Return(model.ReadingResult{
		Payload:     model.Payload{Text: "reading", CardNames: []string{"The Star", "The Sun", "The World"}},
		ReadingType: model.ReadingTypeThreeCardWeekly,
		Language:    "ka",
		GeneratedAt: generatedAt,
		Cached:      true,
	}, nil)

	resp, err := h.GetReading(context.Background(), mustStruct(t, map[string]any{
		"readingType": "three_card_weekly",
		"language":    "ka",
		"question":    "career?",
	}))
	require.NoError(t, err)

	fields := resp.GetFields()
	assert.True(t, fields["cached"].GetBoolValue())
	assert.False(t, fields["isFallback"].GetBoolValue())
	assert.Equal(t, "ka", fields["language"].GetStringValue())
	assert.Equal(t, "2025-03-10T09:00:00Z", fields["generatedAt"].GetStringValue())

	reading := fields["reading"].GetStructValue().GetFields()
	assert.Equal(t, "reading", reading["text"].GetStringValue())
	assert.Len(t, reading["cardNames"].GetListValue().GetValues(), 3)
}

func TestReadings_GetReading_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       map[string]any
		setup    func(d handlerDeps)
		wantCode codes.Code
	}{
		{
			name: "unauthenticated",
			in:   map[string]any{"readingType": "daily_single"},
			setup: func(d handlerDeps) {
				d.contexts.On("GetUserIDFromContext", mock.Anything).Return("", false)
			},
			wantCode: codes.Unauthenticated,
		},
		{
			name: "unknown reading type",
			in:   map[string]any{"readingType": "monthly"},
			setup: func(d handlerDeps) {
				d.contexts.On("GetUserIDFromContext", mock.Anything).Return("u1", true)
			},
			wantCode: codes.InvalidArgument,
		},
		{
			name: "malformed field",
			in:   map[string]any{"readingType": 42},
			setup: func(d handlerDeps) {
				d.contexts.On("GetUserIDFromContext", mock.Anything).Return("u1", true)
			},
			wantCode: codes.InvalidArgument,
		},
		{
			name: "quota exceeded",
			in:   map[string]any{"readingType": "three_card_daily"},
			setup: func(d handlerDeps) {
				d.contexts.On("GetUserIDFromContext", mock.Anything).Return("u1", true)
				d.readings.On("GetReading", mock.Anything, mock.Anything).
					Return(model.ReadingResult{}, &model.QuotaExceededError{ReadingType: model.ReadingTypeThreeCardDaily, RetryAfter: time.Hour})
			},
			wantCode: codes.ResourceExhausted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, deps := newTestHandler(t)
			tt.setup(deps)

			_, err := h.GetReading(context.Background(), mustStruct(t, tt.in))
			assert.Equal(t, tt.wantCode, status.Code(err))
		})
	}
}

func TestReadings_VerifyPoster(t *testing.T) {
	t.Parallel()

	h, deps := newTestHandler(t)
	deps.registrations.On("VerifyPoster", mock.Anything, "POSTER01").
		Return(model.PosterStatus{Code: "POSTER01", Registered: true}, nil)

	resp, err := h.VerifyPoster(context.Background(), mustStruct(t, map[string]any{"code": "POSTER01"}))
	require.NoError(t, err)
	assert.False(t, resp.GetFields()["valid"].GetBoolValue())
	assert.True(t, resp.GetFields()["registered"].GetBoolValue())
}

func TestReadings_Register(t *testing.T) {
	t.Parallel()

	h, deps := newTestHandler(t)
	deps.registrations.On("Register", mock.Anything, model.RegisterParams{
		PosterCode:  "POSTER01",
		Name:        "Nino",
		DateOfBirth: "1995-06-15",
		ZodiacSign:  "Gemini",
		Preferences: model.Preferences{Language: "ka", Interests: []string{"love"}, Numbers: model.Numbers{Lucky: 7}},
	}).Return(model.RegisterResult{
		Token: "token",
		User:  model.User{ID: "nfc_POSTER01", Name: "Nino"},
	}, nil)

	resp, err := h.Register(context.Background(), mustStruct(t, map[string]any{
		"posterCode":  "POSTER01",
		"name":        "Nino",
		"dateOfBirth": "1995-06-15",
		"zodiacSign":  "Gemini",
		"preferences": map[string]any{
			"language":  "ka",
			"interests": []any{"love"},
			"numbers":   map[string]any{"lucky": 7},
		},
	}))
	require.NoError(t, err)
	assert.Equal(t, "token", resp.GetFields()["token"].GetStringValue())
	assert.Equal(t, "nfc_POSTER01", resp.GetFields()["user"].GetStructValue().GetFields()["id"].GetStringValue())
}

func TestReadings_Register_AlreadyRegistered(t *testing.T) {
	t.Parallel()

	h, deps := newTestHandler(t)
	deps.registrations.On("Register", mock.Anything, mock.Anything).
		Return(model.RegisterResult{}, &model.ValidationError{Kind: model.ErrAlreadyRegistered})

	_, err := h.Register(context.Background(), mustStruct(t, map[string]any{"posterCode": "POSTER01"}))
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
}

func TestReadings_UpdatePreferences(t *testing.T) {
	t.Parallel()

	h, deps := newTestHandler(t)
	deps.contexts.On("GetUserIDFromContext", mock.Anything).Return("u1", true)
	deps.registrations.On("UpdatePreferences", mock.Anything, "u1", mock.MatchedBy(func(u model.PreferencesUpdate) bool {
		return u.Language != nil && *u.Language == "ru" && u.Name == nil && u.Interests == nil
	})).Return(model.User{ID: "u1", Preferences: model.Preferences{Language: "ru"}}, nil)

	resp, err := h.UpdatePreferences(context.Background(), mustStruct(t, map[string]any{"language": "ru"}))
	require.NoError(t, err)
	prefs := resp.GetFields()["preferences"].GetStructValue().GetFields()
	assert.Equal(t, "ru", prefs["language"].GetStringValue())
}

func TestReadings_ListHistory(t *testing.T) {
	t.Parallel()

	h, deps := newTestHandler(t)
	id := uuid.New()
	deps.contexts.On("GetUserIDFromContext", mock.Anything).Return("u1", true)
	deps.readings.On("History", mock.Anything, "u1", model.ReadingType(""), uint64(5)).Return([]model.HistoryEntry{
		{ID: id, UserID: "u1", ReadingType: model.ReadingTypeDailySingle, Bucket: "2025-03-10", Payload: model.Payload{Text: "x"}},
	}, nil)

	resp, err := h.ListHistory(context.Background(), mustStruct(t, map[string]any{"limit": 5}))
	require.NoError(t, err)

	entries := resp.GetFields()["entries"].GetListValue().GetValues()
	require.Len(t, entries, 1)
	entry := entries[0].GetStructValue().GetFields()
	assert.Equal(t, id.String(), entry["id"].GetStringValue())
	assert.Equal(t, "2025-03-10", entry["period"].GetStringValue())
}
