package generator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/neoarcana-server/internal/config"
	"github.com/dtroode/neoarcana-server/internal/model"
	"github.com/dtroode/neoarcana-server/internal/testutil"
)

func newTestAnthropic(endpoint string) *Anthropic {
	return NewAnthropic(config.Generator{
		Endpoint:  endpoint,
		APIKey:    "sk-test",
		Model:     "test-model",
		MaxTokens: 256,
	}, NewSeededDeck(1, 2), testutil.MakeNoopLogger())
}

func testRequest(t model.ReadingType, lang string) model.GenerationRequest {
	return model.GenerationRequest{
		ReadingType: t,
		Language:    lang,
		Profile:     model.User{ID: "u1", Name: "Nino", ZodiacSign: "Aries"},
		Now:         time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestAnthropic_Generate(t *testing.T) {
	var got messageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, messagesPath, r.URL.Path)
		assert.Equal(t, "sk-test", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"` + "```" + `[PAST]hope[/PAST]` + "```" + `"}],"stop_reason":"end_turn"}`))
	}))
	defer srv.Close()

	g := newTestAnthropic(srv.URL)
	payload, err := g.Generate(context.Background(), testRequest(model.ReadingTypeThreeCardDaily, "en"))
	require.NoError(t, err)

	assert.Equal(t, "[PAST]hope[/PAST]", payload.Text)
	assert.Len(t, payload.CardNames, 3)
	assert.Equal(t, []string{"Past", "Present", "Future"}, payload.Positions)
	assert.Equal(t, "test-model", payload.Metadata["model"])

	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, 256, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Contains(t, got.Messages[0].Content, "Nino")
	assert.Contains(t, got.Messages[0].Content, payload.CardNames[0])
}

func TestAnthropic_GenerateErrors(t *testing.T) {
	tests := []struct {
		name       string
		language   string
		status     int
		body       string
		wantReason model.GenerationReason
		retryable  bool
	}{
		{
			name:       "overloaded",
			status:     529,
			body:       `{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`,
			wantReason: model.GenerationReasonProvider,
			retryable:  true,
		},
		{
			name:       "rate limited",
			status:     http.StatusTooManyRequests,
			body:       `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`,
			wantReason: model.GenerationReasonProvider,
			retryable:  true,
		},
		{
			name:       "bad request",
			status:     http.StatusBadRequest,
			body:       `{"type":"error","error":{"type":"invalid_request_error","message":"bad"}}`,
			wantReason: model.GenerationReasonRejected,
		},
		{
			name:       "refusal",
			status:     http.StatusOK,
			body:       `{"content":[],"stop_reason":"refusal"}`,
			wantReason: model.GenerationReasonRejected,
		},
		{
			name:       "wrong script",
			language:   "ka",
			status:     http.StatusOK,
			body:       `{"content":[{"type":"text","text":"This is English, not Georgian."}],"stop_reason":"end_turn"}`,
			wantReason: model.GenerationReasonInvalidOutput,
		},
		{
			name:       "empty text",
			status:     http.StatusOK,
			body:       `{"content":[{"type":"text","text":"   "}],"stop_reason":"end_turn"}`,
			wantReason: model.GenerationReasonInvalidOutput,
		},
		{
			name:       "garbage body",
			status:     http.StatusOK,
			body:       `not json`,
			wantReason: model.GenerationReasonInvalidOutput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			lang := tt.language
			if lang == "" {
				lang = "en"
			}
			_, err := newTestAnthropic(srv.URL).Generate(context.Background(), testRequest(model.ReadingTypeDailySingle, lang))
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrGeneration)

			var genErr *model.GenerationError
			require.ErrorAs(t, err, &genErr)
			assert.Equal(t, tt.wantReason, genErr.Reason)
			assert.Equal(t, tt.retryable, genErr.Retryable())
		})
	}
}

func TestAnthropic_GenerateTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestAnthropic(srv.URL).Generate(ctx, testRequest(model.ReadingTypeDailySingle, "en"))
	var genErr *model.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, model.GenerationReasonTimeout, genErr.Reason)
	assert.True(t, genErr.Retryable())
}

func TestAnthropic_Misconfigured(t *testing.T) {
	g := NewAnthropic(config.Generator{Endpoint: "http://localhost", Model: "m"}, NewSeededDeck(1, 2), testutil.MakeNoopLogger())

	_, err := g.Generate(context.Background(), testRequest(model.ReadingTypeDailySingle, "en"))
	var genErr *model.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, model.GenerationReasonRejected, genErr.Reason)
}
