package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dtroode/neoarcana-server/internal/config"
	"github.com/dtroode/neoarcana-server/internal/logger"
	"github.com/dtroode/neoarcana-server/internal/model"
)

const (
	messagesPath     = "/v1/messages"
	anthropicVersion = "2023-06-01"
)

var _ model.Generator = (*Anthropic)(nil)

// Anthropic generates readings through the Anthropic Messages API.
type Anthropic struct {
	endpoint   string
	apiKey     string
	model      string
	maxTokens  int
	deck       *Deck
	httpClient *http.Client
	logger     *logger.Logger
}

// NewAnthropic builds a generator from configuration. Request deadlines come
// from the caller context.
func NewAnthropic(cfg config.Generator, deck *Deck, logger *logger.Logger) *Anthropic {
	return &Anthropic{
		endpoint:  strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		deck:      deck,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate draws cards, asks the model for an interpretation and validates the language of the answer.
func (a *Anthropic) Generate(ctx context.Context, req model.GenerationRequest) (model.Payload, error) {
	if a.apiKey == "" || a.endpoint == "" || a.model == "" {
		return model.Payload{}, &model.GenerationError{Reason: model.GenerationReasonRejected, Err: errors.New("generator misconfigured")}
	}

	cards := a.deck.Draw(req.ReadingType.CardCount())
	prompt, err := RenderPrompt(req, cards)
	if err != nil {
		return model.Payload{}, &model.GenerationError{Reason: model.GenerationReasonRejected, Err: err}
	}

	started := time.Now()
	text, err := a.complete(ctx, prompt)
	if err != nil {
		return model.Payload{}, err
	}

	text, err = CleanOutput(text, req.Language)
	if err != nil {
		a.logger.Warn("Generator: output rejected",
			"reading_type", req.ReadingType,
			"language", req.Language,
			"error", err)
		return model.Payload{}, err
	}

	a.logger.Debug("Generator: reading generated",
		"reading_type", req.ReadingType,
		"language", req.Language,
		"duration", time.Since(started))

	names := make([]string, 0, len(cards))
	for _, c := range cards {
		names = append(names, c.Name)
	}

	return model.Payload{
		Text:      text,
		CardNames: names,
		Positions: Positions(req.ReadingType)[:len(cards)],
		Metadata: map[string]string{
			"model":    a.model,
			"language": req.Language,
		},
	}, nil
}

func (a *Anthropic) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(messageRequest{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		System:    systemPrompt,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", &model.GenerationError{Reason: model.GenerationReasonRejected, Err: fmt.Errorf("marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint+messagesPath, bytes.NewReader(body))
	if err != nil {
		return "", &model.GenerationError{Reason: model.GenerationReasonRejected, Err: fmt.Errorf("new request: %w", err)}
	}
	httpReq.Header.Set("x-api-key", a.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return "", transportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", statusError(resp)
	}

	var out messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &model.GenerationError{Reason: model.GenerationReasonInvalidOutput, Err: fmt.Errorf("decode response: %w", err)}
	}
	if out.StopReason == "refusal" {
		return "", &model.GenerationError{Reason: model.GenerationReasonRejected, Err: errors.New("model refused the prompt")}
	}

	var sb strings.Builder
	for _, block := range out.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return sb.String(), nil
}

func transportError(ctx context.Context, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return &model.GenerationError{Reason: model.GenerationReasonTimeout, Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &model.GenerationError{Reason: model.GenerationReasonRejected, Err: err}
	}
	return &model.GenerationError{Reason: model.GenerationReasonProvider, Err: err}
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	perr := &ProviderError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}

	var body errorResponse
	if json.Unmarshal(raw, &body) == nil && body.Error.Message != "" {
		perr.Type = body.Error.Type
		perr.Message = body.Error.Message
	}

	// 429 and 5xx (including 529 overloaded) are worth retrying.
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return &model.GenerationError{Reason: model.GenerationReasonProvider, Err: perr}
	}
	return &model.GenerationError{Reason: model.GenerationReasonRejected, Err: perr}
}
