package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/dtroode/neoarcana-server/internal/logger"
	"github.com/dtroode/neoarcana-server/internal/metrics"
	"github.com/dtroode/neoarcana-server/internal/model"
)

const tracerName = "github.com/dtroode/neoarcana-server/internal/service"

// ReadingOptions tune generation and history recording.
type ReadingOptions struct {
	// GenerationTimeout bounds all generation attempts of one request.
	GenerationTimeout time.Duration
	// MaxRetries is the number of extra attempts after a retryable failure.
	MaxRetries     uint64
	InitialBackoff time.Duration
	// HistoryTimeout bounds each best-effort history write.
	HistoryTimeout time.Duration
}

func (o ReadingOptions) withDefaults() ReadingOptions {
	if o.GenerationTimeout <= 0 {
		o.GenerationTimeout = 60 * time.Second
	}
	if o.InitialBackoff <= 0 {
		o.InitialBackoff = 500 * time.Millisecond
	}
	if o.HistoryTimeout <= 0 {
		o.HistoryTimeout = 10 * time.Second
	}
	return o
}

// Reading serves readings from the cache or generates them under quota.
type Reading struct {
	gate      *Gate
	quota     *Quota
	cache     *Cache
	generator model.Generator
	fallbacks model.FallbackProvider
	history   model.HistoryReader
	sinks     []model.HistorySink
	metrics   *metrics.Readings
	opts      ReadingOptions
	tracer    trace.Tracer
	logger    *logger.Logger
	now       func() time.Time

	inflight singleflight.Group
	pending  sync.WaitGroup
}

func NewReading(
	gate *Gate,
	quota *Quota,
	cache *Cache,
	generator model.Generator,
	fallbacks model.FallbackProvider,
	history model.HistoryReader,
	sinks []model.HistorySink,
	metrics *metrics.Readings,
	opts ReadingOptions,
	logger *logger.Logger,
) *Reading {
	return &Reading{
		gate:      gate,
		quota:     quota,
		cache:     cache,
		generator: generator,
		fallbacks: fallbacks,
		history:   history,
		sinks:     sinks,
		metrics:   metrics,
		opts:      opts.withDefaults(),
		tracer:    otel.Tracer(tracerName),
		logger:    logger,
		now:       time.Now,
	}
}

// GetReading returns the reading for the current period, generating it at most once.
//
// A denied request is answered with the most recent committed artifact of the
// type when one exists. Generation failures degrade to a fallback payload that
// is neither cached nor counted against the quota.
func (s *Reading) GetReading(ctx context.Context, req model.ReadingRequest) (model.ReadingResult, error) {
	ctx, span := s.tracer.Start(ctx, "Reading.GetReading", trace.WithAttributes(
		attribute.String("reading_type", string(req.ReadingType)),
	))
	defer span.End()

	result, err := s.getReading(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return model.ReadingResult{}, err
	}
	span.SetAttributes(
		attribute.Bool("cached", result.Cached),
		attribute.Bool("fallback", result.IsFallback),
	)
	return result, nil
}

func (s *Reading) getReading(ctx context.Context, req model.ReadingRequest) (model.ReadingResult, error) {
	if _, err := model.ParseReadingType(string(req.ReadingType)); err != nil {
		return model.ReadingResult{}, &model.ValidationError{Kind: model.ErrInvalidArgument, Detail: err.Error()}
	}

	user, err := s.gate.ValidateUserExists(ctx, req.UserID)
	if err != nil {
		return model.ReadingResult{}, err
	}

	language := req.Language
	if language == "" {
		language = user.Preferences.Language
	}
	language = model.NormalizeLanguage(language)

	now := s.now()
	admission := model.Allow()
	if req.ReadingType.Policy() != model.PolicyUnlimited {
		admission = s.quota.Admit(user, req.ReadingType, now)
	}

	if !admission.Allowed {
		return s.serveDenied(ctx, user, req.ReadingType, admission)
	}

	key := s.cache.PeriodKey(user, req.ReadingType, language, now)

	leader := false
	ch := s.inflight.DoChan(key.String(), func() (any, error) {
		leader = true
		return s.resolve(context.WithoutCancel(ctx), user, key, req.Inputs, now)
	})

	select {
	case <-ctx.Done():
		return model.ReadingResult{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return model.ReadingResult{}, res.Err
		}
		result := res.Val.(model.ReadingResult)
		if !leader && !result.IsFallback {
			result.Cached = true
			s.metrics.Served(req.ReadingType, metrics.OutcomeCached)
			s.recordHistory(ctx, user.ID, key.Bucket, result)
		}
		return result, nil
	}
}

func (s *Reading) serveDenied(ctx context.Context, user model.User, readingType model.ReadingType, admission model.Admission) (model.ReadingResult, error) {
	artifact, ok, err := s.cache.LookupMostRecent(ctx, user.ID, readingType)
	if err != nil {
		return model.ReadingResult{}, err
	}
	if !ok {
		s.metrics.Served(readingType, metrics.OutcomeDenied)
		return model.ReadingResult{}, &model.QuotaExceededError{ReadingType: readingType, RetryAfter: admission.RetryAfter}
	}

	s.logger.Debug("Reading service: quota exhausted, serving most recent reading",
		"user_id", user.ID,
		"reading_type", readingType,
		"retry_after", admission.RetryAfter,
	)
	s.metrics.Served(readingType, metrics.OutcomeCached)

	result := resultFromArtifact(artifact, true)
	s.recordHistory(ctx, user.ID, artifact.Key.Bucket, result)
	return result, nil
}

// resolve runs once per period key across concurrent callers.
func (s *Reading) resolve(ctx context.Context, user model.User, key model.PeriodKey, inputs model.TemplateInputs, now time.Time) (model.ReadingResult, error) {
	artifact, ok, err := s.cache.Lookup(ctx, key)
	if err != nil {
		return model.ReadingResult{}, err
	}
	if ok {
		s.reconcileQuota(ctx, artifact)
		s.metrics.Served(key.ReadingType, metrics.OutcomeCached)
		result := resultFromArtifact(artifact, true)
		s.recordHistory(ctx, user.ID, key.Bucket, result)
		return result, nil
	}

	payload, err := s.generate(ctx, model.GenerationRequest{
		ReadingType: key.ReadingType,
		Language:    key.Language,
		Profile:     user,
		Inputs:      inputs,
		Now:         now,
	})
	if err != nil {
		s.logger.Warn("Reading service: generation failed, serving fallback",
			"user_id", user.ID,
			"reading_type", key.ReadingType,
			"error", err,
		)
		s.metrics.Served(key.ReadingType, metrics.OutcomeFallback)
		return model.ReadingResult{
			Payload:     s.fallbacks.Fallback(key.ReadingType, key.Language),
			ReadingType: key.ReadingType,
			Language:    key.Language,
			GeneratedAt: now,
			IsFallback:  true,
		}, nil
	}

	fresh := model.Artifact{
		ID:          uuid.New(),
		Key:         key,
		Payload:     payload,
		GeneratedAt: now,
	}

	committed, err := s.cache.Store(ctx, fresh)
	switch {
	case errors.Is(err, model.ErrStoreConflict):
		s.logger.Info("Reading service: lost store race, serving committed reading",
			"key", key.String(),
		)
		s.reconcileQuota(ctx, committed)
		s.metrics.Served(key.ReadingType, metrics.OutcomeConflict)
		result := resultFromArtifact(committed, true)
		s.recordHistory(ctx, user.ID, key.Bucket, result)
		return result, nil
	case err != nil:
		// Nothing was committed, so the quota stays untouched and the next
		// request regenerates.
		s.logger.Error("Reading service: failed to store reading",
			"key", key.String(),
			"error", err,
		)
		s.metrics.Served(key.ReadingType, metrics.OutcomeGenerated)
		result := resultFromArtifact(fresh, false)
		s.recordHistory(ctx, user.ID, key.Bucket, result)
		return result, nil
	}

	if err := s.quota.MarkConsumed(ctx, key, committed.GeneratedAt); err != nil {
		s.logger.Error("Reading service: failed to mark consumption",
			"key", key.String(),
			"error", err,
		)
	}

	s.metrics.Served(key.ReadingType, metrics.OutcomeGenerated)
	result := resultFromArtifact(committed, false)
	s.recordHistory(ctx, user.ID, key.Bucket, result)
	return result, nil
}

// reconcileQuota marks consumption for an artifact committed by another request.
// The user store ignores marks that would move the state backwards.
func (s *Reading) reconcileQuota(ctx context.Context, artifact model.Artifact) {
	if artifact.Key.ReadingType.Policy() == model.PolicyUnlimited {
		return
	}
	if err := s.quota.MarkConsumed(ctx, artifact.Key, artifact.GeneratedAt); err != nil {
		s.logger.Error("Reading service: failed to reconcile consumption",
			"key", artifact.Key.String(),
			"error", err,
		)
	}
}

func (s *Reading) generate(ctx context.Context, req model.GenerationRequest) (model.Payload, error) {
	ctx, span := s.tracer.Start(ctx, "Reading.generate")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.opts.GenerationTimeout)
	defer cancel()

	started := time.Now()
	defer func() {
		s.metrics.ObserveGeneration(req.ReadingType, time.Since(started))
	}()

	var payload model.Payload
	operation := func() error {
		p, err := s.generator.Generate(ctx, req)
		if err == nil {
			payload = p
			return nil
		}
		var genErr *model.GenerationError
		if errors.As(err, &genErr) && genErr.Retryable() {
			return err
		}
		return backoff.Permanent(err)
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = s.opts.InitialBackoff
	eb.MaxElapsedTime = s.opts.GenerationTimeout
	b := backoff.WithContext(backoff.WithMaxRetries(eb, s.opts.MaxRetries), ctx)

	err := backoff.RetryNotify(operation, b, func(err error, next time.Duration) {
		s.logger.Warn("Reading service: generation attempt failed, retrying",
			"reading_type", req.ReadingType,
			"next_attempt_in", next,
			"error", err,
		)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return model.Payload{}, fmt.Errorf("failed to generate reading: %w", err)
	}
	return payload, nil
}

func (s *Reading) recordHistory(ctx context.Context, userID, bucket string, result model.ReadingResult) {
	if result.IsFallback || len(s.sinks) == 0 {
		return
	}

	entry := model.HistoryEntry{
		ID:          uuid.New(),
		UserID:      userID,
		ReadingType: result.ReadingType,
		Language:    result.Language,
		Bucket:      bucket,
		Payload:     result.Payload,
		Cached:      result.Cached,
		CreatedAt:   s.now(),
	}

	detached := context.WithoutCancel(ctx)
	for _, sink := range s.sinks {
		s.pending.Add(1)
		go func() {
			defer s.pending.Done()

			ctx, cancel := context.WithTimeout(detached, s.opts.HistoryTimeout)
			defer cancel()

			if err := sink.Append(ctx, entry); err != nil {
				s.logger.Warn("Reading service: failed to record history",
					"sink", sink.Name(),
					"user_id", userID,
					"error", err,
				)
				s.metrics.HistoryFailed(sink.Name())
			}
		}()
	}
}

// Wait blocks until pending history writes finish.
func (s *Reading) Wait() {
	s.pending.Wait()
}

// History lists the user's served readings, newest first.
func (s *Reading) History(ctx context.Context, userID string, readingType model.ReadingType, limit uint64) ([]model.HistoryEntry, error) {
	if readingType != "" {
		if _, err := model.ParseReadingType(string(readingType)); err != nil {
			return nil, &model.ValidationError{Kind: model.ErrInvalidArgument, Detail: err.Error()}
		}
	}

	if _, err := s.gate.ValidateUserExists(ctx, userID); err != nil {
		return nil, err
	}

	entries, err := s.history.List(ctx, userID, readingType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, nil
}

func resultFromArtifact(artifact model.Artifact, cached bool) model.ReadingResult {
	return model.ReadingResult{
		Payload:     artifact.Payload,
		ReadingType: artifact.Key.ReadingType,
		Language:    artifact.Key.Language,
		GeneratedAt: artifact.GeneratedAt,
		Cached:      cached,
	}
}
