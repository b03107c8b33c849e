package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/neoarcana-server/internal/api/grpc/rpc"
	"github.com/dtroode/neoarcana-server/internal/logger"
	"github.com/dtroode/neoarcana-server/internal/model"
)

// ReadingService serves readings and reading history.
type ReadingService interface {
	GetReading(ctx context.Context, req model.ReadingRequest) (model.ReadingResult, error)
	History(ctx context.Context, userID string, readingType model.ReadingType, limit uint64) ([]model.HistoryEntry, error)
}

// RegistrationService manages poster registration and profiles.
type RegistrationService interface {
	VerifyPoster(ctx context.Context, code string) (model.PosterStatus, error)
	Register(ctx context.Context, params model.RegisterParams) (model.RegisterResult, error)
	UpdatePreferences(ctx context.Context, userID string, update model.PreferencesUpdate) (model.User, error)
}

var _ rpc.ReadingsServer = (*Readings)(nil)

// Readings handles gRPC endpoints of the Readings service.
type Readings struct {
	readingService      ReadingService
	registrationService RegistrationService
	contextManager      model.ContextManager
	logger              *logger.Logger
}

// NewReadings creates a new Readings handler.
func NewReadings(
	readingService ReadingService,
	registrationService RegistrationService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Readings {
	return &Readings{
		readingService:      readingService,
		registrationService: registrationService,
		contextManager:      contextManager,
		logger:              logger,
	}
}

func (h *Readings) VerifyPoster(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req verifyPosterRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	st, err := h.registrationService.VerifyPoster(ctx, req.Code)
	if err != nil {
		h.logger.Error("Readings handler: verify poster failed", "error", err.Error())
		return nil, handleError(err)
	}

	return encode(posterStatusResponse{Code: st.Code, Valid: st.Valid, Registered: st.Registered})
}

func (h *Readings) Register(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req registerRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	h.logger.Debug("Readings handler: processing registration", "poster_code", req.PosterCode)

	res, err := h.registrationService.Register(ctx, model.RegisterParams{
		PosterCode:  req.PosterCode,
		Name:        req.Name,
		DateOfBirth: req.DateOfBirth,
		ZodiacSign:  req.ZodiacSign,
		Preferences: req.Preferences,
	})
	if err != nil {
		h.logger.Info("Readings handler: registration rejected",
			"poster_code", req.PosterCode,
			"error", err.Error())
		return nil, handleError(err)
	}

	return encode(registerResponse{Token: res.Token, User: toUserResponse(res.User)})
}

func (h *Readings) UpdatePreferences(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}

	var req updatePreferencesRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	user, err := h.registrationService.UpdatePreferences(ctx, userID, model.PreferencesUpdate{
		Name:      req.Name,
		Language:  req.Language,
		Gender:    req.Gender,
		Color:     req.Color,
		Interests: req.Interests,
		Numbers:   req.Numbers,
	})
	if err != nil {
		h.logger.Error("Readings handler: update preferences failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return encode(toUserResponse(user))
}

func (h *Readings) GetReading(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}

	var req readingRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	readingType, err := model.ParseReadingType(req.ReadingType)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	res, err := h.readingService.GetReading(ctx, model.ReadingRequest{
		UserID:      userID,
		ReadingType: readingType,
		Language:    req.Language,
		Inputs: model.TemplateInputs{
			Question: req.Question,
			Extra:    req.Extra,
		},
	})
	if err != nil {
		h.logger.Info("Readings handler: get reading failed",
			"user_id", userID,
			"reading_type", readingType,
			"error", err.Error())
		return nil, handleError(err)
	}

	return encode(readingResponse{
		Reading:     res.Payload,
		ReadingType: string(res.ReadingType),
		Language:    res.Language,
		GeneratedAt: res.GeneratedAt,
		Cached:      res.Cached,
		IsFallback:  res.IsFallback,
	})
}

func (h *Readings) ListHistory(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}

	var req listHistoryRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	entries, err := h.readingService.History(ctx, userID, model.ReadingType(req.ReadingType), req.Limit)
	if err != nil {
		h.logger.Error("Readings handler: list history failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	resp := listHistoryResponse{Entries: make([]historyEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, historyEntryResponse{
			ID:          e.ID.String(),
			ReadingType: string(e.ReadingType),
			Language:    e.Language,
			Period:      e.Bucket,
			Reading:     e.Payload,
			Cached:      e.Cached,
			CreatedAt:   e.CreatedAt,
		})
	}
	return encode(resp)
}

func (h *Readings) userID(ctx context.Context) (string, error) {
	userID, ok := h.contextManager.GetUserIDFromContext(ctx)
	if !ok || userID == "" {
		return "", status.Error(codes.Unauthenticated, "missing user id in context")
	}
	return userID, nil
}
