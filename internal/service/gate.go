package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dtroode/neoarcana-server/internal/logger"
	"github.com/dtroode/neoarcana-server/internal/model"
)

var posterCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{4,32}$`)

// Gate checks poster codes and user existence before any state changes.
type Gate struct {
	posters model.PosterStore
	users   model.UserStore
	logger  *logger.Logger
}

func NewGate(posters model.PosterStore, users model.UserStore, logger *logger.Logger) *Gate {
	return &Gate{
		posters: posters,
		users:   users,
		logger:  logger,
	}
}

// ValidateForRegistration returns the poster identity if code can still be registered.
func (g *Gate) ValidateForRegistration(ctx context.Context, code string) (model.PosterInfo, error) {
	code = strings.TrimSpace(code)
	if !posterCodePattern.MatchString(code) {
		return model.PosterInfo{}, &model.ValidationError{Kind: model.ErrInvalidCode, Detail: "malformed code"}
	}

	poster, err := g.posters.GetByCode(ctx, code)
	if errors.Is(err, model.ErrNotFound) {
		return model.PosterInfo{}, &model.ValidationError{Kind: model.ErrInvalidCode}
	}
	if err != nil {
		return model.PosterInfo{}, fmt.Errorf("failed to get poster: %w", err)
	}

	if poster.Registered {
		g.logger.Debug("Gate service: poster already registered", "code", code)
		return model.PosterInfo{}, &model.ValidationError{Kind: model.ErrAlreadyRegistered}
	}

	nfcID := poster.NFCID
	if nfcID == "" {
		nfcID = "nfc_" + code
	}

	return model.PosterInfo{Code: code, NFCID: nfcID}, nil
}

// ValidateUserExists loads the user or fails with ErrUserNotFound.
func (g *Gate) ValidateUserExists(ctx context.Context, userID string) (model.User, error) {
	if userID == "" {
		return model.User{}, &model.ValidationError{Kind: model.ErrUserNotFound}
	}

	user, err := g.users.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, &model.ValidationError{Kind: model.ErrUserNotFound, Detail: userID}
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}
