package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dtroode/neoarcana-server/internal/logger"
	"github.com/dtroode/neoarcana-server/internal/model"
)

const (
	maxNameLength     = 100
	maxGenderLength   = 32
	maxInterests      = 10
	maxInterestLength = 50
)

// Registration binds poster codes to new users and manages their profiles.
type Registration struct {
	gate    *Gate
	posters model.PosterStore
	users   model.UserStore
	tokens  model.TokenManager
	logger  *logger.Logger
	now     func() time.Time
}

func NewRegistration(
	gate *Gate,
	posters model.PosterStore,
	users model.UserStore,
	tokens model.TokenManager,
	logger *logger.Logger,
) *Registration {
	return &Registration{
		gate:    gate,
		posters: posters,
		users:   users,
		tokens:  tokens,
		logger:  logger,
		now:     time.Now,
	}
}

// VerifyPoster reports whether code can be used to register. Unknown and
// consumed codes are reported in the status rather than as errors.
func (s *Registration) VerifyPoster(ctx context.Context, code string) (model.PosterStatus, error) {
	code = strings.TrimSpace(code)
	status := model.PosterStatus{Code: code}

	_, err := s.gate.ValidateForRegistration(ctx, code)
	switch {
	case err == nil:
		status.Valid = true
	case errors.Is(err, model.ErrAlreadyRegistered):
		status.Registered = true
	case errors.Is(err, model.ErrInvalidCode):
	default:
		return model.PosterStatus{}, err
	}
	return status, nil
}

// Register creates the user bound to the poster and issues a session token.
func (s *Registration) Register(ctx context.Context, params model.RegisterParams) (model.RegisterResult, error) {
	info, err := s.gate.ValidateForRegistration(ctx, params.PosterCode)
	if err != nil {
		return model.RegisterResult{}, err
	}

	user := model.User{
		ID:                   info.NFCID,
		PosterCode:           info.Code,
		Name:                 strings.TrimSpace(params.Name),
		DateOfBirth:          strings.TrimSpace(params.DateOfBirth),
		ZodiacSign:           canonicalZodiacSign(params.ZodiacSign),
		Preferences:          params.Preferences,
		RegistrationComplete: true,
	}
	user.Preferences.Language = model.NormalizeLanguage(user.Preferences.Language)

	if err := s.validateProfile(user); err != nil {
		return model.RegisterResult{}, err
	}

	created, err := s.posters.Register(ctx, info.Code, user)
	switch {
	case errors.Is(err, model.ErrAlreadyRegistered):
		return model.RegisterResult{}, &model.ValidationError{Kind: model.ErrAlreadyRegistered}
	case errors.Is(err, model.ErrInvalidCode):
		return model.RegisterResult{}, &model.ValidationError{Kind: model.ErrInvalidCode}
	case err != nil:
		return model.RegisterResult{}, fmt.Errorf("failed to register poster: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(created.ID)
	if err != nil {
		return model.RegisterResult{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.logger.Info("Registration service: user registered",
		"user_id", created.ID,
		"poster_code", info.Code,
	)

	return model.RegisterResult{User: created, Token: token}, nil
}

// UpdatePreferences applies the non-nil fields of update to the user's profile.
func (s *Registration) UpdatePreferences(ctx context.Context, userID string, update model.PreferencesUpdate) (model.User, error) {
	user, err := s.gate.ValidateUserExists(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	if update.Name != nil {
		user.Name = strings.TrimSpace(*update.Name)
	}
	if update.Language != nil {
		user.Preferences.Language = model.NormalizeLanguage(*update.Language)
	}
	if update.Gender != nil {
		user.Preferences.Gender = strings.TrimSpace(*update.Gender)
	}
	if update.Color != nil {
		user.Preferences.Color = *update.Color
	}
	if update.Interests != nil {
		user.Preferences.Interests = update.Interests
	}
	if update.Numbers != nil {
		user.Preferences.Numbers = *update.Numbers
	}

	if err := s.validateProfile(user); err != nil {
		return model.User{}, err
	}

	err = s.users.UpdateProfile(ctx, user)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, &model.ValidationError{Kind: model.ErrUserNotFound, Detail: userID}
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

func (s *Registration) validateProfile(user model.User) error {
	invalid := func(detail string) error {
		return &model.ValidationError{Kind: model.ErrInvalidArgument, Detail: detail}
	}

	if n := utf8.RuneCountInString(user.Name); n == 0 || n > maxNameLength {
		return invalid("name must be between 1 and 100 characters")
	}

	dob, err := time.Parse(time.DateOnly, user.DateOfBirth)
	if err != nil {
		return invalid("date of birth must be YYYY-MM-DD")
	}
	if dob.After(s.now()) {
		return invalid("date of birth is in the future")
	}

	if !model.IsZodiacSign(user.ZodiacSign) {
		return invalid("unknown zodiac sign")
	}

	if utf8.RuneCountInString(user.Preferences.Gender) > maxGenderLength {
		return invalid("gender is too long")
	}
	if len(user.Preferences.Interests) > maxInterests {
		return invalid("too many interests")
	}
	for _, interest := range user.Preferences.Interests {
		if n := utf8.RuneCountInString(strings.TrimSpace(interest)); n == 0 || n > maxInterestLength {
			return invalid("interest must be between 1 and 50 characters")
		}
	}

	return nil
}

func canonicalZodiacSign(sign string) string {
	sign = strings.TrimSpace(sign)
	for _, s := range model.ZodiacSigns {
		if strings.EqualFold(s, sign) {
			return s
		}
	}
	return sign
}
