package handler

import (
	"time"

	"github.com/dtroode/neoarcana-server/internal/model"
)

type verifyPosterRequest struct {
	Code string `json:"code"`
}

type posterStatusResponse struct {
	Code       string `json:"code"`
	Valid      bool   `json:"valid"`
	Registered bool   `json:"registered"`
}

type registerRequest struct {
	PosterCode  string            `json:"posterCode"`
	Name        string            `json:"name"`
	DateOfBirth string            `json:"dateOfBirth"`
	ZodiacSign  string            `json:"zodiacSign"`
	Preferences model.Preferences `json:"preferences"`
}

type userResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	DateOfBirth string            `json:"dateOfBirth"`
	ZodiacSign  string            `json:"zodiacSign"`
	Preferences model.Preferences `json:"preferences"`
}

type registerResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type updatePreferencesRequest struct {
	Name      *string        `json:"name"`
	Language  *string        `json:"language"`
	Gender    *string        `json:"gender"`
	Color     *model.Color   `json:"color"`
	Interests []string       `json:"interests"`
	Numbers   *model.Numbers `json:"numbers"`
}

type readingRequest struct {
	ReadingType string            `json:"readingType"`
	Language    string            `json:"language"`
	Question    string            `json:"question"`
	Extra       map[string]string `json:"extra"`
}

type readingResponse struct {
	Reading     model.Payload `json:"reading"`
	ReadingType string        `json:"readingType"`
	Language    string        `json:"language"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Cached      bool          `json:"cached"`
	IsFallback  bool          `json:"isFallback"`
}

type listHistoryRequest struct {
	ReadingType string `json:"readingType"`
	Limit       uint64 `json:"limit"`
}

type historyEntryResponse struct {
	ID          string        `json:"id"`
	ReadingType string        `json:"readingType"`
	Language    string        `json:"language"`
	Period      string        `json:"period"`
	Reading     model.Payload `json:"reading"`
	Cached      bool          `json:"cached"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type listHistoryResponse struct {
	Entries []historyEntryResponse `json:"entries"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Name:        u.Name,
		DateOfBirth: u.DateOfBirth,
		ZodiacSign:  u.ZodiacSign,
		Preferences: u.Preferences,
	}
}
