package model

import (
	"context"
	"time"
)

// PosterStore defines persistence operations for poster codes.
type PosterStore interface {
	GetByCode(ctx context.Context, code string) (Poster, error)
	// Register flips the poster to registered and creates the user in one
	// transaction. Returns ErrAlreadyRegistered when the code was consumed first.
	Register(ctx context.Context, code string, user User) (User, error)
}

// Poster is a printed registration code.
type Poster struct {
	Code         string
	Registered   bool
	NFCID        string
	LinkedUserID string
	RegisteredAt *time.Time
	CreatedAt    time.Time
}

// PosterInfo is what the validation gate hands to the registration commit.
type PosterInfo struct {
	Code  string
	NFCID string
}
