package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUserRepository(t *testing.T) {
	db := &Connection{}
	repo := NewUserRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestNewPosterRepository(t *testing.T) {
	db := &Connection{}
	repo := NewPosterRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestNewArtifactRepository(t *testing.T) {
	db := &Connection{}
	repo := NewArtifactRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}
