package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/jobtracker/internal/domain/model"
	"github.com/ericfisherdev/jobtracker/internal/domain/port/driven"
)

func TestUserRepo_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, model.User{Username: "admin", PasswordHash: "$2a$10$hash"})
	require.NoError(t, err)

	got, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, model.User{ID: id, Username: "admin", PasswordHash: "$2a$10$hash"}, *got)
}

func TestUserRepo_Create_Duplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, model.User{Username: "admin", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, model.User{Username: "admin", PasswordHash: "h2"})
	assert.ErrorIs(t, err, driven.ErrUserAlreadyExists)
}

func TestUserRepo_GetByUsername_CaseSensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, model.User{Username: "admin", PasswordHash: "h"})
	require.NoError(t, err)

	got, err := repo.GetByUsername(ctx, "Admin")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, driven.ErrUserNotFound)
}

func TestUserRepo_GetByUsername_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)

	_, err := repo.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, driven.ErrUserNotFound)
}
