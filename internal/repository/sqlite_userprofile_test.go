package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/alexanderramin/crmsheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserProfileRepo_Get_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserProfileRepo(db)

	_, err := repo.Get(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserProfileRepo_Upsert_KeepsCreatedAt(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserProfileRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.UserProfile{
		Email:       "anna@example.com",
		DisplayName: "Anna",
		CreatedAt:   "2025-01-01T00:00:00.000Z",
		UpdatedAt:   "2025-01-01T00:00:00.000Z",
	}))
	require.NoError(t, repo.Upsert(ctx, &domain.UserProfile{
		Email:       "anna@example.com",
		DisplayName: "Anna Nowak",
		CreatedAt:   "2025-03-01T00:00:00.000Z",
		UpdatedAt:   "2025-03-01T00:00:00.000Z",
	}))

	got, err := repo.Get(ctx, "ANNA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Anna Nowak", got.DisplayName)
	assert.Equal(t, "2025-01-01T00:00:00.000Z", got.CreatedAt)
	assert.Equal(t, "2025-03-01T00:00:00.000Z", got.UpdatedAt)
}
