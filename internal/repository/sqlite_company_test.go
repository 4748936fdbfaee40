package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/crmsheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCompanyRepo(db)
	ctx := context.Background()

	c := testutil.NewTestCompany("Acme",
		testutil.WithWebsite("https://acme.com"),
		testutil.WithCompanyDomain("acme.com"),
		testutil.WithCompanyPhone("+48 123 456 789"),
		testutil.WithCity("Gdańsk"),
	)
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Name, got.Name)
	assert.Equal(t, "https://acme.com", got.Website)
	assert.Equal(t, "acme.com", got.Domain)
	assert.Equal(t, "+48 123 456 789", got.Phone)
	assert.Equal(t, "Gdańsk", got.City)
	assert.Equal(t, "PL", got.Country)
}

func TestCompanyRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCompanyRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompanyRepo_ListKeepsCreationOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCompanyRepo(db)
	ctx := context.Background()

	names := []string{"Zeta", "Alpha", "Mid"}
	for _, n := range names {
		require.NoError(t, repo.Create(ctx, testutil.NewTestCompany(n)))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, n := range names {
		assert.Equal(t, n, list[i].Name)
	}
}

func TestCompanyRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCompanyRepo(db)
	ctx := context.Background()

	c := testutil.NewTestCompany("Acme")
	require.NoError(t, repo.Create(ctx, c))

	c.Name = "Acme Renamed"
	c.Notes = "key account"
	require.NoError(t, repo.Update(ctx, c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Renamed", got.Name)
	assert.Equal(t, "key account", got.Notes)

	require.NoError(t, repo.Delete(ctx, c.ID))
	_, err = repo.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, c.ID), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, c), ErrNotFound)
}
