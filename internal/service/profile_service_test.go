package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_CurrentFallsBackToEmail(t *testing.T) {
	store, _ := setupStore(t)
	svc := NewProfileService(store.Profiles, testOptions(newTestClock())...)

	p, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testAuthor, p.Email)
	assert.Equal(t, "anna", p.DisplayText())
}

func TestProfileService_SetDisplayName(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	clock := newTestClock()
	svc := NewProfileService(store.Profiles, testOptions(clock)...)

	p, err := svc.SetDisplayName(ctx, "  Anna Nowak ")
	require.NoError(t, err)
	assert.Equal(t, "Anna Nowak", p.DisplayText())
	created := p.CreatedAt

	clock.advance(24 * time.Hour)
	p, err = svc.SetDisplayName(ctx, "Anna N.")
	require.NoError(t, err)
	assert.Equal(t, "Anna N.", p.DisplayName)
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, "2025-06-11T09:30:00.000Z", p.UpdatedAt)

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Anna N.", current.DisplayName)
}

func TestProfileService_RequiresAuthor(t *testing.T) {
	store, _ := setupStore(t)
	svc := NewProfileService(store.Profiles)

	_, err := svc.Current(context.Background())
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.SetDisplayName(context.Background(), "x")
	assert.ErrorIs(t, err, ErrValidation)
}
