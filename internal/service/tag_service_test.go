package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/alexanderramin/crmsheet/internal/repository"
	"github.com/alexanderramin/crmsheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagService_Create_PaletteAndUniqueness(t *testing.T) {
	store, tx := setupStore(t)
	ctx := context.Background()
	svc := NewTagService(store, tx, testOptions(newTestClock())...)

	first := &domain.Tag{Kind: domain.KindCompany, Name: "VIP"}
	second := &domain.Tag{Kind: domain.KindCompany, Name: "Partner"}
	custom := &domain.Tag{Kind: domain.KindCompany, Name: "Cold", Color: "#000000"}
	for _, tag := range []*domain.Tag{first, second, custom} {
		require.NoError(t, svc.Create(ctx, tag))
	}
	assert.Equal(t, domain.TagPalette[0], first.Color)
	assert.Equal(t, domain.TagPalette[1], second.Color)
	assert.Equal(t, "#000000", custom.Color)
	assert.Equal(t, testAuthor, first.CreatedBy)

	err := svc.Create(ctx, &domain.Tag{Kind: domain.KindCompany, Name: "vip"})
	assert.ErrorIs(t, err, ErrValidation)

	// Names are per kind.
	require.NoError(t, svc.Create(ctx, &domain.Tag{Kind: domain.KindContact, Name: "VIP"}))

	assert.ErrorIs(t, svc.Create(ctx, &domain.Tag{Kind: "deal", Name: "x"}), ErrValidation)
	assert.ErrorIs(t, svc.Create(ctx, &domain.Tag{Kind: domain.KindContact, Name: " "}), ErrValidation)

	list, err := svc.ListByKind(ctx, domain.KindCompany)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestTagService_RejectsNilTag(t *testing.T) {
	store, tx := setupStore(t)
	svc := NewTagService(store, tx, testOptions(newTestClock())...)

	assert.ErrorIs(t, svc.Create(context.Background(), nil), ErrValidation)
	assert.ErrorIs(t, svc.Update(context.Background(), nil), ErrValidation)
}

func TestTagService_Update(t *testing.T) {
	store, tx := setupStore(t)
	ctx := context.Background()
	svc := NewTagService(store, tx, testOptions(newTestClock())...)

	a := &domain.Tag{Kind: domain.KindContact, Name: "Lead"}
	b := &domain.Tag{Kind: domain.KindContact, Name: "Customer"}
	require.NoError(t, svc.Create(ctx, a))
	require.NoError(t, svc.Create(ctx, b))

	err := svc.Update(ctx, &domain.Tag{ID: b.ID, Name: "LEAD"})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.Update(ctx, &domain.Tag{ID: b.ID, Name: "Client", Kind: domain.KindCompany}))
	got, err := svc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Client", got.Name)
	assert.Equal(t, domain.KindContact, got.Kind, "kind is fixed at creation")
	assert.Equal(t, b.Color, got.Color)
}

func TestTagService_AssignUnassignDelete(t *testing.T) {
	store, tx := setupStore(t)
	ctx := context.Background()
	svc := NewTagService(store, tx, testOptions(newTestClock())...)

	acme := testutil.NewTestCompany("Acme")
	beta := testutil.NewTestCompany("Beta")
	jan := testutil.NewTestContact("Jan")
	require.NoError(t, store.Companies.Create(ctx, acme))
	require.NoError(t, store.Companies.Create(ctx, beta))
	require.NoError(t, store.Contacts.Create(ctx, jan))

	vip := &domain.Tag{Kind: domain.KindCompany, Name: "VIP"}
	require.NoError(t, svc.Create(ctx, vip))

	acmeRef := domain.CompanyRef(acme.ID)
	require.NoError(t, svc.Assign(ctx, acmeRef, vip.ID))
	require.NoError(t, svc.Assign(ctx, acmeRef, vip.ID), "assigning twice is a no-op")
	require.NoError(t, svc.Assign(ctx, domain.CompanyRef(beta.ID), vip.ID))

	assert.ErrorIs(t, svc.Assign(ctx, domain.ContactRef(jan.ID), vip.ID), ErrValidation)
	assert.ErrorIs(t, svc.Assign(ctx, domain.CompanyRef("missing"), vip.ID), repository.ErrNotFound)
	assert.ErrorIs(t, svc.Assign(ctx, acmeRef, "missing"), repository.ErrNotFound)

	tags, err := svc.TagsOf(ctx, acmeRef)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "VIP", tags[0].Name)

	refs, err := svc.EntitiesWithTag(ctx, vip.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.EntityRef{acmeRef, domain.CompanyRef(beta.ID)}, refs)

	require.NoError(t, svc.Unassign(ctx, acmeRef, vip.ID))
	assert.ErrorIs(t, svc.Unassign(ctx, acmeRef, vip.ID), repository.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, vip.ID))
	refs, err = svc.EntitiesWithTag(ctx, vip.ID)
	require.NoError(t, err)
	assert.Empty(t, refs)
	_, err = svc.GetByID(ctx, vip.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, vip.ID), repository.ErrNotFound)
}
