package sheets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/alexanderramin/crmsheet/internal/repository"
)

var header = []string{"header"}

func TestStore_CompanyLifecycle(t *testing.T) {
	fake, client := newFakeSheets(t)
	fake.seed("Companies", header)
	store := NewStore(client, testNames(), 0)
	ctx := context.Background()

	acme := &domain.Company{ID: "c1", Name: "Acme", Website: "https://acme.com", Domain: "acme.com"}
	beta := &domain.Company{ID: "c2", Name: "Beta"}
	require.NoError(t, store.Companies.Create(ctx, acme))
	require.NoError(t, store.Companies.Create(ctx, beta))

	assert.Equal(t, []string{"c1", "Acme", "", "", "https://acme.com", "", "", "", "acme.com"}, fake.rows("Companies")[1])

	acme.City = "Warszawa"
	require.NoError(t, store.Companies.Update(ctx, acme))
	got, err := store.Companies.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Warszawa", got.City)

	require.NoError(t, store.Companies.Delete(ctx, "c1"))
	list, err := store.Companies.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "c2", list[0].ID)

	// Beta keeps its row after the delete; positions never shift.
	beta.Notes = "still row 3"
	require.NoError(t, store.Companies.Update(ctx, beta))
	assert.Equal(t, "still row 3", fake.rows("Companies")[2][3])

	_, err = store.Companies.GetByID(ctx, "c1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, store.Companies.Delete(ctx, "c1"), repository.ErrNotFound)
}

func TestStore_SkipsRowsWithoutKeyColumn(t *testing.T) {
	fake, client := newFakeSheets(t)
	fake.seed("Companies",
		header,
		[]string{"c1", "Acme"},
		[]string{"c2", ""},
		[]string{"", "Typed By Hand", "Retail"},
	)
	store := NewStore(client, testNames(), 0)
	ctx := context.Background()

	list, err := store.Companies.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Acme", list[0].Name)
	assert.Equal(t, "row-4", list[1].ID)

	// Updating the id-less row writes the synthetic id back.
	list[1].Industry = "Wholesale"
	require.NoError(t, store.Companies.Update(ctx, list[1]))
	assert.Equal(t, "row-4", fake.rows("Companies")[3][0])
	assert.Equal(t, "Wholesale", fake.rows("Companies")[3][2])
}

func TestStore_CacheServesRepeatedReads(t *testing.T) {
	fake, client := newFakeSheets(t)
	fake.seed("Contacts", header, []string{"p1", "", "Jan"})
	store := NewStore(client, testNames(), time.Minute)
	ctx := context.Background()

	_, err := store.Contacts.List(ctx)
	require.NoError(t, err)
	_, err = store.Contacts.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, fake.count("GET"))

	require.NoError(t, store.Contacts.Create(ctx, &domain.Contact{ID: "p2", Name: "Anna"}))
	list, err := store.Contacts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, fake.count("GET"))
}

func TestStore_CacheExpires(t *testing.T) {
	fake, client := newFakeSheets(t)
	fake.seed("Contacts", header, []string{"p1", "", "Jan"})
	store := NewStore(client, testNames(), 20*time.Millisecond)
	ctx := context.Background()

	_, err := store.Contacts.List(ctx)
	require.NoError(t, err)
	time.Sleep(60 * time.Millisecond)
	_, err = store.Contacts.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, fake.count("GET"))
}

func TestStore_ContactsAndActivitiesByEntity(t *testing.T) {
	fake, client := newFakeSheets(t)
	fake.seed("Contacts", header)
	fake.seed("Activities", header)
	store := NewStore(client, testNames(), 0)
	ctx := context.Background()

	require.NoError(t, store.Contacts.Create(ctx, &domain.Contact{ID: "p1", CompanyID: "c1", Name: "Jan"}))
	require.NoError(t, store.Contacts.Create(ctx, &domain.Contact{ID: "p2", Name: "Loose"}))

	byCompany, err := store.Contacts.ListByCompany(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, byCompany, 1)
	assert.Equal(t, "p1", byCompany[0].ID)

	a := &domain.Activity{ID: "a1", Type: domain.ActivityPhone, Title: "Call", Date: "2025-06-01T10:00:00.000Z",
		CompanyID: "c1", ContactID: "p1", Status: domain.ActivityPlanned}
	require.NoError(t, store.Activities.Create(ctx, a))
	require.NoError(t, a.Complete(time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)))
	require.NoError(t, store.Activities.Update(ctx, a))

	acts, err := store.Activities.ListByEntity(ctx, domain.ContactRef("p1"))
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, domain.ActivityCompleted, acts[0].Status)
	assert.Equal(t, "2025-06-01T11:00:00.000Z", acts[0].CompletedAt)

	require.NoError(t, store.Activities.Delete(ctx, "a1"))
	all, err := store.Activities.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_HistorySplitsByKind(t *testing.T) {
	fake, client := newFakeSheets(t)
	fake.seed("CompanyHistory", header)
	fake.seed("ContactHistory", header)
	store := NewStore(client, testNames(), 0)
	ctx := context.Background()

	require.NoError(t, store.History.Create(ctx, &domain.HistoryEntry{
		ID: "h1", Entity: domain.CompanyRef("x1"), Type: domain.HistoryNote, Timestamp: "2025-01-01T00:00:00.000Z", Content: "company note",
	}))
	require.NoError(t, store.History.Create(ctx, &domain.HistoryEntry{
		ID: "h2", Entity: domain.ContactRef("x1"), Type: domain.HistoryEvent, Timestamp: "2025-01-02T00:00:00.000Z", Content: "contact event",
	}))

	assert.Len(t, fake.rows("CompanyHistory"), 2)
	assert.Len(t, fake.rows("ContactHistory"), 2)

	entries, err := store.History.ListByEntity(ctx, domain.CompanyRef("x1"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "company note", entries[0].Content)
	assert.Equal(t, domain.CompanyRef("x1"), entries[0].Entity)

	contactEntries, err := store.History.ListByKind(ctx, domain.KindContact)
	require.NoError(t, err)
	require.Len(t, contactEntries, 1)
	assert.Equal(t, domain.HistoryEvent, contactEntries[0].Type)
}

func TestStore_HistoryTypeDefaultsToEvent(t *testing.T) {
	fake, client := newFakeSheets(t)
	fake.seed("CompanyHistory", header, []string{"h1", "c1", "", "2025-01-01"})
	store := NewStore(client, testNames(), 0)

	entries, err := store.History.ListByEntity(context.Background(), domain.CompanyRef("c1"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.HistoryEvent, entries[0].Type)
}

func TestStore_TagsAndAssignments(t *testing.T) {
	fake, client := newFakeSheets(t)
	fake.seed("CompanyTags", header)
	fake.seed("ContactTags", header)
	fake.seed("CompanyTagRelations", header)
	store := NewStore(client, testNames(), time.Minute)
	ctx := context.Background()

	vip := &domain.Tag{ID: "t1", Kind: domain.KindCompany, Name: "VIP", Color: "#ef4444"}
	lead := &domain.Tag{ID: "t2", Kind: domain.KindContact, Name: "Lead"}
	require.NoError(t, store.Tags.Create(ctx, vip))
	require.NoError(t, store.Tags.Create(ctx, lead))

	got, err := store.Tags.GetByID(ctx, "t2")
	require.NoError(t, err)
	assert.Equal(t, domain.KindContact, got.Kind)
	assert.Equal(t, domain.DefaultTagColor, got.Color)

	ref := domain.CompanyRef("c1")
	require.NoError(t, store.TagAssignments.Create(ctx, &domain.TagAssignment{ID: "r1", Entity: ref, TagID: "t1"}))
	require.NoError(t, store.TagAssignments.Create(ctx, &domain.TagAssignment{ID: "r2", Entity: ref, TagID: "t1"}))
	require.NoError(t, store.TagAssignments.Create(ctx, &domain.TagAssignment{ID: "r3", Entity: domain.CompanyRef("c2"), TagID: "t1"}))

	list, err := store.TagAssignments.ListByEntity(ctx, ref)
	require.NoError(t, err)
	require.Len(t, list, 1)

	byTag, err := store.TagAssignments.ListByTag(ctx, "t1")
	require.NoError(t, err)
	assert.Len(t, byTag, 2)

	require.NoError(t, store.TagAssignments.Delete(ctx, ref, "t1"))
	assert.ErrorIs(t, store.TagAssignments.Delete(ctx, ref, "t1"), repository.ErrNotFound)

	require.NoError(t, store.TagAssignments.DeleteByTag(ctx, "t1"))
	byTag, err = store.TagAssignments.ListByTag(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, byTag)

	vip.Name = "Key account"
	require.NoError(t, store.Tags.Update(ctx, vip))
	tags, err := store.Tags.ListByKind(ctx, domain.KindCompany)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "Key account", tags[0].Name)

	require.NoError(t, store.Tags.Delete(ctx, "t1"))
	_, err = store.Tags.GetByID(ctx, "t1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_ProfileUpsertKeepsCreatedAt(t *testing.T) {
	fake, client := newFakeSheets(t)
	fake.seed("UserPreferences", header)
	store := NewStore(client, testNames(), 0)
	ctx := context.Background()

	require.NoError(t, store.Profiles.Upsert(ctx, &domain.UserProfile{
		Email: "anna@example.com", DisplayName: "Anna", CreatedAt: "2025-01-01T00:00:00.000Z", UpdatedAt: "2025-01-01T00:00:00.000Z",
	}))
	require.NoError(t, store.Profiles.Upsert(ctx, &domain.UserProfile{
		Email: "Anna@Example.com", DisplayName: "Anna N.", CreatedAt: "2025-02-01T00:00:00.000Z", UpdatedAt: "2025-02-01T00:00:00.000Z",
	}))

	assert.Len(t, fake.rows("UserPreferences"), 2)
	p, err := store.Profiles.Get(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Anna N.", p.DisplayName)
	assert.Equal(t, "2025-01-01T00:00:00.000Z", p.CreatedAt)
	assert.Equal(t, "2025-02-01T00:00:00.000Z", p.UpdatedAt)

	_, err = store.Profiles.Get(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTransactor_RunsAgainstStore(t *testing.T) {
	fake, client := newFakeSheets(t)
	fake.seed("Companies", header)
	store := NewStore(client, testNames(), 0)
	tx := Transactor{Store: store}

	called := false
	err := tx.WithinTx(context.Background(), func(ctx context.Context, s repository.Store) error {
		called = true
		return s.Companies.Create(ctx, &domain.Company{ID: "c1", Name: "Acme"})
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "Acme", fake.rows("Companies")[1][1])
}
