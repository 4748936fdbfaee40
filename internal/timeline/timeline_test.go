package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/crmsheet/internal/domain"
)

func act(id, date, companyID, contactID string) *domain.Activity {
	return &domain.Activity{
		ID: id, Type: domain.ActivityEmail, Title: id, Date: date,
		CompanyID: companyID, ContactID: contactID, Status: domain.ActivityPlanned,
	}
}

func note(id string, ref domain.EntityRef, ts string) *domain.HistoryEntry {
	return &domain.HistoryEntry{ID: id, Entity: ref, Type: domain.HistoryNote, Timestamp: ts, Content: id}
}

func event(id string, ref domain.EntityRef, ts string) *domain.HistoryEntry {
	return &domain.HistoryEntry{ID: id, Entity: ref, Type: domain.HistoryEvent, Timestamp: ts, Content: id}
}

func ids(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Activity != nil {
			out = append(out, it.Activity.ID)
		} else {
			out = append(out, it.Entry.ID)
		}
	}
	return out
}

func TestMerge_NewestFirstAcrossKinds(t *testing.T) {
	acts := []*domain.Activity{act("a1", "2024-01-02", "c1", "")}
	hist := []*domain.HistoryEntry{note("n1", domain.CompanyRef("c1"), "2024-01-03")}

	items := Merge(CompanySubject("c1"), acts, hist)

	require.Len(t, items, 2)
	assert.Equal(t, []string{"n1", "a1"}, ids(items))
	assert.Equal(t, ItemNote, items[0].Kind)
	assert.Equal(t, ItemActivity, items[1].Kind)
}

func TestMerge_ExcludesEventsAndOtherEntities(t *testing.T) {
	acts := []*domain.Activity{
		act("mine", "2024-02-01T10:00:00.000Z", "c1", ""),
		act("other", "2024-02-02T10:00:00.000Z", "c2", ""),
	}
	hist := []*domain.HistoryEntry{
		event("ev", domain.CompanyRef("c1"), "2024-02-05T10:00:00.000Z"),
		note("n-other", domain.CompanyRef("c2"), "2024-02-05T10:00:00.000Z"),
		note("n-contact", domain.ContactRef("c1"), "2024-02-05T10:00:00.000Z"),
		note("n1", domain.CompanyRef("c1"), "2024-01-30T10:00:00.000Z"),
	}

	items := Merge(CompanySubject("c1"), acts, hist)

	assert.Equal(t, []string{"mine", "n1"}, ids(items))
}

func TestMerge_EmptyInput(t *testing.T) {
	items := Merge(ContactSubject("p1"), nil, nil)
	require.NotNil(t, items)
	assert.Empty(t, items)
}

func TestMerge_TiesKeepActivitiesFirst(t *testing.T) {
	ts := "2024-03-01T09:00:00.000Z"
	acts := []*domain.Activity{act("a1", ts, "", "p1"), act("a2", ts, "", "p1")}
	hist := []*domain.HistoryEntry{note("n1", domain.ContactRef("p1"), ts)}

	items := Merge(ContactSubject("p1"), acts, hist)

	assert.Equal(t, []string{"a1", "a2", "n1"}, ids(items))
}

func TestMerge_MissingTimestampSortsLast(t *testing.T) {
	acts := []*domain.Activity{act("undated", "", "c1", "")}
	hist := []*domain.HistoryEntry{note("n1", domain.CompanyRef("c1"), "2020-01-01")}

	items := Merge(CompanySubject("c1"), acts, hist)

	assert.Equal(t, []string{"n1", "undated"}, ids(items))
}

func TestMerge_StringOrderingIsNotChronological(t *testing.T) {
	// Mixed layouts compare as strings: "2024-01-02T..." sorts after
	// "2024-01-02" even though both are the same day.
	acts := []*domain.Activity{act("short", "2024-01-02", "c1", "")}
	hist := []*domain.HistoryEntry{note("long", domain.CompanyRef("c1"), "2024-01-02T00:00:00.000Z")}

	items := Merge(CompanySubject("c1"), acts, hist)

	assert.Equal(t, []string{"long", "short"}, ids(items))
}

func TestMerge_ContactSubjectUsesContactLink(t *testing.T) {
	acts := []*domain.Activity{
		act("via-company", "2024-01-05", "p1", ""),
		act("via-contact", "2024-01-04", "c9", "p1"),
	}

	items := Merge(ContactSubject("p1"), acts, nil)

	assert.Equal(t, []string{"via-contact"}, ids(items))
}

func TestView_Scopes(t *testing.T) {
	ref := domain.CompanyRef("c1")
	acts := []*domain.Activity{act("a1", "2024-01-02", "c1", "")}
	hist := []*domain.HistoryEntry{
		note("n1", ref, "2024-01-03"),
		event("e1", ref, "2024-01-04"),
	}
	subject := CompanySubject("c1")

	tests := []struct {
		scope Scope
		want  []string
	}{
		{ScopeAll, []string{"n1", "a1"}},
		{ScopeActivities, []string{"a1"}},
		{ScopeNotes, []string{"n1"}},
		{ScopeFull, []string{"e1", "n1"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.scope), func(t *testing.T) {
			items, err := View(tt.scope, subject, acts, hist)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(items))
		})
	}

	_, err := View(Scope("bogus"), subject, acts, hist)
	assert.Error(t, err)
}

func TestView_FullTagsEvents(t *testing.T) {
	ref := domain.ContactRef("p1")
	items, err := View(ScopeFull, ContactSubject("p1"), nil, []*domain.HistoryEntry{event("e1", ref, "2024-01-01")})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, ItemEvent, items[0].Kind)
}

func TestParseScope(t *testing.T) {
	sc, err := ParseScope("notes")
	require.NoError(t, err)
	assert.Equal(t, ScopeNotes, sc)

	_, err = ParseScope("everything")
	assert.Error(t, err)
}

func TestSubjectFor(t *testing.T) {
	s, err := SubjectFor(domain.CompanyRef("c1"))
	require.NoError(t, err)
	assert.Equal(t, domain.CompanyRef("c1"), s.Ref())

	s, err = SubjectFor(domain.ContactRef("p1"))
	require.NoError(t, err)
	assert.Equal(t, domain.ContactRef("p1"), s.Ref())

	_, err = SubjectFor(domain.EntityRef{Kind: "deal", ID: "x"})
	assert.Error(t, err)

	_, err = SubjectFor(domain.CompanyRef(""))
	assert.Error(t, err)
}

func TestMergeTimeline(t *testing.T) {
	acts := []*domain.Activity{act("a1", "2024-01-02", "c1", "")}
	items, err := MergeTimeline(domain.CompanyRef("c1"), acts, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, ids(items))
}
