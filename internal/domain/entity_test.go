package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveWebsite(t *testing.T) {
	c := &Company{Domain: "acme.com"}
	c.DeriveWebsite()
	assert.Equal(t, "https://acme.com", c.Website)

	c = &Company{Domain: "http://acme.com"}
	c.DeriveWebsite()
	assert.Equal(t, "http://acme.com", c.Website)

	c = &Company{Domain: "acme.com", Website: "https://www.acme.com/"}
	c.DeriveWebsite()
	assert.Equal(t, "https://www.acme.com/", c.Website, "explicit website is kept")

	c = &Company{}
	c.DeriveWebsite()
	assert.Empty(t, c.Website)
}

func TestCompanyMatchesSearch(t *testing.T) {
	c := &Company{Name: "Acme Sp. z o.o.", Industry: "Logistics", Notes: "Key account", City: "Kraków", Country: "PL", Phone: "+48 12 345"}

	tests := []struct {
		q    string
		want bool
	}{
		{"", true},
		{"acme", true},
		{"LOGIST", true},
		{"key acc", true},
		{"kraków", true},
		{"+48 12", true},
		{"Kraków PL", true}, // fields are joined by spaces
		{"warsaw", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.MatchesSearch(tt.q), "query %q", tt.q)
	}
}

func TestContactMatchesSearch(t *testing.T) {
	company := &Company{Name: "Acme", Industry: "Logistics", City: "Gdańsk", Country: "PL", Notes: "secret"}
	c := &Contact{Name: "Jan Kowalski", Position: "CTO", Email: "jan@acme.com", Phone: "600-100-200"}

	assert.True(t, c.MatchesSearch("kowal", nil))
	assert.True(t, c.MatchesSearch("cto", nil))
	assert.True(t, c.MatchesSearch("JAN@ACME", nil))
	assert.True(t, c.MatchesSearch("600-100", nil))
	assert.False(t, c.MatchesSearch("gdańsk", nil))

	assert.True(t, c.MatchesSearch("gdańsk", company), "company city counts")
	assert.True(t, c.MatchesSearch("logistics", company))
	assert.False(t, c.MatchesSearch("secret", company), "company notes do not count")
}

func TestEntityRefValidate(t *testing.T) {
	assert.NoError(t, CompanyRef("x").Validate())
	assert.Error(t, EntityRef{Kind: "deal", ID: "x"}.Validate())
	assert.Error(t, ContactRef(" ").Validate())
	assert.Equal(t, "contact:42", ContactRef("42").String())
}

func TestFormatTimestamp_ZeroPaddedUTC(t *testing.T) {
	warsaw := time.FixedZone("CEST", 2*60*60)
	ts := time.Date(2024, 1, 3, 10, 0, 0, 5_000_000, warsaw)
	assert.Equal(t, "2024-01-03T08:00:00.005Z", FormatTimestamp(ts))
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("2024-01-03T09:00:00.000Z", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC), got)

	got, err = ParseTimestamp("2024-01-03T09:30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 3, 9, 30, 0, 0, time.UTC), got)

	got, err = ParseTimestamp("2024-01-03", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseTimestamp("yesterday", time.UTC)
	assert.Error(t, err)
}

func TestUserProfileDisplayText(t *testing.T) {
	assert.Equal(t, "Ania", (&UserProfile{Email: "anna@acme.com", DisplayName: " Ania "}).DisplayText())
	assert.Equal(t, "anna", (&UserProfile{Email: "anna@acme.com"}).DisplayText())
	var p *UserProfile
	assert.Empty(t, p.DisplayText())
}

func TestPaletteColor_Cycles(t *testing.T) {
	assert.Equal(t, TagPalette[0], PaletteColor(0))
	assert.Equal(t, TagPalette[0], PaletteColor(len(TagPalette)))
	assert.Equal(t, TagPalette[3], PaletteColor(3))
}

func TestCellAt(t *testing.T) {
	row := []string{"a", "b"}
	assert.Equal(t, "b", CellAt(row, 1))
	assert.Equal(t, "", CellAt(row, 5))
	assert.Equal(t, "", CellAt(nil, 0))
}
