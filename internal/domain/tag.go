package domain

// TagPalette is the default color cycle for new tags.
var TagPalette = []string{
	"#ef4444", "#f97316", "#f59e0b", "#eab308", "#84cc16", "#22c55e",
	"#10b981", "#14b8a6", "#06b6d4", "#0ea5e9", "#3b82f6", "#6366f1",
	"#8b5cf6", "#a855f7", "#d946ef", "#ec4899", "#f43f5e", "#64748b",
}

// DefaultTagColor is used when a stored tag row has no color.
const DefaultTagColor = "#3b82f6"

// Tags are namespaced per entity kind: a company tag cannot be put on a
// contact.
type Tag struct {
	ID          string
	Kind        EntityKind
	Name        string
	Color       string
	Description string
	CreatedBy   string
	CreatedAt   string
}

// PaletteColor picks the palette entry for the n-th tag of a kind.
func PaletteColor(n int) string {
	if n < 0 {
		n = -n
	}
	return TagPalette[n%len(TagPalette)]
}

type TagAssignment struct {
	ID         string
	Entity     EntityRef
	TagID      string
	AssignedBy string
	AssignedAt string
}
