package domain

// HistoryEntry is one line of an entity's audit history: either a user
// note or a system event such as "Company updated".
type HistoryEntry struct {
	ID        string
	Entity    EntityRef
	Type      HistoryType
	Timestamp string
	Author    string
	Content   string
	Meta      string
}

func (h *HistoryEntry) IsNote() bool {
	return h.Type == HistoryNote
}
