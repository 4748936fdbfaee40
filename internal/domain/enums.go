package domain

// EntityKind identifies which top-level record an activity, history entry,
// tag or tag assignment hangs off.
type EntityKind string

const (
	KindCompany EntityKind = "company"
	KindContact EntityKind = "contact"
)

// Valid reports whether k is one of the known entity kinds.
func (k EntityKind) Valid() bool {
	return k == KindCompany || k == KindContact
}

type ActivityType string

const (
	ActivityEmail   ActivityType = "EMAIL"
	ActivityPhone   ActivityType = "PHONE"
	ActivityMeeting ActivityType = "MEETING"
	ActivityTask    ActivityType = "TASK"
)

// ValidActivityTypes is the canonical set of accepted activity type strings.
var ValidActivityTypes = map[ActivityType]bool{
	ActivityEmail: true, ActivityPhone: true, ActivityMeeting: true, ActivityTask: true,
}

type ActivityStatus string

const (
	ActivityPlanned   ActivityStatus = "planned"
	ActivityCompleted ActivityStatus = "completed"
	ActivityCancelled ActivityStatus = "cancelled"
)

// ValidActivityStatuses is the canonical set of accepted activity statuses.
var ValidActivityStatuses = map[ActivityStatus]bool{
	ActivityPlanned: true, ActivityCompleted: true, ActivityCancelled: true,
}

type HistoryType string

const (
	HistoryNote  HistoryType = "note"
	HistoryEvent HistoryType = "event"
)
