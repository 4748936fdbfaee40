package domain

import (
	"fmt"
	"strings"
	"time"
)

type Activity struct {
	ID          string
	Type        ActivityType
	Title       string
	Date        string
	Notes       string
	CompanyID   string
	ContactID   string
	Status      ActivityStatus
	CreatedBy   string
	CreatedAt   string
	CompletedAt string
}

// Validate checks the fields a new activity must carry.
func (a *Activity) Validate() error {
	if !ValidActivityTypes[a.Type] {
		return fmt.Errorf("invalid activity type %q (want EMAIL, PHONE, MEETING or TASK)", a.Type)
	}
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("activity title is required")
	}
	if a.Date == "" {
		return fmt.Errorf("activity date is required")
	}
	if a.Status != "" && !ValidActivityStatuses[a.Status] {
		return fmt.Errorf("invalid activity status %q", a.Status)
	}
	if a.CompanyID == "" && a.ContactID == "" {
		return fmt.Errorf("activity must be linked to a company or a contact")
	}
	return nil
}

// IsPlanned reports whether the activity still awaits completion.
func (a *Activity) IsPlanned() bool {
	return a.Status == ActivityPlanned
}

// Complete transitions a planned activity to completed.
func (a *Activity) Complete(now time.Time) error {
	if a.Status != ActivityPlanned {
		return fmt.Errorf("cannot complete activity in status %q", a.Status)
	}
	a.Status = ActivityCompleted
	a.CompletedAt = FormatTimestamp(now)
	return nil
}

// Cancel transitions a planned activity to cancelled.
func (a *Activity) Cancel() error {
	if a.Status != ActivityPlanned {
		return fmt.Errorf("cannot cancel activity in status %q", a.Status)
	}
	a.Status = ActivityCancelled
	return nil
}

// Links returns the entities this activity is attached to.
func (a *Activity) Links() []EntityRef {
	var refs []EntityRef
	if a.CompanyID != "" {
		refs = append(refs, CompanyRef(a.CompanyID))
	}
	if a.ContactID != "" {
		refs = append(refs, ContactRef(a.ContactID))
	}
	return refs
}
