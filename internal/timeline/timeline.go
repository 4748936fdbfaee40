// Package timeline merges an entity's activities and history entries into a
// single feed, most recent first.
package timeline

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/crmsheet/internal/domain"
)

type ItemKind string

const (
	ItemActivity ItemKind = "activity"
	ItemNote     ItemKind = "note"
	ItemEvent    ItemKind = "event"
)

// Item is one row of a timeline. Exactly one of Activity and Entry is set,
// matching Kind.
type Item struct {
	Kind     ItemKind
	Activity *domain.Activity
	Entry    *domain.HistoryEntry
}

// Timestamp is the sort key: the activity date or the entry timestamp.
func (i Item) Timestamp() string {
	switch {
	case i.Activity != nil:
		return i.Activity.Date
	case i.Entry != nil:
		return i.Entry.Timestamp
	default:
		return ""
	}
}

func activityItem(a *domain.Activity) Item {
	return Item{Kind: ItemActivity, Activity: a}
}

func entryItem(e *domain.HistoryEntry) Item {
	if e.IsNote() {
		return Item{Kind: ItemNote, Entry: e}
	}
	return Item{Kind: ItemEvent, Entry: e}
}

// Scope selects which records a timeline view shows.
type Scope string

const (
	// ScopeAll is activities plus notes; events are left out.
	ScopeAll        Scope = "all"
	ScopeActivities Scope = "activities"
	ScopeNotes      Scope = "notes"
	// ScopeFull is the unfiltered audit history: notes and events.
	ScopeFull Scope = "full"
)

// Scopes lists the accepted scope names in display order.
var Scopes = []Scope{ScopeAll, ScopeActivities, ScopeNotes, ScopeFull}

func ParseScope(s string) (Scope, error) {
	for _, sc := range Scopes {
		if string(sc) == s {
			return sc, nil
		}
	}
	return "", fmt.Errorf("unknown timeline scope %q (want all, activities, notes or full)", s)
}

// Merge returns every activity linked to subject and every note of subject,
// newest first.
func Merge(subject Subject, activities []*domain.Activity, history []*domain.HistoryEntry) []Item {
	items := collectActivities(subject, activities)
	for _, e := range history {
		if e != nil && e.IsNote() && subject.OwnsEntry(e) {
			items = append(items, entryItem(e))
		}
	}
	SortDescending(items)
	return items
}

// View builds the timeline for one scope. Every scope shares Merge's
// ordering.
func View(scope Scope, subject Subject, activities []*domain.Activity, history []*domain.HistoryEntry) ([]Item, error) {
	var items []Item
	switch scope {
	case ScopeAll:
		return Merge(subject, activities, history), nil
	case ScopeActivities:
		items = collectActivities(subject, activities)
	case ScopeNotes, ScopeFull:
		items = []Item{}
		for _, e := range history {
			if e == nil || !subject.OwnsEntry(e) {
				continue
			}
			if scope == ScopeNotes && !e.IsNote() {
				continue
			}
			items = append(items, entryItem(e))
		}
	default:
		return nil, fmt.Errorf("unknown timeline scope %q", scope)
	}
	SortDescending(items)
	return items, nil
}

func collectActivities(subject Subject, activities []*domain.Activity) []Item {
	items := []Item{}
	for _, a := range activities {
		if a != nil && subject.OwnsActivity(a) {
			items = append(items, activityItem(a))
		}
	}
	return items
}

// SortDescending orders items by plain string comparison of their
// timestamps, newest first. This is chronological only while every
// timestamp uses domain.TimestampLayout. Items without a timestamp go
// last; equal timestamps keep their input order.
func SortDescending(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp() > items[j].Timestamp()
	})
}
