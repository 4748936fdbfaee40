package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/alexanderramin/crmsheet/internal/repository"
)

// publicMailDomains are mailbox providers; an address there says nothing
// about the person's company.
var publicMailDomains = map[string]bool{
	"gmail.com":   true,
	"wp.pl":       true,
	"onet.pl":     true,
	"interia.pl":  true,
	"outlook.com": true,
	"yahoo.com":   true,
}

func formatNow(t time.Time) string {
	return domain.FormatTimestamp(t)
}

// logEvent appends a system event to ref's history.
func (d deps) logEvent(ctx context.Context, s repository.Store, ref domain.EntityRef, content string) error {
	e := &domain.HistoryEntry{
		ID:        d.newID(),
		Entity:    ref,
		Type:      domain.HistoryEvent,
		Timestamp: d.timestamp(),
		Author:    d.author,
		Content:   content,
	}
	if err := s.History.Create(ctx, e); err != nil {
		return fmt.Errorf("logging %s event: %w", ref.Kind, err)
	}
	return nil
}

// requireEntity fails when ref does not name a stored company or contact.
func requireEntity(ctx context.Context, s repository.Store, ref domain.EntityRef) error {
	if err := ref.Validate(); err != nil {
		return validationError("%v", err)
	}
	var err error
	switch ref.Kind {
	case domain.KindCompany:
		_, err = s.Companies.GetByID(ctx, ref.ID)
	case domain.KindContact:
		_, err = s.Contacts.GetByID(ctx, ref.ID)
	}
	return err
}

func tagIDsOf(ctx context.Context, s repository.Store, ref domain.EntityRef) ([]string, error) {
	assigned, err := s.TagAssignments.ListByEntity(ctx, ref)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(assigned))
	for _, a := range assigned {
		ids = append(ids, a.TagID)
	}
	return ids, nil
}

// syncTags makes tagIDs the exact tag set of ref. A nil slice leaves the
// current tags untouched.
func (d deps) syncTags(ctx context.Context, s repository.Store, ref domain.EntityRef, tagIDs []string) error {
	if tagIDs == nil {
		return nil
	}
	for _, id := range tagIDs {
		tag, err := s.Tags.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return validationError("unknown tag %s", id)
			}
			return err
		}
		if tag.Kind != ref.Kind {
			return validationError("tag %q is a %s tag", tag.Name, tag.Kind)
		}
	}
	if err := s.TagAssignments.DeleteByEntity(ctx, ref); err != nil {
		return fmt.Errorf("clearing tags: %w", err)
	}
	for _, id := range tagIDs {
		a := &domain.TagAssignment{
			ID:         d.newID(),
			Entity:     ref,
			TagID:      id,
			AssignedBy: d.author,
			AssignedAt: d.timestamp(),
		}
		if err := s.TagAssignments.Create(ctx, a); err != nil {
			return fmt.Errorf("assigning tag: %w", err)
		}
	}
	return nil
}
