package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/alexanderramin/crmsheet/internal/repository"
	"github.com/alexanderramin/crmsheet/internal/timeline"
)

type timelineService struct {
	store repository.Store
}

func NewTimelineService(store repository.Store) TimelineService {
	return &timelineService{store: store}
}

// Timeline loads the entity's activities and history and returns the
// requested view, newest first.
func (s *timelineService) Timeline(ctx context.Context, ref domain.EntityRef, scope timeline.Scope) ([]timeline.Item, error) {
	subject, err := timeline.SubjectFor(ref)
	if err != nil {
		return nil, validationError("%v", err)
	}
	if err := requireEntity(ctx, s.store, ref); err != nil {
		return nil, err
	}
	activities, err := s.store.Activities.ListByEntity(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}
	history, err := s.store.History.ListByEntity(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	items, err := timeline.View(scope, subject, activities, history)
	if err != nil {
		return nil, validationError("%v", err)
	}
	return items, nil
}
