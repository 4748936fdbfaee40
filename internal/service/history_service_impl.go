package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/alexanderramin/crmsheet/internal/repository"
)

type historyService struct {
	store repository.Store
	deps
}

func NewHistoryService(store repository.Store, opts ...Option) HistoryService {
	return &historyService{store: store, deps: newDeps(opts)}
}

func (s *historyService) AddNote(ctx context.Context, ref domain.EntityRef, content string) (e *domain.HistoryEntry, err error) {
	defer s.observe(ctx, "note-add", time.Now(), map[string]any{"entity": ref.String()}, &err)
	return s.add(ctx, ref, content)
}

func (s *historyService) add(ctx context.Context, ref domain.EntityRef, content string) (*domain.HistoryEntry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validationError("note content is required")
	}
	if err := requireEntity(ctx, s.store, ref); err != nil {
		return nil, err
	}
	e := &domain.HistoryEntry{
		ID:        s.newID(),
		Entity:    ref,
		Type:      domain.HistoryNote,
		Timestamp: s.timestamp(),
		Author:    s.author,
		Content:   content,
	}
	if err := s.store.History.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
