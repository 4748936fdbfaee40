package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/crmsheet/internal/agenda"
	"github.com/alexanderramin/crmsheet/internal/repository"
)

type agendaService struct {
	activities repository.ActivityRepo
	deps
}

func NewAgendaService(activities repository.ActivityRepo, opts ...Option) AgendaService {
	return &agendaService{activities: activities, deps: newDeps(opts)}
}

func (s *agendaService) Agenda(ctx context.Context) (agenda.Buckets, error) {
	all, err := s.activities.List(ctx)
	if err != nil {
		return agenda.Buckets{}, fmt.Errorf("loading activities: %w", err)
	}
	return agenda.Build(all, s.now()), nil
}
