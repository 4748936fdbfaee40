package service

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/alexanderramin/crmsheet/internal/repository"
)

type profileService struct {
	profiles repository.UserProfileRepo
	deps
}

func NewProfileService(profiles repository.UserProfileRepo, opts ...Option) ProfileService {
	return &profileService{profiles: profiles, deps: newDeps(opts)}
}

// Current returns the author's profile. An author who never set a name
// gets an unsaved profile carrying only the email.
func (s *profileService) Current(ctx context.Context) (*domain.UserProfile, error) {
	if s.author == "" {
		return nil, validationError("no author email configured")
	}
	p, err := s.profiles.Get(ctx, s.author)
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.UserProfile{Email: s.author}, nil
	}
	return p, err
}

func (s *profileService) SetDisplayName(ctx context.Context, name string) (*domain.UserProfile, error) {
	if s.author == "" {
		return nil, validationError("no author email configured")
	}
	now := s.timestamp()
	p := &domain.UserProfile{
		Email:       s.author,
		DisplayName: strings.TrimSpace(name),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return s.profiles.Get(ctx, s.author)
}
