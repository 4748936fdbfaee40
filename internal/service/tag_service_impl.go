package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/alexanderramin/crmsheet/internal/repository"
)

type tagService struct {
	store repository.Store
	tx    repository.Transactor
	deps
}

func NewTagService(store repository.Store, tx repository.Transactor, opts ...Option) TagService {
	return &tagService{store: store, tx: tx, deps: newDeps(opts)}
}

// Create adds a tag to its kind's namespace. Without a color the tag takes
// the next palette entry.
func (s *tagService) Create(ctx context.Context, t *domain.Tag) (err error) {
	fields := map[string]any{}
	defer s.observe(ctx, "tag-create", time.Now(), fields, &err)

	if t == nil {
		return validationError("tag is required")
	}
	fields["kind"] = string(t.Kind)
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return validationError("tag name is required")
	}
	if !t.Kind.Valid() {
		return validationError("unknown tag kind %q", t.Kind)
	}
	existing, err := s.store.Tags.ListByKind(ctx, t.Kind)
	if err != nil {
		return fmt.Errorf("loading tags: %w", err)
	}
	if dup := findTagByName(existing, t.Name, ""); dup != nil {
		return validationError("%s tag %q already exists", t.Kind, dup.Name)
	}
	if t.Color == "" {
		t.Color = domain.PaletteColor(len(existing))
	}
	if t.ID == "" {
		t.ID = s.newID()
	}
	t.CreatedBy = s.author
	t.CreatedAt = s.timestamp()
	return s.store.Tags.Create(ctx, t)
}

func (s *tagService) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	return s.store.Tags.GetByID(ctx, id)
}

func (s *tagService) ListByKind(ctx context.Context, kind domain.EntityKind) ([]*domain.Tag, error) {
	if !kind.Valid() {
		return nil, validationError("unknown tag kind %q", kind)
	}
	return s.store.Tags.ListByKind(ctx, kind)
}

// Update renames or recolors a tag. Its kind cannot change.
func (s *tagService) Update(ctx context.Context, t *domain.Tag) error {
	if t == nil {
		return validationError("tag is required")
	}
	current, err := s.store.Tags.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return validationError("tag name is required")
	}
	t.Kind = current.Kind
	existing, err := s.store.Tags.ListByKind(ctx, t.Kind)
	if err != nil {
		return fmt.Errorf("loading tags: %w", err)
	}
	if dup := findTagByName(existing, t.Name, t.ID); dup != nil {
		return validationError("%s tag %q already exists", t.Kind, dup.Name)
	}
	t.Color = domain.CoalesceStr(t.Color, current.Color)
	t.CreatedBy = current.CreatedBy
	t.CreatedAt = current.CreatedAt
	return s.store.Tags.Update(ctx, t)
}

// Delete removes the tag from every entity, then the tag itself.
func (s *tagService) Delete(ctx context.Context, id string) (err error) {
	defer s.observe(ctx, "tag-delete", time.Now(), map[string]any{"tag_id": id}, &err)

	return s.tx.WithinTx(ctx, func(ctx context.Context, st repository.Store) error {
		if _, err := st.Tags.GetByID(ctx, id); err != nil {
			return err
		}
		if err := st.TagAssignments.DeleteByTag(ctx, id); err != nil {
			return fmt.Errorf("removing tag assignments: %w", err)
		}
		return st.Tags.Delete(ctx, id)
	})
}

// Assign puts the tag on the entity. Assigning twice is a no-op.
func (s *tagService) Assign(ctx context.Context, ref domain.EntityRef, tagID string) (err error) {
	defer s.observe(ctx, "tag-assign", time.Now(), map[string]any{"entity": ref.String(), "tag_id": tagID}, &err)

	tag, err := s.store.Tags.GetByID(ctx, tagID)
	if err != nil {
		return err
	}
	if tag.Kind != ref.Kind {
		return validationError("tag %q is a %s tag", tag.Name, tag.Kind)
	}
	if err = requireEntity(ctx, s.store, ref); err != nil {
		return err
	}
	return s.store.TagAssignments.Create(ctx, &domain.TagAssignment{
		ID:         s.newID(),
		Entity:     ref,
		TagID:      tagID,
		AssignedBy: s.author,
		AssignedAt: s.timestamp(),
	})
}

func (s *tagService) Unassign(ctx context.Context, ref domain.EntityRef, tagID string) error {
	return s.store.TagAssignments.Delete(ctx, ref, tagID)
}

// TagsOf returns the entity's tags in assignment order. Assignments whose
// tag no longer exists are skipped.
func (s *tagService) TagsOf(ctx context.Context, ref domain.EntityRef) ([]*domain.Tag, error) {
	assigned, err := s.store.TagAssignments.ListByEntity(ctx, ref)
	if err != nil {
		return nil, err
	}
	tags := make([]*domain.Tag, 0, len(assigned))
	for _, a := range assigned {
		tag, err := s.store.Tags.GetByID(ctx, a.TagID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (s *tagService) EntitiesWithTag(ctx context.Context, tagID string) ([]domain.EntityRef, error) {
	assigned, err := s.store.TagAssignments.ListByTag(ctx, tagID)
	if err != nil {
		return nil, err
	}
	refs := make([]domain.EntityRef, 0, len(assigned))
	for _, a := range assigned {
		refs = append(refs, a.Entity)
	}
	return refs, nil
}

func findTagByName(tags []*domain.Tag, name, excludeID string) *domain.Tag {
	for _, t := range tags {
		if t.ID != excludeID && strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return nil
}
