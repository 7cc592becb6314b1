package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"

	"github.com/google/uuid"
)

// sectionStore implements domain.SectionService for one section kind on top
// of the repository's atomic array primitives.
type sectionStore[T domain.Section] struct {
	repo     domain.SectionRepository
	schemas  *validation.Registry
	kind     domain.SectionKind
	schemaID string
	label    string
	newID    func() uuid.UUID
}

func newSectionStore[T domain.Section](repo domain.SectionRepository, schemas *validation.Registry, label string) *sectionStore[T] {
	var zero T
	kind := zero.SectionKind()
	return &sectionStore[T]{
		repo:     repo,
		schemas:  schemas,
		kind:     kind,
		schemaID: sectionSchemas[kind],
		label:    label,
		newID:    uuid.New,
	}
}

// Add validates item, stamps a fresh id on it and appends it to the section.
func (s *sectionStore[T]) Add(ctx context.Context, employeeID string, item T) (T, error) {
	var zero T
	if err := s.schemas.Validate(s.schemaID, item); err != nil {
		return zero, s.translate(err)
	}

	item = domain.WithItemID(item, s.newID())
	raw, err := json.Marshal(item)
	if err != nil {
		return zero, apperror.Internal(err)
	}
	if err := s.repo.AppendSectionItem(ctx, employeeID, s.kind, raw); err != nil {
		return zero, s.translate(err)
	}
	return item, nil
}

// Update replaces the item with itemID in place. The stored id is kept even
// if the payload carries a different one.
func (s *sectionStore[T]) Update(ctx context.Context, employeeID string, itemID uuid.UUID, item T) error {
	if err := s.schemas.Validate(s.schemaID, item); err != nil {
		return s.translate(err)
	}

	item = domain.WithItemID(item, itemID)
	raw, err := json.Marshal(item)
	if err != nil {
		return apperror.Internal(err)
	}
	return s.translate(s.repo.ReplaceSectionItem(ctx, employeeID, s.kind, itemID, raw))
}

func (s *sectionStore[T]) Remove(ctx context.Context, employeeID string, itemID uuid.UUID) error {
	return s.translate(s.repo.PullSectionItem(ctx, employeeID, s.kind, itemID))
}

// List returns the section in insertion order. An empty section yields an
// empty, non-nil slice.
func (s *sectionStore[T]) List(ctx context.Context, employeeID string) ([]T, error) {
	raws, err := s.repo.ListSectionItems(ctx, employeeID, s.kind)
	if err != nil {
		return nil, s.translate(err)
	}

	items := make([]T, 0, len(raws))
	for _, raw := range raws {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, apperror.Internal(fmt.Errorf("decode %s item: %w", s.kind, err))
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *sectionStore[T]) translate(err error) error {
	if errors.Is(err, domain.ErrSectionItemNotFound) {
		appErr := apperror.NotFound(s.label + " not found")
		appErr.Err = err
		return appErr
	}
	return translateError(err)
}
