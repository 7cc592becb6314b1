// Package memory holds mutex-guarded in-memory implementations of the
// repository contracts. Every mutation runs inside one critical section, which
// gives the same atomicity the Postgres statements provide.
package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go-jobboard-backend/internal/domain"

	"github.com/google/uuid"
)

type sectionEntry struct {
	id  uuid.UUID
	raw json.RawMessage
}

type profileDoc struct {
	profile  domain.Profile
	sections map[domain.SectionKind][]sectionEntry
}

type profileRepo struct {
	mu       sync.RWMutex
	profiles map[string]*profileDoc
}

func NewProfileRepository() domain.ProfileRepository {
	return &profileRepo{profiles: make(map[string]*profileDoc)}
}

func (r *profileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	profile.Normalize()
	sections := make(map[domain.SectionKind][]sectionEntry, len(domain.SectionKinds))
	for _, kind := range domain.SectionKinds {
		items, err := splitSection(profile.SectionField(kind))
		if err != nil {
			return fmt.Errorf("encode %s: %w", kind, err)
		}
		sections[kind] = items
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.EmployeeID]; ok {
		return domain.ErrProfileExists
	}
	stored := *profile
	stored.Projects, stored.Experiences, stored.Educations, stored.Skills, stored.Languages = nil, nil, nil, nil, nil
	r.profiles[profile.EmployeeID] = &profileDoc{profile: stored, sections: sections}
	return nil
}

func (r *profileRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.profiles[employeeID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	profile := doc.profile
	for _, kind := range domain.SectionKinds {
		if err := json.Unmarshal(joinSection(doc.sections[kind]), profile.SectionField(kind)); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
	}
	profile.Normalize()
	return &profile, nil
}

func (r *profileRepo) UpdateSummary(ctx context.Context, employeeID, summary string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.profiles[employeeID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	doc.profile.Summary = summary
	doc.profile.UpdatedAt = now()
	return nil
}

func (r *profileRepo) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[employeeID]; !ok {
		return domain.ErrProfileNotFound
	}
	delete(r.profiles, employeeID)
	return nil
}

func (r *profileRepo) AppendSectionItem(ctx context.Context, employeeID string, kind domain.SectionKind, item json.RawMessage) error {
	if !kind.Valid() {
		return domain.ErrUnknownSection
	}
	id, err := itemID(item)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.profiles[employeeID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	doc.sections[kind] = append(doc.sections[kind], sectionEntry{id: id, raw: cloneRaw(item)})
	doc.profile.UpdatedAt = now()
	return nil
}

func (r *profileRepo) ReplaceSectionItem(ctx context.Context, employeeID string, kind domain.SectionKind, id uuid.UUID, item json.RawMessage) error {
	if !kind.Valid() {
		return domain.ErrUnknownSection
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.profiles[employeeID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	for i, e := range doc.sections[kind] {
		if e.id == id {
			doc.sections[kind][i].raw = cloneRaw(item)
			doc.profile.UpdatedAt = now()
			return nil
		}
	}
	return domain.ErrSectionItemNotFound
}

func (r *profileRepo) PullSectionItem(ctx context.Context, employeeID string, kind domain.SectionKind, id uuid.UUID) error {
	if !kind.Valid() {
		return domain.ErrUnknownSection
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.profiles[employeeID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	items := doc.sections[kind]
	for i, e := range items {
		if e.id == id {
			kept := make([]sectionEntry, 0, len(items)-1)
			kept = append(kept, items[:i]...)
			doc.sections[kind] = append(kept, items[i+1:]...)
			doc.profile.UpdatedAt = now()
			return nil
		}
	}
	return domain.ErrSectionItemNotFound
}

func (r *profileRepo) ListSectionItems(ctx context.Context, employeeID string, kind domain.SectionKind) ([]json.RawMessage, error) {
	if !kind.Valid() {
		return nil, domain.ErrUnknownSection
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.profiles[employeeID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	out := make([]json.RawMessage, 0, len(doc.sections[kind]))
	for _, e := range doc.sections[kind] {
		out = append(out, cloneRaw(e.raw))
	}
	return out, nil
}

// splitSection encodes a typed section slice into stored entries.
func splitSection(field interface{}) ([]sectionEntry, error) {
	data, err := json.Marshal(field)
	if err != nil {
		return nil, err
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	entries := make([]sectionEntry, 0, len(raws))
	for _, raw := range raws {
		id, err := itemID(raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, sectionEntry{id: id, raw: raw})
	}
	return entries, nil
}

func joinSection(entries []sectionEntry) []byte {
	raws := make([][]byte, 0, len(entries))
	for _, e := range entries {
		raws = append(raws, e.raw)
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	buf.Write(bytes.Join(raws, []byte{','}))
	buf.WriteByte(']')
	return buf.Bytes()
}

func itemID(raw json.RawMessage) (uuid.UUID, error) {
	var head struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return uuid.Nil, fmt.Errorf("decode section item id: %w", err)
	}
	return head.ID, nil
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	return append(json.RawMessage(nil), raw...)
}
