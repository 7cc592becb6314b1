package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Profile is the aggregate root holding an employee's résumé sections.
// There is exactly one Profile per employee.
type Profile struct {
	ID          uuid.UUID    `json:"id"`
	EmployeeID  string       `json:"employee_id"`
	Summary     string       `json:"summary"`
	Projects    []Project    `json:"projects"`
	Experiences []Experience `json:"experiences"`
	Educations  []Education  `json:"educations"`
	Skills      []Skill      `json:"skills"`
	Languages   []Language   `json:"languages"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewProfile returns an empty profile for employeeID.
func NewProfile(employeeID string, now time.Time) *Profile {
	p := &Profile{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	p.Normalize()
	return p
}

// Normalize replaces nil sections with empty ones so they render as [].
func (p *Profile) Normalize() {
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	if p.Experiences == nil {
		p.Experiences = []Experience{}
	}
	if p.Educations == nil {
		p.Educations = []Education{}
	}
	if p.Skills == nil {
		p.Skills = []Skill{}
	}
	if p.Languages == nil {
		p.Languages = []Language{}
	}
}

// SummaryInput is the payload of a summary update.
type SummaryInput struct {
	Summary string `json:"summary" validate:"required,notblank,max=2000"`
}

// SectionRepository exposes the atomic array primitives a section store
// needs. Items travel as JSON documents that already carry their "id".
type SectionRepository interface {
	AppendSectionItem(ctx context.Context, employeeID string, kind SectionKind, item json.RawMessage) error
	ReplaceSectionItem(ctx context.Context, employeeID string, kind SectionKind, itemID uuid.UUID, item json.RawMessage) error
	PullSectionItem(ctx context.Context, employeeID string, kind SectionKind, itemID uuid.UUID) error
	ListSectionItems(ctx context.Context, employeeID string, kind SectionKind) ([]json.RawMessage, error)
}

type ProfileRepository interface {
	SectionRepository
	Create(ctx context.Context, profile *Profile) error
	GetByEmployeeID(ctx context.Context, employeeID string) (*Profile, error)
	UpdateSummary(ctx context.Context, employeeID, summary string) error
	DeleteByEmployeeID(ctx context.Context, employeeID string) error
}

type ProfileUsecase interface {
	CreateForEmployee(ctx context.Context, employeeID string) (*Profile, error)
	GetByEmployee(ctx context.Context, employeeID string) (*Profile, error)
	UpdateSummary(ctx context.Context, employeeID string, input SummaryInput) error
	DeleteForEmployee(ctx context.Context, employeeID string) error

	Projects() SectionService[Project]
	Experiences() SectionService[Experience]
	Educations() SectionService[Education]
	Skills() SectionService[Skill]
	Languages() SectionService[Language]
}

// SectionField returns a pointer to the slice holding kind, suitable as a
// JSON decoding target, or nil for an unknown kind.
func (p *Profile) SectionField(kind SectionKind) interface{} {
	switch kind {
	case SectionProjects:
		return &p.Projects
	case SectionExperiences:
		return &p.Experiences
	case SectionEducations:
		return &p.Educations
	case SectionSkills:
		return &p.Skills
	case SectionLanguages:
		return &p.Languages
	}
	return nil
}
