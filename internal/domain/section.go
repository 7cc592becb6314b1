package domain

import (
	"context"

	"github.com/google/uuid"
)

// SectionKind names one of the ordered sub-collections of a Profile. The
// value doubles as the JSON key and the storage column.
type SectionKind string

const (
	SectionProjects    SectionKind = "projects"
	SectionExperiences SectionKind = "experiences"
	SectionEducations  SectionKind = "educations"
	SectionSkills      SectionKind = "skills"
	SectionLanguages   SectionKind = "languages"
)

// SectionKinds lists every section in display order.
var SectionKinds = []SectionKind{
	SectionProjects,
	SectionExperiences,
	SectionEducations,
	SectionSkills,
	SectionLanguages,
}

func (k SectionKind) Valid() bool {
	switch k {
	case SectionProjects, SectionExperiences, SectionEducations, SectionSkills, SectionLanguages:
		return true
	}
	return false
}

// SectionItem carries the identity every sub-entity gets on insertion.
type SectionItem struct {
	ID uuid.UUID `json:"id"`
}

func (s SectionItem) ItemID() uuid.UUID { return s.ID }

func (s *SectionItem) setItemID(id uuid.UUID) { s.ID = id }

// Section is the closed set of sub-entity variants a Profile owns.
type Section interface {
	Project | Experience | Education | Skill | Language
	ItemID() uuid.UUID
	SectionKind() SectionKind
}

// WithItemID returns a copy of item carrying id.
func WithItemID[T Section](item T, id uuid.UUID) T {
	any(&item).(interface{ setItemID(uuid.UUID) }).setItemID(id)
	return item
}

type Project struct {
	SectionItem
	Name        string `json:"name" validate:"required,max=100"`
	URL         string `json:"url" validate:"required,url"`
	Description string `json:"description" validate:"required,max=80"`
}

func (Project) SectionKind() SectionKind { return SectionProjects }

type Experience struct {
	SectionItem
	JobTitle    string `json:"job_title" validate:"required,max=100"`
	Company     string `json:"company" validate:"required,max=100"`
	Industry    string `json:"industry" validate:"required,max=100"`
	Location    string `json:"location" validate:"required,max=100"`
	StartDate   string `json:"start_date" validate:"required,max=20"`
	EndDate     string `json:"end_date" validate:"required,max=20"`
	Description string `json:"description" validate:"required,max=80"`
}

func (Experience) SectionKind() SectionKind { return SectionExperiences }

type Education struct {
	SectionItem
	InstituteName  string `json:"institute_name" validate:"required,max=150"`
	Programme      string `json:"programme" validate:"required,max=100"`
	Major          string `json:"major" validate:"required,max=100"`
	CompletionYear string `json:"completion_year" validate:"required,len=4,numeric"`
}

func (Education) SectionKind() SectionKind { return SectionEducations }

type Skill struct {
	SectionItem
	Name  string `json:"name" validate:"required,max=60"`
	Level string `json:"level" validate:"required,max=30"`
}

func (Skill) SectionKind() SectionKind { return SectionSkills }

type Language struct {
	SectionItem
	Name  string `json:"name" validate:"required,max=60"`
	Level string `json:"level" validate:"required,max=30"`
}

func (Language) SectionKind() SectionKind { return SectionLanguages }

// SectionService is the per-type SubEntity Store exposed by the profile
// usecase.
type SectionService[T Section] interface {
	Add(ctx context.Context, employeeID string, item T) (T, error)
	Update(ctx context.Context, employeeID string, itemID uuid.UUID, item T) error
	Remove(ctx context.Context, employeeID string, itemID uuid.UUID) error
	List(ctx context.Context, employeeID string) ([]T, error)
}
