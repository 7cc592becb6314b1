package usecase

import (
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// Schema ids understood by the validation registry.
const (
	SchemaProject    = "project"
	SchemaExperience = "experience"
	SchemaEducation  = "education"
	SchemaSkill      = "skill"
	SchemaLanguage   = "language"
	SchemaSummary    = "summary"
	SchemaJob        = "job"
	SchemaApply      = "apply"
)

var sectionSchemas = map[domain.SectionKind]string{
	domain.SectionProjects:    SchemaProject,
	domain.SectionExperiences: SchemaExperience,
	domain.SectionEducations:  SchemaEducation,
	domain.SectionSkills:      SchemaSkill,
	domain.SectionLanguages:   SchemaLanguage,
}

// NewSchemaRegistry returns a registry holding one schema per payload shape.
func NewSchemaRegistry(v *validator.Validate) *validation.Registry {
	r := validation.NewRegistry(v)
	r.Register(SchemaProject, domain.Project{})
	r.Register(SchemaExperience, domain.Experience{})
	r.Register(SchemaEducation, domain.Education{})
	r.Register(SchemaSkill, domain.Skill{})
	r.Register(SchemaLanguage, domain.Language{})
	r.Register(SchemaSummary, domain.SummaryInput{})
	r.Register(SchemaJob, domain.JobDetails{})
	r.Register(SchemaApply, domain.ApplyInput{})
	return r
}
