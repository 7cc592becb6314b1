package usecase

import (
	"context"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"
)

type profileUsecase struct {
	profileRepo domain.ProfileRepository
	schemas     *validation.Registry
	publisher   domain.EventPublisher
	now         func() time.Time

	projects    *sectionStore[domain.Project]
	experiences *sectionStore[domain.Experience]
	educations  *sectionStore[domain.Education]
	skills      *sectionStore[domain.Skill]
	languages   *sectionStore[domain.Language]
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(
	profileRepo domain.ProfileRepository,
	schemas *validation.Registry,
	publisher domain.EventPublisher,
) domain.ProfileUsecase {
	return &profileUsecase{
		profileRepo: profileRepo,
		schemas:     schemas,
		publisher:   publisher,
		now:         time.Now,
		projects:    newSectionStore[domain.Project](profileRepo, schemas, "Project"),
		experiences: newSectionStore[domain.Experience](profileRepo, schemas, "Experience"),
		educations:  newSectionStore[domain.Education](profileRepo, schemas, "Education"),
		skills:      newSectionStore[domain.Skill](profileRepo, schemas, "Skill"),
		languages:   newSectionStore[domain.Language](profileRepo, schemas, "Language"),
	}
}

// CreateForEmployee creates the empty profile of a newly registered employee.
func (u *profileUsecase) CreateForEmployee(ctx context.Context, employeeID string) (*domain.Profile, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, apperror.BadRequest("Employee ID is required")
	}

	profile := domain.NewProfile(employeeID, u.now().UTC())
	if err := u.profileRepo.Create(ctx, profile); err != nil {
		return nil, translateError(err)
	}

	publish(ctx, u.publisher, domain.EventProfileCreated, employeeID, profile)
	return profile, nil
}

func (u *profileUsecase) GetByEmployee(ctx context.Context, employeeID string) (*domain.Profile, error) {
	profile, err := u.profileRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, translateError(err)
	}
	profile.Normalize()
	return profile, nil
}

func (u *profileUsecase) UpdateSummary(ctx context.Context, employeeID string, input domain.SummaryInput) error {
	if err := u.schemas.Validate(SchemaSummary, input); err != nil {
		return translateError(err)
	}
	return translateError(u.profileRepo.UpdateSummary(ctx, employeeID, input.Summary))
}

// DeleteForEmployee removes the profile together with every section item.
func (u *profileUsecase) DeleteForEmployee(ctx context.Context, employeeID string) error {
	if err := u.profileRepo.DeleteByEmployeeID(ctx, employeeID); err != nil {
		return translateError(err)
	}

	publish(ctx, u.publisher, domain.EventProfileDeleted, employeeID, nil)
	return nil
}

func (u *profileUsecase) Projects() domain.SectionService[domain.Project] { return u.projects }

func (u *profileUsecase) Experiences() domain.SectionService[domain.Experience] {
	return u.experiences
}

func (u *profileUsecase) Educations() domain.SectionService[domain.Education] {
	return u.educations
}

func (u *profileUsecase) Skills() domain.SectionService[domain.Skill] { return u.skills }

func (u *profileUsecase) Languages() domain.SectionService[domain.Language] { return u.languages }
