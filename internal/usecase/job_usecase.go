package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"

	"github.com/google/uuid"
)

// Paging bounds for public job listings. maxOffset keeps (page-1)*pageSize
// inside a Postgres integer.
const (
	defaultPageSize = 10
	maxPageSize     = 100
	maxOffset       = math.MaxInt32
)

type jobUsecase struct {
	jobRepo   domain.JobRepository
	companies domain.CompanyDirectory
	schemas   *validation.Registry
	publisher domain.EventPublisher
	now       func() time.Time
}

func NewJobUsecase(
	jobRepo domain.JobRepository,
	companies domain.CompanyDirectory,
	schemas *validation.Registry,
	publisher domain.EventPublisher,
) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:   jobRepo,
		companies: companies,
		schemas:   schemas,
		publisher: publisher,
		now:       time.Now,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, companyID string, details domain.JobDetails) (*domain.Job, error) {
	if err := u.schemas.Validate(SchemaJob, details); err != nil {
		return nil, translateError(err)
	}

	exists, err := u.companies.Exists(ctx, companyID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !exists {
		return nil, apperror.NotFound("Company not found")
	}

	now := u.now().UTC()
	job := &domain.Job{
		ID:         uuid.New(),
		CompanyID:  companyID,
		JobDetails: details,
		AppliedBy:  []domain.Application{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, translateError(err)
	}

	publish(ctx, u.publisher, domain.EventJobCreated, job.ID.String(), job.WithoutApplications())
	return job, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateError(err)
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, page, pageSize int) ([]domain.Job, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page-1 > maxOffset/pageSize {
		return nil, 0, apperror.Validation("Invalid paging", []apperror.FieldError{
			{Field: "page", Reason: "is out of range"},
		})
	}
	offset := (page - 1) * pageSize

	jobs, total, err := u.jobRepo.Fetch(ctx, pageSize, offset)
	if err != nil {
		return nil, 0, translateError(err)
	}
	return stripApplications(jobs), total, nil
}

// ListJobsByCompany returns the company's own jobs including their
// application records.
func (u *jobUsecase) ListJobsByCompany(ctx context.Context, companyID string) ([]domain.Job, error) {
	jobs, err := u.jobRepo.FetchByCompanyID(ctx, companyID)
	if err != nil {
		return nil, translateError(err)
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	return jobs, nil
}

// UpdateJob replaces the descriptive fields of a job. Application records
// are left untouched.
func (u *jobUsecase) UpdateJob(ctx context.Context, id uuid.UUID, details domain.JobDetails) (*domain.Job, error) {
	if err := u.schemas.Validate(SchemaJob, details); err != nil {
		return nil, translateError(err)
	}

	job := &domain.Job{
		ID:         id,
		JobDetails: details,
		UpdatedAt:  u.now().UTC(),
	}
	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, translateError(err)
	}

	publish(ctx, u.publisher, domain.EventJobUpdated, id.String(), job.WithoutApplications())
	return job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, id uuid.UUID) error {
	if err := u.jobRepo.Delete(ctx, id); err != nil {
		return translateError(err)
	}

	publish(ctx, u.publisher, domain.EventJobDeleted, id.String(), nil)
	return nil
}

// SearchJobs matches query case-insensitively against title, city, area and
// description. No match is an empty result, not an error.
func (u *jobUsecase) SearchJobs(ctx context.Context, query string) ([]domain.Job, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.Validation("Invalid search query", []apperror.FieldError{
			{Field: "query", Reason: "must not be blank"},
		})
	}

	jobs, err := u.jobRepo.Search(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	return stripApplications(jobs), nil
}

// stripApplications hides application records from public listings.
func stripApplications(jobs []domain.Job) []domain.Job {
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.WithoutApplications())
	}
	return out
}
