package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JobDetails are the descriptive, company-editable fields of a job.
type JobDetails struct {
	Title       string  `json:"title" validate:"required,notblank,max=120"`
	City        string  `json:"city" validate:"required,notblank,max=80"`
	Area        string  `json:"area" validate:"required,notblank,max=80"`
	Description string  `json:"description" validate:"required,notblank,max=5000"`
	Positions   int     `json:"positions" validate:"required,min=1,max=1000"`
	Experience  string  `json:"experience" validate:"required,max=50"`
	SalaryMin   float64 `json:"salary_min" validate:"required,gt=0"`
	SalaryMax   float64 `json:"salary_max" validate:"required,gt=0,gtefield=SalaryMin"`
}

type Job struct {
	ID        uuid.UUID `json:"id"`
	CompanyID string    `json:"company_id"`
	JobDetails
	AppliedBy []Application `json:"applied_by,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// WithoutApplications returns a copy of the job safe to show to anyone who
// is not the owning company.
func (j Job) WithoutApplications() Job {
	j.AppliedBy = nil
	return j
}

// HasApplicant reports whether employeeID is already in AppliedBy.
func (j *Job) HasApplicant(employeeID string) bool {
	for _, a := range j.AppliedBy {
		if a.EmployeeID == employeeID {
			return true
		}
	}
	return false
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*Job, error)
	Fetch(ctx context.Context, limit, offset int) ([]Job, int64, error)
	FetchByCompanyID(ctx context.Context, companyID string) ([]Job, error)
	// Update replaces the details of job.ID and fills the remaining fields
	// from storage. AppliedBy is never written.
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id uuid.UUID) error
	// AppendApplication adds app to the job unless its employee already
	// applied, as one atomic step.
	AppendApplication(ctx context.Context, jobID uuid.UUID, app Application) error
	FetchAppliedByEmployee(ctx context.Context, employeeID string) ([]Job, error)
	Search(ctx context.Context, query string) ([]Job, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, companyID string, details JobDetails) (*Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*Job, error)
	ListJobs(ctx context.Context, page, pageSize int) ([]Job, int64, error)
	ListJobsByCompany(ctx context.Context, companyID string) ([]Job, error)
	UpdateJob(ctx context.Context, id uuid.UUID, details JobDetails) (*Job, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error
	SearchJobs(ctx context.Context, query string) ([]Job, error)
}
