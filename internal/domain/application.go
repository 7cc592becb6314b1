package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Application records that an employee applied to a job. Records are only
// ever appended to a job's AppliedBy list.
type Application struct {
	EmployeeID string    `json:"employee_id"`
	AppliedAt  time.Time `json:"applied_at"`
}

// ApplyInput is the payload of an apply request.
type ApplyInput struct {
	JobID      uuid.UUID `json:"job_id" validate:"required"`
	EmployeeID string    `json:"employee_id" validate:"required,max=64"`
}

// Applicant is one entry of a job's CV collection.
type Applicant struct {
	Employee  EmployeeSummary `json:"employee"`
	Profile   *Profile        `json:"profile"`
	AppliedAt time.Time       `json:"applied_at"`
}

// Export formats for the applicant list.
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
)

type ApplicationUsecase interface {
	Apply(ctx context.Context, input ApplyInput) error
	ListAppliedJobs(ctx context.Context, employeeID string) ([]Job, error)
	ListApplicantProfiles(ctx context.Context, jobID uuid.UUID) ([]Applicant, error)
	// ExportApplicants renders the applicant list and returns the file
	// contents together with a suggested filename.
	ExportApplicants(ctx context.Context, jobID uuid.UUID, format string) ([]byte, string, error)
}
