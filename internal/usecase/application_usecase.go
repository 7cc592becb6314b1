package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/validation"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("go-jobboard-backend/internal/usecase")

const defaultApplicantConcurrency = 8

type applicationUsecase struct {
	jobRepo     domain.JobRepository
	profileRepo domain.ProfileRepository
	employees   domain.EmployeeDirectory
	schemas     *validation.Registry
	publisher   domain.EventPublisher
	concurrency int
	now         func() time.Time
}

// NewApplicationUsecase creates a new application usecase. concurrency bounds
// the number of applicants resolved in parallel; values below 1 fall back to
// a default.
func NewApplicationUsecase(
	jobRepo domain.JobRepository,
	profileRepo domain.ProfileRepository,
	employees domain.EmployeeDirectory,
	schemas *validation.Registry,
	publisher domain.EventPublisher,
	concurrency int,
) domain.ApplicationUsecase {
	if concurrency < 1 {
		concurrency = defaultApplicantConcurrency
	}
	return &applicationUsecase{
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
		employees:   employees,
		schemas:     schemas,
		publisher:   publisher,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// Apply records that the employee applied to the job. A second application
// by the same employee is a conflict and leaves the job unchanged.
func (uc *applicationUsecase) Apply(ctx context.Context, input domain.ApplyInput) error {
	input.EmployeeID = strings.TrimSpace(input.EmployeeID)
	if err := uc.schemas.Validate(SchemaApply, input); err != nil {
		return translateError(err)
	}

	app := domain.Application{
		EmployeeID: input.EmployeeID,
		AppliedAt:  uc.now().UTC(),
	}
	if err := uc.jobRepo.AppendApplication(ctx, input.JobID, app); err != nil {
		return translateError(err)
	}

	publish(ctx, uc.publisher, domain.EventApplicationRecorded, input.JobID.String(), app)
	return nil
}

// ListAppliedJobs returns every job the employee applied to, without the
// other applicants.
func (uc *applicationUsecase) ListAppliedJobs(ctx context.Context, employeeID string) ([]domain.Job, error) {
	jobs, err := uc.jobRepo.FetchAppliedByEmployee(ctx, employeeID)
	if err != nil {
		return nil, translateError(err)
	}
	return stripApplications(jobs), nil
}

// ListApplicantProfiles resolves every applicant of the job to its redacted
// employee record and profile, in application order. Applicants whose
// employee record or profile no longer exists are skipped.
func (uc *applicationUsecase) ListApplicantProfiles(ctx context.Context, jobID uuid.UUID) ([]domain.Applicant, error) {
	ctx, span := tracer.Start(ctx, "ListApplicantProfiles",
		trace.WithAttributes(attribute.String("job.id", jobID.String())))
	defer span.End()

	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, translateError(err)
	}
	span.SetAttributes(attribute.Int("job.applications", len(job.AppliedBy)))

	resolved := make([]*domain.Applicant, len(job.AppliedBy))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for i, app := range job.AppliedBy {
		i, app := i, app
		g.Go(func() error {
			applicant, err := uc.resolveApplicant(gctx, app)
			if err != nil {
				return err
			}
			resolved[i] = applicant
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve applicants")
		return nil, translateError(err)
	}

	applicants := make([]domain.Applicant, 0, len(resolved))
	for _, a := range resolved {
		if a != nil {
			applicants = append(applicants, *a)
		}
	}
	return applicants, nil
}

func (uc *applicationUsecase) resolveApplicant(ctx context.Context, app domain.Application) (*domain.Applicant, error) {
	employee, err := uc.employees.GetByID(ctx, app.EmployeeID)
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		logger.Log.Warn("Skipping applicant without employee record", "employee_id", app.EmployeeID)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	profile, err := uc.profileRepo.GetByEmployeeID(ctx, app.EmployeeID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		logger.Log.Warn("Skipping applicant without profile", "employee_id", app.EmployeeID)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	profile.Normalize()

	return &domain.Applicant{
		Employee:  employee.Redacted(),
		Profile:   profile,
		AppliedAt: app.AppliedAt,
	}, nil
}

// ExportApplicants renders the applicant list of a job as xlsx or csv.
func (uc *applicationUsecase) ExportApplicants(ctx context.Context, jobID uuid.UUID, format string) ([]byte, string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = domain.ExportFormatXLSX
	}
	if format != domain.ExportFormatXLSX && format != domain.ExportFormatCSV {
		return nil, "", apperror.BadRequest("Unsupported export format. Must be: xlsx or csv")
	}

	applicants, err := uc.ListApplicantProfiles(ctx, jobID)
	if err != nil {
		return nil, "", err
	}

	rows := applicantRows(applicants)
	stamp := uc.now().UTC().Format("20060102_150405")

	var data []byte
	switch format {
	case domain.ExportFormatCSV:
		data, err = exportApplicantsCSV(rows)
	default:
		data, err = exportApplicantsExcel(rows)
	}
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	filename := "applicants_" + jobID.String() + "_" + stamp + "." + format
	return data, filename, nil
}
