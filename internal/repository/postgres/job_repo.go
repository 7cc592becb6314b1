package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go-jobboard-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `id, company_id, title, city, area, description, positions, experience, salary_min, salary_max, applied_by, created_at, updated_at`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	if job.AppliedBy == nil {
		job.AppliedBy = []domain.Application{}
	}
	appliedBy, err := json.Marshal(job.AppliedBy)
	if err != nil {
		return fmt.Errorf("encode applied_by: %w", err)
	}

	query := `INSERT INTO jobs (id, company_id, title, city, area, description, positions, experience, salary_min, salary_max, applied_by, created_at, updated_at)
              VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::jsonb, $12, $13)`
	_, err = r.db.Exec(ctx, query,
		job.ID.String(), job.CompanyID, job.Title, job.City, job.Area, job.Description,
		job.Positions, job.Experience, job.SalaryMin, job.SalaryMax, string(appliedBy),
		job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1::uuid`
	job, err := scanJob(r.db.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

func (r *jobRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	jobs, err := r.queryJobs(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}
	return jobs, total, nil
}

func (r *jobRepo) FetchByCompanyID(ctx context.Context, companyID string) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE company_id = $1 ORDER BY created_at, id`
	return r.queryJobs(ctx, query, companyID)
}

// Update writes the descriptive fields only and reads the rest back.
func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET
		title = $2,
		city = $3,
		area = $4,
		description = $5,
		positions = $6,
		experience = $7,
		salary_min = $8,
		salary_max = $9,
		updated_at = NOW()
	WHERE id = $1::uuid
	RETURNING ` + jobColumns
	updated, err := scanJob(r.db.QueryRow(ctx, query,
		job.ID.String(), job.Title, job.City, job.Area, job.Description,
		job.Positions, job.Experience, job.SalaryMin, job.SalaryMax,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrJobNotFound
		}
		return err
	}
	*job = *updated
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1::uuid`, id.String())
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// AppendApplication appends app unless the employee is already listed. The
// check and the append are one statement.
func (r *jobRepo) AppendApplication(ctx context.Context, jobID uuid.UUID, app domain.Application) error {
	record, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("encode application: %w", err)
	}

	query := `UPDATE jobs SET applied_by = applied_by || jsonb_build_array($2::jsonb)
              WHERE id = $1::uuid
                AND NOT applied_by @> jsonb_build_array(jsonb_build_object('employee_id', $3::text))`
	result, err := r.db.Exec(ctx, query, jobID.String(), string(record), app.EmployeeID)
	if err != nil {
		return fmt.Errorf("append application: %w", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM jobs WHERE id = $1::uuid)`, jobID.String()).Scan(&exists); err != nil {
		return fmt.Errorf("check job: %w", err)
	}
	if !exists {
		return domain.ErrJobNotFound
	}
	return domain.ErrAlreadyApplied
}

func (r *jobRepo) FetchAppliedByEmployee(ctx context.Context, employeeID string) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs
              WHERE applied_by @> jsonb_build_array(jsonb_build_object('employee_id', $1::text))
              ORDER BY created_at, id`
	return r.queryJobs(ctx, query, employeeID)
}

// Search is a case-insensitive substring match. LIKE wildcards in query
// match literally.
func (r *jobRepo) Search(ctx context.Context, query string) ([]domain.Job, error) {
	pattern := "%" + escapeLike(query) + "%"
	sql := `SELECT ` + jobColumns + ` FROM jobs
            WHERE title ILIKE $1 ESCAPE '\'
               OR city ILIKE $1 ESCAPE '\'
               OR area ILIKE $1 ESCAPE '\'
               OR description ILIKE $1 ESCAPE '\'
            ORDER BY created_at, id`
	return r.queryJobs(ctx, sql, pattern)
}

func (r *jobRepo) queryJobs(ctx context.Context, query string, args ...interface{}) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	var appliedBy []byte
	err := row.Scan(
		&job.ID, &job.CompanyID, &job.Title, &job.City, &job.Area, &job.Description,
		&job.Positions, &job.Experience, &job.SalaryMin, &job.SalaryMax, &appliedBy,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	job.AppliedBy = []domain.Application{}
	if len(appliedBy) > 0 {
		if err := json.Unmarshal(appliedBy, &job.AppliedBy); err != nil {
			return nil, fmt.Errorf("decode applied_by: %w", err)
		}
	}
	return &job, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
