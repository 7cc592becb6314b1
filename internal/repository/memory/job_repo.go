package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/google/uuid"
)

func now() time.Time { return time.Now().UTC() }

type jobRepo struct {
	mu    sync.RWMutex
	jobs  map[uuid.UUID]*domain.Job
	order []uuid.UUID
}

func NewJobRepository() domain.JobRepository {
	return &jobRepo{jobs: make(map[uuid.UUID]*domain.Job)}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	stored := copyJob(job)
	r.jobs[job.ID] = &stored
	r.order = append(r.order, job.ID)
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	out := copyJob(job)
	return &out, nil
}

// Fetch lists jobs newest first.
func (r *jobRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := int64(len(r.order))
	jobs := []domain.Job{}
	if limit <= 0 || offset < 0 || offset >= len(r.order) {
		return jobs, total, nil
	}
	for i := len(r.order) - 1 - offset; i >= 0 && len(jobs) < limit; i-- {
		jobs = append(jobs, copyJob(r.jobs[r.order[i]]))
	}
	return jobs, total, nil
}

func (r *jobRepo) FetchByCompanyID(ctx context.Context, companyID string) ([]domain.Job, error) {
	return r.filter(func(j *domain.Job) bool { return j.CompanyID == companyID }), nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.jobs[job.ID]
	if !ok {
		return domain.ErrJobNotFound
	}
	stored.JobDetails = job.JobDetails
	stored.UpdatedAt = job.UpdatedAt
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = now()
	}
	*job = copyJob(stored)
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.jobs, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// AppendApplication checks for a previous application and appends app in
// the same critical section.
func (r *jobRepo) AppendApplication(ctx context.Context, jobID uuid.UUID, app domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return domain.ErrJobNotFound
	}
	if job.HasApplicant(app.EmployeeID) {
		return domain.ErrAlreadyApplied
	}
	job.AppliedBy = append(job.AppliedBy, app)
	return nil
}

func (r *jobRepo) FetchAppliedByEmployee(ctx context.Context, employeeID string) ([]domain.Job, error) {
	return r.filter(func(j *domain.Job) bool { return j.HasApplicant(employeeID) }), nil
}

func (r *jobRepo) Search(ctx context.Context, query string) ([]domain.Job, error) {
	q := strings.ToLower(query)
	return r.filter(func(j *domain.Job) bool {
		for _, field := range []string{j.Title, j.City, j.Area, j.Description} {
			if strings.Contains(strings.ToLower(field), q) {
				return true
			}
		}
		return false
	}), nil
}

// filter returns copies of the matching jobs in insertion order.
func (r *jobRepo) filter(match func(*domain.Job) bool) []domain.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	jobs := []domain.Job{}
	for _, id := range r.order {
		if j := r.jobs[id]; match(j) {
			jobs = append(jobs, copyJob(j))
		}
	}
	return jobs
}

func copyJob(j *domain.Job) domain.Job {
	out := *j
	out.AppliedBy = append([]domain.Application{}, j.AppliedBy...)
	return out
}
