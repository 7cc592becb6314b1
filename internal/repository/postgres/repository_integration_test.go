//go:build integration

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/repository/postgres/...
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration tests")
	}
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgresConnection(ctx, url)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, Migrate(ctx, db))
	_, err = db.Exec(ctx, `TRUNCATE profiles, jobs`)
	require.NoError(t, err)
	return db
}

func rawSkill(t *testing.T, name, level string) (uuid.UUID, json.RawMessage) {
	t.Helper()
	s := domain.WithItemID(domain.Skill{Name: name, Level: level}, uuid.New())
	data, err := json.Marshal(s)
	require.NoError(t, err)
	return s.ID, data
}

func seedJob(t *testing.T, repo domain.JobRepository, title string, createdAt time.Time) *domain.Job {
	t.Helper()
	job := &domain.Job{
		ID:        uuid.New(),
		CompanyID: "company-1",
		JobDetails: domain.JobDetails{
			Title:       title,
			City:        "Lahore",
			Area:        "DHA",
			Description: "Build Go services",
			Positions:   1,
			Experience:  "2 years",
			SalaryMin:   100,
			SalaryMax:   200,
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), job))
	return job
}

func TestProfileRepo_SectionStatements(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()
	repo := NewProfileRepository(db)
	require.NoError(t, repo.Create(ctx, domain.NewProfile("emp-1", time.Now())))
	assert.ErrorIs(t, repo.Create(ctx, domain.NewProfile("emp-1", time.Now())), domain.ErrProfileExists)

	goID, goRaw := rawSkill(t, "Go", "Intermediate")
	sqlID, sqlRaw := rawSkill(t, "SQL", "Good")
	k8sID, k8sRaw := rawSkill(t, "Kubernetes", "Basic")
	for _, raw := range []json.RawMessage{goRaw, sqlRaw, k8sRaw} {
		require.NoError(t, repo.AppendSectionItem(ctx, "emp-1", domain.SectionSkills, raw))
	}

	t.Run("replace keeps position", func(t *testing.T) {
		_, expert := rawSkill(t, "SQL", "Expert")
		require.NoError(t, repo.ReplaceSectionItem(ctx, "emp-1", domain.SectionSkills, sqlID, expert))

		p, err := repo.GetByEmployeeID(ctx, "emp-1")
		require.NoError(t, err)
		require.Len(t, p.Skills, 3)
		assert.Equal(t, goID, p.Skills[0].ID)
		assert.Equal(t, sqlID, p.Skills[1].ID)
		assert.Equal(t, "Expert", p.Skills[1].Level)
		assert.Equal(t, k8sID, p.Skills[2].ID)
		assert.Empty(t, p.Projects)
	})

	t.Run("pull removes only the matching item", func(t *testing.T) {
		require.NoError(t, repo.PullSectionItem(ctx, "emp-1", domain.SectionSkills, goID))
		items, err := repo.ListSectionItems(ctx, "emp-1", domain.SectionSkills)
		require.NoError(t, err)
		require.Len(t, items, 2)

		require.NoError(t, repo.PullSectionItem(ctx, "emp-1", domain.SectionSkills, sqlID))
		require.NoError(t, repo.PullSectionItem(ctx, "emp-1", domain.SectionSkills, k8sID))
		items, err = repo.ListSectionItems(ctx, "emp-1", domain.SectionSkills)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("missing item and missing profile", func(t *testing.T) {
		assert.ErrorIs(t, repo.PullSectionItem(ctx, "emp-1", domain.SectionSkills, goID), domain.ErrSectionItemNotFound)
		assert.ErrorIs(t, repo.ReplaceSectionItem(ctx, "emp-1", domain.SectionSkills, goID, goRaw), domain.ErrSectionItemNotFound)
		assert.ErrorIs(t, repo.PullSectionItem(ctx, "ghost", domain.SectionSkills, goID), domain.ErrProfileNotFound)
		assert.ErrorIs(t, repo.AppendSectionItem(ctx, "ghost", domain.SectionSkills, goRaw), domain.ErrProfileNotFound)
		_, err := repo.ListSectionItems(ctx, "ghost", domain.SectionSkills)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
		assert.ErrorIs(t, repo.AppendSectionItem(ctx, "emp-1", domain.SectionKind("hobbies"), goRaw), domain.ErrUnknownSection)
	})
}

func TestProfileRepo_ConcurrentAppendsAllLand(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()
	repo := NewProfileRepository(db)
	require.NoError(t, repo.Create(ctx, domain.NewProfile("emp-1", time.Now())))

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		_, raw := rawSkill(t, "Go", "Good")
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.AppendSectionItem(ctx, "emp-1", domain.SectionSkills, raw)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	items, err := repo.ListSectionItems(ctx, "emp-1", domain.SectionSkills)
	require.NoError(t, err)
	assert.Len(t, items, writers)
}

func TestJobRepo_AppendApplicationStatement(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()
	repo := NewJobRepository(db)
	job := seedJob(t, repo, "Backend Engineer", time.Now())

	require.NoError(t, repo.AppendApplication(ctx, job.ID, domain.Application{EmployeeID: "emp-1", AppliedAt: time.Now()}))
	assert.ErrorIs(t, repo.AppendApplication(ctx, job.ID, domain.Application{EmployeeID: "emp-1"}), domain.ErrAlreadyApplied)
	assert.ErrorIs(t, repo.AppendApplication(ctx, uuid.New(), domain.Application{EmployeeID: "emp-1"}), domain.ErrJobNotFound)

	applied, err := repo.FetchAppliedByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, job.ID, applied[0].ID)

	stored, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Len(t, stored.AppliedBy, 1)
}

func TestJobRepo_ConcurrentApplyRecordsOnce(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()
	repo := NewJobRepository(db)
	job := seedJob(t, repo, "Backend Engineer", time.Now())

	const attempts = 10
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.AppendApplication(ctx, job.ID, domain.Application{EmployeeID: "emp-1", AppliedAt: time.Now()})
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrAlreadyApplied):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)

	stored, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Len(t, stored.AppliedBy, 1)
}

func TestJobRepo_FetchPaging(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()
	repo := NewJobRepository(db)
	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"a", "b", "c"} {
		seedJob(t, repo, title, base.Add(time.Duration(i)*time.Minute))
	}

	jobs, total, err := repo.Fetch(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, jobs, 2)
	assert.Equal(t, "c", jobs[0].Title)
	assert.Equal(t, "b", jobs[1].Title)

	jobs, _, err = repo.Fetch(ctx, 100, 5)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestJobRepo_SearchEscapesWildcards(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()
	repo := NewJobRepository(db)
	seedJob(t, repo, "Backend Engineer", time.Now())
	seedJob(t, repo, "100% Remote Go", time.Now())

	jobs, err := repo.Search(ctx, "%")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "100% Remote Go", jobs[0].Title)

	jobs, err = repo.Search(ctx, "backend")
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}
