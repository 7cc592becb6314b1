package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/repository/memory"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProfileUsecase(t *testing.T, employeeIDs ...string) domain.ProfileUsecase {
	t.Helper()
	uc := usecase.NewProfileUsecase(memory.NewProfileRepository(), usecase.NewSchemaRegistry(validator.New()), nil)
	for _, id := range employeeIDs {
		_, err := uc.CreateForEmployee(context.Background(), id)
		require.NoError(t, err)
	}
	return uc
}

func assertKind(t *testing.T, err error, kind apperror.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, apperror.KindOf(err), "unexpected error: %v", err)
}

func TestProfile_CreateForEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create an empty profile", func(t *testing.T) {
		uc := newProfileUsecase(t)
		p, err := uc.CreateForEmployee(ctx, "emp-1")
		require.NoError(t, err)
		assert.Equal(t, "emp-1", p.EmployeeID)
		assert.NotEqual(t, uuid.Nil, p.ID)

		got, err := uc.GetByEmployee(ctx, "emp-1")
		require.NoError(t, err)
		data, err := json.Marshal(got)
		require.NoError(t, err)
		for _, kind := range domain.SectionKinds {
			assert.Contains(t, string(data), `"`+string(kind)+`":[]`)
		}
	})

	t.Run("Should conflict on second profile", func(t *testing.T) {
		uc := newProfileUsecase(t, "emp-1")
		_, err := uc.CreateForEmployee(ctx, "emp-1")
		assertKind(t, err, apperror.KindConflict)
		assert.True(t, errors.Is(err, domain.ErrProfileExists))
	})

	t.Run("Should reject blank employee id", func(t *testing.T) {
		uc := newProfileUsecase(t)
		_, err := uc.CreateForEmployee(ctx, "  ")
		assertKind(t, err, apperror.KindBadRequest)
	})

	t.Run("Should publish profile_created", func(t *testing.T) {
		pub := new(MockPublisher)
		pub.On("Publish", mock.Anything, eventOfType(domain.EventProfileCreated)).Return(nil).Once()
		uc := usecase.NewProfileUsecase(memory.NewProfileRepository(), usecase.NewSchemaRegistry(validator.New()), pub)

		_, err := uc.CreateForEmployee(ctx, "emp-1")
		require.NoError(t, err)
		pub.AssertExpectations(t)
	})

	t.Run("Should succeed when publishing fails", func(t *testing.T) {
		pub := new(MockPublisher)
		pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))
		uc := usecase.NewProfileUsecase(memory.NewProfileRepository(), usecase.NewSchemaRegistry(validator.New()), pub)

		_, err := uc.CreateForEmployee(ctx, "emp-1")
		assert.NoError(t, err)
	})
}

func TestProfile_GetByEmployee(t *testing.T) {
	uc := newProfileUsecase(t)
	_, err := uc.GetByEmployee(context.Background(), "ghost")
	assertKind(t, err, apperror.KindNotFound)
	assert.True(t, errors.Is(err, domain.ErrProfileNotFound))
}

func TestProfile_UpdateSummary(t *testing.T) {
	ctx := context.Background()
	uc := newProfileUsecase(t, "emp-1")

	t.Run("Should store summary", func(t *testing.T) {
		require.NoError(t, uc.UpdateSummary(ctx, "emp-1", domain.SummaryInput{Summary: "Backend developer"}))
		p, err := uc.GetByEmployee(ctx, "emp-1")
		require.NoError(t, err)
		assert.Equal(t, "Backend developer", p.Summary)
	})

	t.Run("Should reject blank summary", func(t *testing.T) {
		err := uc.UpdateSummary(ctx, "emp-1", domain.SummaryInput{Summary: "   "})
		assertKind(t, err, apperror.KindValidation)
	})

	t.Run("Should reject overlong summary", func(t *testing.T) {
		err := uc.UpdateSummary(ctx, "emp-1", domain.SummaryInput{Summary: strings.Repeat("a", 2001)})
		assertKind(t, err, apperror.KindValidation)
	})

	t.Run("Should fail for missing profile", func(t *testing.T) {
		err := uc.UpdateSummary(ctx, "ghost", domain.SummaryInput{Summary: "x"})
		assertKind(t, err, apperror.KindNotFound)
	})
}

func TestProfile_DeleteForEmployee(t *testing.T) {
	ctx := context.Background()
	uc := newProfileUsecase(t, "emp-1")

	_, err := uc.Skills().Add(ctx, "emp-1", domain.Skill{Name: "Go", Level: "Expert"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteForEmployee(ctx, "emp-1"))
	_, err = uc.GetByEmployee(ctx, "emp-1")
	assertKind(t, err, apperror.KindNotFound)
	_, err = uc.Skills().List(ctx, "emp-1")
	assertKind(t, err, apperror.KindNotFound)

	assertKind(t, uc.DeleteForEmployee(ctx, "emp-1"), apperror.KindNotFound)
}

func TestSkills_IntermediateToExpert(t *testing.T) {
	ctx := context.Background()
	uc := newProfileUsecase(t, "emp-1")
	skills := uc.Skills()

	added, err := skills.Add(ctx, "emp-1", domain.Skill{Name: "Go", Level: "Intermediate"})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, added.ID)
	assert.Equal(t, "Go", added.Name)

	list, err := skills.List(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, added, list[0])

	require.NoError(t, skills.Update(ctx, "emp-1", added.ID, domain.Skill{Name: "Go", Level: "Expert"}))
	list, err = skills.List(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, added.ID, list[0].ID)
	assert.Equal(t, "Expert", list[0].Level)

	require.NoError(t, skills.Remove(ctx, "emp-1", added.ID))
	list, err = skills.List(ctx, "emp-1")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	err = skills.Remove(ctx, "emp-1", added.ID)
	assertKind(t, err, apperror.KindNotFound)
	assert.True(t, errors.Is(err, domain.ErrSectionItemNotFound))
	assert.Equal(t, "Skill not found", err.Error())
}

func TestSectionStore_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("Should mint unique ids", func(t *testing.T) {
		uc := newProfileUsecase(t, "emp-1")
		seen := map[uuid.UUID]bool{}
		for _, name := range []string{"Go", "SQL", "Kafka"} {
			s, err := uc.Skills().Add(ctx, "emp-1", domain.Skill{Name: name, Level: "Good"})
			require.NoError(t, err)
			assert.False(t, seen[s.ID])
			seen[s.ID] = true
		}
	})

	t.Run("Should ignore a client supplied id", func(t *testing.T) {
		uc := newProfileUsecase(t, "emp-1")
		forged := uuid.New()
		in := domain.Language{Name: "Urdu", Level: "Native"}
		in.ID = forged

		out, err := uc.Languages().Add(ctx, "emp-1", in)
		require.NoError(t, err)
		assert.NotEqual(t, forged, out.ID)
	})

	t.Run("Should reject long project description and keep profile unchanged", func(t *testing.T) {
		uc := newProfileUsecase(t, "emp-1")
		_, err := uc.Projects().Add(ctx, "emp-1", domain.Project{
			Name:        "Portal",
			URL:         "https://example.com",
			Description: strings.Repeat("d", 81),
		})
		assertKind(t, err, apperror.KindValidation)

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		require.NotEmpty(t, appErr.Fields)
		assert.Equal(t, "description", appErr.Fields[0].Field)

		list, err := uc.Projects().List(ctx, "emp-1")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Should reject a non numeric completion year", func(t *testing.T) {
		uc := newProfileUsecase(t, "emp-1")
		_, err := uc.Educations().Add(ctx, "emp-1", domain.Education{
			InstituteName:  "LUMS",
			Programme:      "BSc",
			Major:          "CS",
			CompletionYear: "20x1",
		})
		assertKind(t, err, apperror.KindValidation)
	})

	t.Run("Should fail for missing profile", func(t *testing.T) {
		uc := newProfileUsecase(t)
		_, err := uc.Skills().Add(ctx, "ghost", domain.Skill{Name: "Go", Level: "Expert"})
		assertKind(t, err, apperror.KindNotFound)
		assert.True(t, errors.Is(err, domain.ErrProfileNotFound))
	})

	t.Run("Should keep every concurrent add", func(t *testing.T) {
		uc := newProfileUsecase(t, "emp-1")
		const n = 50
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := uc.Skills().Add(ctx, "emp-1", domain.Skill{Name: "Go", Level: "Expert"})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		list, err := uc.Skills().List(ctx, "emp-1")
		require.NoError(t, err)
		assert.Len(t, list, n)
		ids := map[uuid.UUID]bool{}
		for _, s := range list {
			ids[s.ID] = true
		}
		assert.Len(t, ids, n)
	})
}

func TestSectionStore_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Should keep position and id", func(t *testing.T) {
		uc := newProfileUsecase(t, "emp-1")
		var ids []uuid.UUID
		for _, title := range []string{"Intern", "Engineer", "Lead"} {
			e, err := uc.Experiences().Add(ctx, "emp-1", experience(title))
			require.NoError(t, err)
			ids = append(ids, e.ID)
		}

		update := experience("Senior Engineer")
		update.ID = uuid.New()
		require.NoError(t, uc.Experiences().Update(ctx, "emp-1", ids[1], update))

		list, err := uc.Experiences().List(ctx, "emp-1")
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{"Intern", "Senior Engineer", "Lead"}, []string{list[0].JobTitle, list[1].JobTitle, list[2].JobTitle})
		assert.Equal(t, ids, []uuid.UUID{list[0].ID, list[1].ID, list[2].ID})
	})

	t.Run("Should fail for unknown item", func(t *testing.T) {
		uc := newProfileUsecase(t, "emp-1")
		_, err := uc.Experiences().Add(ctx, "emp-1", experience("Intern"))
		require.NoError(t, err)

		err = uc.Experiences().Update(ctx, "emp-1", uuid.New(), experience("Lead"))
		assertKind(t, err, apperror.KindNotFound)
		assert.Equal(t, "Experience not found", err.Error())

		list, err := uc.Experiences().List(ctx, "emp-1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Intern", list[0].JobTitle)
	})

	t.Run("Should fail for missing profile", func(t *testing.T) {
		uc := newProfileUsecase(t)
		err := uc.Experiences().Update(ctx, "ghost", uuid.New(), experience("Lead"))
		assertKind(t, err, apperror.KindNotFound)
		assert.True(t, errors.Is(err, domain.ErrProfileNotFound))
	})

	t.Run("Should validate before touching storage", func(t *testing.T) {
		repo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(repo, usecase.NewSchemaRegistry(validator.New()), nil)

		err := uc.Skills().Update(ctx, "emp-1", uuid.New(), domain.Skill{Name: "Go"})
		assertKind(t, err, apperror.KindValidation)
		repo.AssertNotCalled(t, "ReplaceSectionItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProfile_SectionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	uc := newProfileUsecase(t, "emp-1")

	project, err := uc.Projects().Add(ctx, "emp-1", domain.Project{Name: "Portal", URL: "https://example.com/portal", Description: "Job portal"})
	require.NoError(t, err)
	exp, err := uc.Experiences().Add(ctx, "emp-1", experience("Engineer"))
	require.NoError(t, err)
	edu, err := uc.Educations().Add(ctx, "emp-1", domain.Education{InstituteName: "LUMS", Programme: "BSc", Major: "CS", CompletionYear: "2021"})
	require.NoError(t, err)
	skill, err := uc.Skills().Add(ctx, "emp-1", domain.Skill{Name: "Go", Level: "Expert"})
	require.NoError(t, err)
	lang, err := uc.Languages().Add(ctx, "emp-1", domain.Language{Name: "English", Level: "Fluent"})
	require.NoError(t, err)

	p, err := uc.GetByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Project{project}, p.Projects)
	assert.Equal(t, []domain.Experience{exp}, p.Experiences)
	assert.Equal(t, []domain.Education{edu}, p.Educations)
	assert.Equal(t, []domain.Skill{skill}, p.Skills)
	assert.Equal(t, []domain.Language{lang}, p.Languages)
}

func TestSectionStore_RepositoryFailure(t *testing.T) {
	repo := new(MockProfileRepo)
	repo.On("AppendSectionItem", mock.Anything, "emp-1", domain.SectionSkills, mock.Anything).Return(errors.New("connection reset"))
	uc := usecase.NewProfileUsecase(repo, usecase.NewSchemaRegistry(validator.New()), nil)

	_, err := uc.Skills().Add(context.Background(), "emp-1", domain.Skill{Name: "Go", Level: "Expert"})
	assertKind(t, err, apperror.KindInternal)
	assert.Equal(t, "Internal Server Error", err.Error())
	repo.AssertExpectations(t)
}

func experience(title string) domain.Experience {
	return domain.Experience{
		JobTitle:    title,
		Company:     "Acme",
		Industry:    "Software",
		Location:    "Lahore",
		StartDate:   "2020-01",
		EndDate:     "2022-06",
		Description: "Built APIs",
	}
}
