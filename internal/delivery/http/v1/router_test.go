package v1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-jobboard-backend/config"
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/events"
	"go-jobboard-backend/internal/repository/memory"
	"go-jobboard-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type server struct {
	t         *testing.T
	router    *gin.Engine
	directory *memory.Directory
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := memory.NewDirectory()
	profiles := memory.NewProfileRepository()
	jobs := memory.NewJobRepository()
	schemas := usecase.NewSchemaRegistry(validator.New())
	publisher := events.NopPublisher{}

	jobUC := usecase.NewJobUsecase(jobs, dir, schemas, publisher)
	router := v1.NewRouter(v1.RouterDeps{
		ProfileUC:     usecase.NewProfileUsecase(profiles, schemas, publisher),
		JobUC:         jobUC,
		ApplicationUC: usecase.NewApplicationUsecase(jobs, profiles, dir, schemas, publisher, 4),
		HealthUC:      usecase.NewHealthUsecase(nil),
		Config: &config.Config{
			JWTSecret:       testSecret,
			FrontendURL:     "http://localhost:3000",
			LogMode:         "production",
			OTelServiceName: "jobboard-test",
		},
	})
	return &server{t: t, router: router, directory: dir}
}

func (s *server) token(sub, role string) string {
	s.t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(s.t, err)
	return signed
}

func (s *server) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func (s *server) createProfile(employeeID string) {
	s.t.Helper()
	rec, _ := s.do(http.MethodPost, "/v1/profile", s.token(employeeID, domain.RoleEmployee),
		map[string]string{"employee_id": employeeID})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
}

func backendJob() map[string]interface{} {
	return map[string]interface{}{
		"title":       "Backend Engineer",
		"city":        "Lahore",
		"area":        "DHA",
		"description": "Build and run our Go services.",
		"positions":   2,
		"experience":  "3 years",
		"salary_min":  150000,
		"salary_max":  250000,
	}
}

func TestRouter_Health(t *testing.T) {
	s := newServer(t)
	rec, env := s.do(http.MethodGet, "/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRouter_ProfileLifecycle(t *testing.T) {
	s := newServer(t)
	e1 := s.token("E1", domain.RoleEmployee)

	s.createProfile("E1")
	rec, _ := s.do(http.MethodPost, "/v1/profile", e1, map[string]string{"employee_id": "E1"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = s.do(http.MethodPost, "/v1/profile/summary/E1", e1, map[string]string{"summary": "Go developer"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := s.do(http.MethodPost, "/v1/profile/addSkill/E1", e1, map[string]string{"name": "Go", "level": "Intermediate"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var skill domain.Skill
	require.NoError(t, json.Unmarshal(env.Data, &skill))
	require.NotEqual(t, "00000000-0000-0000-0000-000000000000", skill.ID.String())

	rec, _ = s.do(http.MethodPut, "/v1/profile/updateSkill/E1/"+skill.ID.String(), e1, map[string]string{"name": "Go", "level": "Expert"})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env = s.do(http.MethodGet, "/v1/profile/skills/E1", e1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var skills []domain.Skill
	require.NoError(t, json.Unmarshal(env.Data, &skills))
	require.Len(t, skills, 1)
	assert.Equal(t, "Expert", skills[0].Level)
	assert.Equal(t, skill.ID, skills[0].ID)

	rec, env = s.do(http.MethodGet, "/v1/profile/me/E1", e1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile domain.Profile
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "Go developer", profile.Summary)
	assert.Len(t, profile.Skills, 1)
	assert.Empty(t, profile.Projects)

	rec, _ = s.do(http.MethodDelete, "/v1/profile/deleteSkill/E1/"+skill.ID.String(), e1, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(http.MethodDelete, "/v1/profile/deleteSkill/E1/"+skill.ID.String(), e1, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(http.MethodDelete, "/v1/profile/E1", e1, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(http.MethodGet, "/v1/profile/me/E1", e1, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ProfileAccess(t *testing.T) {
	s := newServer(t)
	s.createProfile("E1")

	rec, _ := s.do(http.MethodGet, "/v1/profile/me/E1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(http.MethodGet, "/v1/profile/me/E1", s.token("E2", domain.RoleEmployee), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(http.MethodPost, "/v1/profile", s.token("E2", domain.RoleEmployee), map[string]string{"employee_id": "E3"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(http.MethodGet, "/v1/profile/me/E1", s.token("ops", domain.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_SectionValidation(t *testing.T) {
	s := newServer(t)
	s.createProfile("E1")
	e1 := s.token("E1", domain.RoleEmployee)

	rec, env := s.do(http.MethodPost, "/v1/profile/addEducation/E1", e1, map[string]string{
		"institute_name":  "LUMS",
		"programme":       "BSc",
		"major":           "Computer Science",
		"completion_year": "20",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Contains(t, string(env.Error), "completion_year")

	rec, _ = s.do(http.MethodPut, "/v1/profile/updateProject/E1/not-a-uuid", e1, map[string]string{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/profile/addLanguage/E1", strings.NewReader("{"))
	req.Header.Set("Authorization", "Bearer "+e1)
	req.Header.Set("Content-Type", "application/json")
	raw := httptest.NewRecorder()
	s.router.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)

	rec, env = s.do(http.MethodGet, "/v1/profile/languages/E1", e1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", string(env.Data))
}

func TestRouter_JobApplicationFlow(t *testing.T) {
	s := newServer(t)
	s.directory.AddCompany("C1")
	s.directory.AddCompany("C2")
	s.directory.AddEmployee(domain.Employee{
		ID:          "E1",
		Name:        "Ayesha Khan",
		Email:       "ayesha@example.com",
		PhoneNumber: "+92 300 0000000",
		Password:    "$2a$10$hashedcredential",
	})
	s.createProfile("E1")

	c1 := s.token("C1", domain.RoleCompany)
	e1 := s.token("E1", domain.RoleEmployee)

	rec, _ := s.do(http.MethodPost, "/v1/job", e1, backendJob())
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env := s.do(http.MethodPost, "/v1/job", c1, backendJob())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var job domain.Job
	require.NoError(t, json.Unmarshal(env.Data, &job))
	assert.Equal(t, "C1", job.CompanyID)
	jobPath := "/v1/job/" + job.ID.String()

	apply := map[string]string{"job_id": job.ID.String(), "employee_id": "E1"}
	rec, _ = s.do(http.MethodPut, "/v1/job/applyForJob", e1, apply)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec, _ = s.do(http.MethodPut, "/v1/job/applyForJob", e1, apply)
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec, _ = s.do(http.MethodPut, "/v1/job/applyForJob", s.token("E2", domain.RoleEmployee), apply)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	t.Run("public details hide applicants", func(t *testing.T) {
		rec, env := s.do(http.MethodGet, jobPath, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, string(env.Data), "applied_by")
	})

	t.Run("applied jobs", func(t *testing.T) {
		rec, env := s.do(http.MethodGet, "/v1/job/appliedJobs/E1", e1, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var jobs []domain.Job
		require.NoError(t, json.Unmarshal(env.Data, &jobs))
		require.Len(t, jobs, 1)
		assert.Equal(t, "Backend Engineer", jobs[0].Title)
		assert.NotContains(t, string(env.Data), "applied_by")
	})

	t.Run("company sees applicants", func(t *testing.T) {
		rec, env := s.do(http.MethodGet, "/v1/job/company/C1", c1, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(env.Data), `"employee_id":"E1"`)

		rec, env = s.do(http.MethodGet, "/v1/job/collectCV/"+job.ID.String(), c1, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var applicants []domain.Applicant
		require.NoError(t, json.Unmarshal(env.Data, &applicants))
		require.Len(t, applicants, 1)
		assert.Equal(t, "Ayesha Khan", applicants[0].Employee.Name)
		assert.NotContains(t, rec.Body.String(), "password")
		assert.NotContains(t, rec.Body.String(), "hashedcredential")
	})

	t.Run("other company is forbidden", func(t *testing.T) {
		c2 := s.token("C2", domain.RoleCompany)
		rec, _ := s.do(http.MethodGet, "/v1/job/collectCV/"+job.ID.String(), c2, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		rec, _ = s.do(http.MethodPut, jobPath, c2, backendJob())
		assert.Equal(t, http.StatusForbidden, rec.Code)
		rec, _ = s.do(http.MethodGet, "/v1/job/company/C1", c2, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("csv export", func(t *testing.T) {
		rec, _ := s.do(http.MethodGet, "/v1/job/collectCV/"+job.ID.String()+"/export?format=csv", c1, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment; filename=applicants_")
		assert.Contains(t, rec.Body.String(), "Ayesha Khan")

		rec, _ = s.do(http.MethodGet, "/v1/job/collectCV/"+job.ID.String()+"/export?format=pdf", c1, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("search", func(t *testing.T) {
		rec, env := s.do(http.MethodGet, "/v1/job/searchjob/lahore", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var jobs []domain.Job
		require.NoError(t, json.Unmarshal(env.Data, &jobs))
		assert.Len(t, jobs, 1)

		rec, env = s.do(http.MethodGet, "/v1/job/searchjob/karachi", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", string(env.Data))
	})

	t.Run("update keeps applicants and delete", func(t *testing.T) {
		details := backendJob()
		details["title"] = "Senior Backend Engineer"
		rec, env := s.do(http.MethodPut, jobPath, c1, details)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var updated domain.Job
		require.NoError(t, json.Unmarshal(env.Data, &updated))
		assert.Equal(t, "Senior Backend Engineer", updated.Title)
		assert.Len(t, updated.AppliedBy, 1)

		rec, _ = s.do(http.MethodDelete, jobPath, c1, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		rec, _ = s.do(http.MethodGet, jobPath, "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRouter_AdminCreatesJobForCompany(t *testing.T) {
	s := newServer(t)
	s.directory.AddCompany("C1")
	admin := s.token("ops", domain.RoleAdmin)

	rec, _ := s.do(http.MethodPost, "/v1/job", admin, backendJob())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := backendJob()
	body["company_id"] = "C1"
	rec, env := s.do(http.MethodPost, "/v1/job", admin, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var job domain.Job
	require.NoError(t, json.Unmarshal(env.Data, &job))
	assert.Equal(t, "C1", job.CompanyID)
}

func TestRouter_ListJobs(t *testing.T) {
	s := newServer(t)
	s.directory.AddCompany("C1")
	c1 := s.token("C1", domain.RoleCompany)
	for i := 0; i < 3; i++ {
		rec, _ := s.do(http.MethodPost, "/v1/job", c1, backendJob())
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, env := s.do(http.MethodGet, "/v1/job?page=1&page_size=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Jobs  []domain.Job `json:"jobs"`
		Total int64        `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Jobs, 2)
	assert.EqualValues(t, 3, page.Total)

	rec, env = s.do(http.MethodGet, "/v1/job?page=9223372036854775807&page_size=10", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
}
