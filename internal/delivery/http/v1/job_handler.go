package v1

import (
	"net/http"
	"strconv"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

// CreateJobRequest carries the job details. CompanyID is read only for
// admin callers; companies always post as themselves.
type CreateJobRequest struct {
	domain.JobDetails
	CompanyID string `json:"company_id,omitempty"`
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	publicJobs := public.Group("/job")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/:jobId", handler.GetDetails)
		publicJobs.GET("/searchjob/:query", handler.Search)
	}

	jobs := protected.Group("/job")
	{
		owners := middleware.RequireRole(domain.RoleCompany, domain.RoleAdmin)
		jobs.POST("", owners, handler.Create)
		jobs.PUT("/:jobId", owners, handler.Update)
		jobs.DELETE("/:jobId", owners, handler.Delete)
		jobs.GET("/company/:companyId", middleware.RequireSelf("companyId"), handler.ListByCompany)
	}
}

// Create godoc
// @Summary      Create a job
// @Description  Post a new job for the calling company
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body  body      CreateJobRequest  true  "Job details"
// @Success      201   {object}  response.Response{data=domain.Job}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /job [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	companyID := callerID(c)
	if callerRole(c) == domain.RoleAdmin {
		if req.CompanyID == "" {
			c.Error(apperror.BadRequest("company_id is required"))
			return
		}
		companyID = req.CompanyID
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), companyID, req.JobDetails)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// List godoc
// @Summary      List jobs
// @Description  Newest jobs first, without applicant data
// @Tags         jobs
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /job [get]
func (h *JobHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	jobs, total, err := h.jobUC.ListJobs(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job list", gin.H{
		"jobs":      jobs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetDetails godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200    {object}  response.Response{data=domain.Job}
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /job/{jobId} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, ok := uuidParam(c, "jobId", "job")
	if !ok {
		return
	}

	job, err := h.jobUC.GetJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", job.WithoutApplications())
}

// Search godoc
// @Summary      Search jobs
// @Description  Case-insensitive match on title, city or area
// @Tags         jobs
// @Produce      json
// @Param        query  path      string  true  "Search text"
// @Success      200    {object}  response.Response{data=[]domain.Job}
// @Failure      400    {object}  response.Response
// @Router       /job/searchjob/{query} [get]
func (h *JobHandler) Search(c *gin.Context) {
	jobs, err := h.jobUC.SearchJobs(c.Request.Context(), c.Param("query"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Search results", jobs)
}

// ListByCompany godoc
// @Summary      List company jobs
// @Description  Every job of the company, including who applied
// @Tags         jobs
// @Produce      json
// @Param        companyId  path      string  true  "Company ID"
// @Success      200        {object}  response.Response{data=[]domain.Job}
// @Failure      403        {object}  response.Response
// @Router       /job/company/{companyId} [get]
// @Security     BearerAuth
func (h *JobHandler) ListByCompany(c *gin.Context) {
	jobs, err := h.jobUC.ListJobsByCompany(c.Request.Context(), c.Param("companyId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Company jobs", jobs)
}

// Update godoc
// @Summary      Update a job
// @Description  Replace the details of a job owned by the caller
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        jobId  path      string             true  "Job ID"
// @Param        body   body      domain.JobDetails  true  "Job details"
// @Success      200    {object}  response.Response{data=domain.Job}
// @Failure      400    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /job/{jobId} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "jobId", "job")
	if !ok {
		return
	}
	var details domain.JobDetails
	if !bindJSON(c, &details) {
		return
	}
	if _, ok := ownedJob(c, h.jobUC, id); !ok {
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), id, details)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated", job)
}

// Delete godoc
// @Summary      Delete a job
// @Tags         jobs
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /job/{jobId} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "jobId", "job")
	if !ok {
		return
	}
	if _, ok := ownedJob(c, h.jobUC, id); !ok {
		return
	}

	if err := h.jobUC.DeleteJob(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deleted", nil)
}

// ownedJob loads the job and checks the caller owns it or is an admin.
func ownedJob(c *gin.Context, jobUC domain.JobUsecase, id uuid.UUID) (*domain.Job, bool) {
	job, err := jobUC.GetJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return nil, false
	}
	if !middleware.IsSelfOrAdmin(c, job.CompanyID) {
		c.Error(apperror.Forbidden("You can only manage your own jobs"))
		return nil, false
	}
	return job, true
}
