package v1

import (
	"net/http"
	"strings"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
	jobUC         domain.JobUsecase
}

// NewApplicationHandler mounts the linker routes. applyLimit guards the
// apply endpoint and may be nil.
func NewApplicationHandler(
	protected *gin.RouterGroup,
	applicationUC domain.ApplicationUsecase,
	jobUC domain.JobUsecase,
	applyLimit gin.HandlerFunc,
) {
	handler := &ApplicationHandler{applicationUC: applicationUC, jobUC: jobUC}

	apply := []gin.HandlerFunc{middleware.RequireRole(domain.RoleEmployee, domain.RoleAdmin)}
	if applyLimit != nil {
		apply = append(apply, applyLimit)
	}
	apply = append(apply, handler.Apply)

	jobs := protected.Group("/job")
	{
		jobs.PUT("/applyForJob", apply...)
		jobs.GET("/appliedJobs/:employeeId", middleware.RequireSelf("employeeId"), handler.ListApplied)

		owners := middleware.RequireRole(domain.RoleCompany, domain.RoleAdmin)
		jobs.GET("/collectCV/:jobId", owners, handler.CollectCV)
		jobs.GET("/collectCV/:jobId/export", owners, handler.ExportCV)
	}
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Record the calling employee as an applicant. Applying twice is rejected.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body      domain.ApplyInput  true  "Application"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Router       /job/applyForJob [put]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var input domain.ApplyInput
	if !bindJSON(c, &input) {
		return
	}
	if !middleware.IsSelfOrAdmin(c, strings.TrimSpace(input.EmployeeID)) {
		c.Error(apperror.Forbidden("You can only apply as yourself"))
		return
	}

	if err := h.applicationUC.Apply(c.Request.Context(), input); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application submitted", nil)
}

// ListApplied godoc
// @Summary      List applied jobs
// @Description  Jobs the employee applied to, without applicant data
// @Tags         applications
// @Produce      json
// @Param        employeeId  path      string  true  "Employee ID"
// @Success      200         {object}  response.Response{data=[]domain.Job}
// @Failure      403         {object}  response.Response
// @Router       /job/appliedJobs/{employeeId} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListApplied(c *gin.Context) {
	jobs, err := h.applicationUC.ListAppliedJobs(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applied jobs", jobs)
}

// CollectCV godoc
// @Summary      Collect applicant CVs
// @Description  Redacted employee record and full profile of every applicant, in application order
// @Tags         applications
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200    {object}  response.Response{data=[]domain.Applicant}
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /job/collectCV/{jobId} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) CollectCV(c *gin.Context) {
	id, ok := uuidParam(c, "jobId", "job")
	if !ok {
		return
	}
	if _, ok := ownedJob(c, h.jobUC, id); !ok {
		return
	}

	applicants, err := h.applicationUC.ListApplicantProfiles(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applicants", applicants)
}

// ExportCV godoc
// @Summary      Export applicants
// @Description  Download the applicant list as a spreadsheet
// @Tags         applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/csv
// @Param        jobId   path      string  true   "Job ID"
// @Param        format  query     string  false  "xlsx (default) or csv"
// @Success      200     {file}    binary
// @Failure      400     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /job/collectCV/{jobId}/export [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ExportCV(c *gin.Context) {
	id, ok := uuidParam(c, "jobId", "job")
	if !ok {
		return
	}
	if _, ok := ownedJob(c, h.jobUC, id); !ok {
		return
	}

	data, filename, err := h.applicationUC.ExportApplicants(c.Request.Context(), id, c.Query("format"))
	if err != nil {
		c.Error(err)
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if strings.HasSuffix(filename, "."+domain.ExportFormatCSV) {
		contentType = "text/csv"
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
