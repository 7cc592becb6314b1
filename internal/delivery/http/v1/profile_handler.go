package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

type CreateProfileRequest struct {
	EmployeeID string `json:"employee_id"`
}

func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	profiles := protected.Group("/profile")
	{
		profiles.POST("", handler.Create)
		profiles.GET("/me/:employeeId", middleware.RequireSelf("employeeId"), handler.GetMine)
		profiles.DELETE("/:employeeId", middleware.RequireSelf("employeeId"), handler.Delete)
		profiles.POST("/summary/:employeeId", middleware.RequireSelf("employeeId"), handler.UpdateSummary)
	}

	registerSection(profiles, "Project", domain.SectionProjects, profileUC.Projects())
	registerSection(profiles, "Experience", domain.SectionExperiences, profileUC.Experiences())
	registerSection(profiles, "Education", domain.SectionEducations, profileUC.Educations())
	registerSection(profiles, "Skill", domain.SectionSkills, profileUC.Skills())
	registerSection(profiles, "Language", domain.SectionLanguages, profileUC.Languages())
}

// Create godoc
// @Summary      Create profile
// @Description  Create the empty profile of an employee. Called once at registration.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      CreateProfileRequest  true  "Employee"
// @Success      201   {object}  response.Response{data=domain.Profile}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /profile [post]
// @Security     BearerAuth
func (h *ProfileHandler) Create(c *gin.Context) {
	var req CreateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	if !middleware.IsSelfOrAdmin(c, req.EmployeeID) {
		c.Error(apperror.Forbidden("You can only create your own profile"))
		return
	}

	profile, err := h.profileUC.CreateForEmployee(c.Request.Context(), req.EmployeeID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Profile created", profile)
}

// GetMine godoc
// @Summary      Get profile
// @Description  Get the full profile of the calling employee
// @Tags         profile
// @Produce      json
// @Param        employeeId  path      string  true  "Employee ID"
// @Success      200         {object}  response.Response{data=domain.Profile}
// @Failure      403         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /profile/me/{employeeId} [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetMine(c *gin.Context) {
	profile, err := h.profileUC.GetByEmployee(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// UpdateSummary godoc
// @Summary      Update summary
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        employeeId  path      string               true  "Employee ID"
// @Param        body        body      domain.SummaryInput  true  "Summary"
// @Success      200         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /profile/summary/{employeeId} [post]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateSummary(c *gin.Context) {
	var input domain.SummaryInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.profileUC.UpdateSummary(c.Request.Context(), c.Param("employeeId"), input); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Summary updated", nil)
}

// Delete godoc
// @Summary      Delete profile
// @Description  Remove the profile together with every section item
// @Tags         profile
// @Produce      json
// @Param        employeeId  path      string  true  "Employee ID"
// @Success      200         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /profile/{employeeId} [delete]
// @Security     BearerAuth
func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.profileUC.DeleteForEmployee(c.Request.Context(), c.Param("employeeId")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile deleted", nil)
}
