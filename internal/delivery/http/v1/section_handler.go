package v1

import (
	"net/http"
	"strings"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// sectionHandler serves the list/add/update/delete routes of one profile
// section. The five sections share it and differ only in T and naming.
type sectionHandler[T domain.Section] struct {
	label   string
	service domain.SectionService[T]
}

// registerSection mounts, for label "Skill" and kind "skills":
//
//	GET    /profile/skills/:employeeId
//	POST   /profile/addSkill/:employeeId
//	PUT    /profile/updateSkill/:employeeId/:itemId
//	DELETE /profile/deleteSkill/:employeeId/:itemId
func registerSection[T domain.Section](profiles *gin.RouterGroup, label string, kind domain.SectionKind, service domain.SectionService[T]) {
	h := &sectionHandler[T]{label: label, service: service}
	self := middleware.RequireSelf("employeeId")

	profiles.GET("/"+string(kind)+"/:employeeId", self, h.List)
	profiles.POST("/add"+label+"/:employeeId", self, h.Add)
	profiles.PUT("/update"+label+"/:employeeId/:itemId", self, h.Update)
	profiles.DELETE("/delete"+label+"/:employeeId/:itemId", self, h.Remove)
}

func (h *sectionHandler[T]) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, h.label+" list", items)
}

func (h *sectionHandler[T]) Add(c *gin.Context) {
	var item T
	if !bindJSON(c, &item) {
		return
	}

	created, err := h.service.Add(c.Request.Context(), c.Param("employeeId"), item)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, h.label+" added", created)
}

func (h *sectionHandler[T]) Update(c *gin.Context) {
	itemID, ok := uuidParam(c, "itemId", strings.ToLower(h.label))
	if !ok {
		return
	}
	var item T
	if !bindJSON(c, &item) {
		return
	}

	if err := h.service.Update(c.Request.Context(), c.Param("employeeId"), itemID, item); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, h.label+" updated", nil)
}

func (h *sectionHandler[T]) Remove(c *gin.Context) {
	itemID, ok := uuidParam(c, "itemId", strings.ToLower(h.label))
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), c.Param("employeeId"), itemID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, h.label+" deleted", nil)
}
