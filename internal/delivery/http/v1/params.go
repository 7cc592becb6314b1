package v1

import (
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// bindJSON decodes the request body into dst. Field rules are checked by
// the usecase, so only malformed JSON fails here.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return false
	}
	return true
}

func uuidParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.Error(apperror.BadRequest("Invalid " + label + " ID format"))
		return uuid.Nil, false
	}
	return id, true
}

func callerID(c *gin.Context) string {
	return c.GetString(string(domain.KeyUserID))
}

func callerRole(c *gin.Context) string {
	return c.GetString(string(domain.KeyUserRole))
}
