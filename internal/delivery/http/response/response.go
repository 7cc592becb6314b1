package response

import (
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// RequestID returns the id stamped by the request id middleware, or "".
func RequestID(c *gin.Context) string {
	return c.GetString(string(domain.KeyRequestID))
}

func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: RequestID(c),
	})
}

// Error writes a failure envelope. details lands in the "error" field.
func Error(c *gin.Context, code int, message string, details interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     details,
		RequestID: RequestID(c),
	})
}

// Abort writes a failure envelope and stops the handler chain.
func Abort(c *gin.Context, code int, message string) {
	Error(c, code, message, nil)
	c.Abort()
}

// AppError renders err with its status and message. Field errors, when
// present, become the details.
func AppError(c *gin.Context, err *apperror.AppError) {
	var details interface{}
	if len(err.Fields) > 0 {
		details = err.Fields
	}
	Error(c, err.Code, err.Message, details)
}
