package middleware

import (
	"strings"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const headerRequestID = "X-Request-Id"

// RequestID reuses an inbound X-Request-Id or mints one, and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := strings.TrimSpace(c.GetHeader(headerRequestID))
		if reqID == "" || len(reqID) > 128 {
			reqID = uuid.New().String()
		}
		c.Set(string(domain.KeyRequestID), reqID)
		c.Writer.Header().Set(headerRequestID, reqID)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return response.RequestID(c)
}
