package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the frontend origin plus any extra configured origins. Each
// origin must carry an http or https scheme.
func CORS(frontendURL string, extraOrigins []string) gin.HandlerFunc {
	origins := make([]string, 0, len(extraOrigins)+1)
	for _, o := range append([]string{frontendURL}, extraOrigins...) {
		if o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", headerRequestID},
		ExposeHeaders:    []string{headerRequestID, "Content-Disposition", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
