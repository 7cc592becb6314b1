package v1

import (
	"net/http"
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type RouterDeps struct {
	ProfileUC     domain.ProfileUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	HealthUC      usecase.HealthUsecase
	// RateLimiter is optional; without it no limits are enforced.
	RateLimiter *middleware.RateLimiter
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config

	// Global Middlewares
	r.Use(middleware.CORS(cfg.FrontendURL, cfg.CORSOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	if cfg.LogMode != "production" {
		r.Use(gin.Logger())
	}
	r.Use(otelgin.Middleware(cfg.OTelServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	var applyLimit gin.HandlerFunc
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))
		applyLimit = deps.RateLimiter.Middleware(middleware.ApplyRateLimitConfig(cfg.RateLimitApplyThreshold, window))
	}

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		if deps.HealthUC == nil {
			response.Success(c, http.StatusOK, "System operational", nil)
			return
		}
		status, healthy := deps.HealthUC.Check(c.Request.Context())
		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		NewProfileHandler(protected, deps.ProfileUC)
		NewJobHandler(v1, protected, deps.JobUC)
		NewApplicationHandler(protected, deps.ApplicationUC, deps.JobUC, applyLimit)
	}

	return r
}
