package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/events"
	"go-jobboard-backend/internal/repository/memory"
	"go-jobboard-backend/internal/repository/postgres"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/logger"
	redisclient "go-jobboard-backend/pkg/redis"
	"go-jobboard-backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// app owns the router and everything that must be released on shutdown.
type app struct {
	router  *gin.Engine
	closers []func(context.Context) error
}

type storage struct {
	profiles  domain.ProfileRepository
	jobs      domain.JobRepository
	employees domain.EmployeeDirectory
	companies domain.CompanyDirectory
}

func buildApp(ctx context.Context, cfg *config.Config, seedPath string) (*app, error) {
	a := &app{}
	checks := map[string]usecase.HealthCheck{}

	// 1. Tracing
	shutdownTracing, err := tracing.Init(ctx, logger.Log, tracing.Config{
		Enabled:     cfg.OTelEnabled,
		ServiceName: cfg.OTelServiceName,
		Environment: cfg.LogMode,
		Endpoint:    cfg.OTelEndpoint,
		Insecure:    cfg.OTelInsecure,
		SampleRatio: cfg.OTelSampleRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init tracing: %w", err)
	}
	a.closers = append(a.closers, shutdownTracing)

	// 2. Storage
	store, err := a.openStorage(ctx, cfg, seedPath, checks)
	if err != nil {
		a.Close()
		return nil, err
	}

	// 3. Redis for rate limiting; the limiter falls back to memory without it
	rdb, err := redisclient.New(ctx, redisclient.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	})
	switch {
	case errors.Is(err, redisclient.ErrNotConfigured):
	case err != nil:
		logger.Log.Warn("Redis unavailable, rate limiting uses in-memory store", "error", err)
	default:
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
	}

	// 4. Events
	var publisher domain.EventPublisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger.Log)
		publisher = kp
		a.closers = append(a.closers, func(context.Context) error { return kp.Close() })
	}

	// 5. UseCases
	schemas := usecase.NewSchemaRegistry(validator.New())
	profileUC := usecase.NewProfileUsecase(store.profiles, schemas, publisher)
	jobUC := usecase.NewJobUsecase(store.jobs, store.companies, schemas, publisher)
	applicationUC := usecase.NewApplicationUsecase(
		store.jobs,
		store.profiles,
		store.employees,
		schemas,
		publisher,
		cfg.ApplicantFetchConcurrency,
	)

	// 6. Router
	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	a.router = v1.NewRouter(v1.RouterDeps{
		ProfileUC:     profileUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		HealthUC:      usecase.NewHealthUsecase(checks),
		RateLimiter:   middleware.NewRateLimiter(rdb),
		Config:        cfg,
	})
	return a, nil
}

func (a *app) openStorage(ctx context.Context, cfg *config.Config, seedPath string, checks map[string]usecase.HealthCheck) (*storage, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		dir := memory.NewDirectory()
		if seedPath != "" {
			f, err := os.Open(seedPath)
			if err != nil {
				return nil, fmt.Errorf("open seed file: %w", err)
			}
			employees, companies, err := dir.LoadSeed(f)
			f.Close()
			if err != nil {
				return nil, err
			}
			logger.Log.Info("Loaded directory seed", "employees", employees, "companies", companies)
		}
		logger.Log.Warn("Using in-memory storage; data is lost on restart")
		return &storage{
			profiles:  memory.NewProfileRepository(),
			jobs:      memory.NewJobRepository(),
			employees: dir,
			companies: dir,
		}, nil

	default:
		pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		checks["database"] = pool.Ping
		a.closers = append(a.closers, func(context.Context) error {
			pool.Close()
			return nil
		})

		dir := postgres.NewDirectoryRepository(pool)
		return &storage{
			profiles:  postgres.NewProfileRepository(pool),
			jobs:      postgres.NewJobRepository(pool),
			employees: dir,
			companies: dir,
		}, nil
	}
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	ctx := context.Background()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			logger.Log.Warn("Shutdown step failed", "error", err)
		}
	}
	a.closers = nil
}
