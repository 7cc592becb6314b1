package usecase

import (
	"context"
	"sort"
	"time"
)

// HealthCheck pings one dependency. A nil error means reachable.
type HealthCheck func(ctx context.Context) error

type HealthUsecase interface {
	// Check runs every check and reports "ok" or "down" per dependency.
	// The bool is false when any check failed.
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	checks  map[string]HealthCheck
	timeout time.Duration
}

func NewHealthUsecase(checks map[string]HealthCheck) HealthUsecase {
	return &healthUsecase{checks: checks, timeout: 2 * time.Second}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	names := make([]string, 0, len(u.checks))
	for name := range u.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := map[string]string{"status": "ok"}
	healthy := true
	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, u.timeout)
		err := u.checks[name](checkCtx)
		cancel()
		if err != nil {
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "ok"
	}
	if !healthy {
		status["status"] = "degraded"
	}
	return status, healthy
}
