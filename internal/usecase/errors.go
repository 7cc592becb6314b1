package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
)

// translateError maps repository sentinels onto the apperror taxonomy. The
// original error stays reachable through Unwrap.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	var out *apperror.AppError
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		out = apperror.NotFound("Profile not found")
	case errors.Is(err, domain.ErrSectionItemNotFound):
		out = apperror.NotFound("Profile item not found")
	case errors.Is(err, domain.ErrJobNotFound):
		out = apperror.NotFound("Job not found")
	case errors.Is(err, domain.ErrEmployeeNotFound):
		out = apperror.NotFound("Employee not found")
	case errors.Is(err, domain.ErrProfileExists):
		out = apperror.Conflict("Profile already exists for this employee")
	case errors.Is(err, domain.ErrAlreadyApplied):
		out = apperror.Conflict("You have already applied to this job")
	case errors.Is(err, domain.ErrNotFound):
		out = apperror.NotFound("Resource not found")
	default:
		return apperror.Internal(err)
	}
	out.Err = err
	return out
}

// publish emits event after a committed mutation. Failures are logged only.
func publish(ctx context.Context, p domain.EventPublisher, eventType domain.EventType, key string, payload interface{}) {
	if p == nil {
		return
	}
	event := domain.Event{
		Type:       eventType,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
	if err := p.Publish(ctx, event); err != nil {
		logger.Log.Warn("Failed to publish event", "type", eventType, "key", key, "error", err)
	}
}
