package usecase_test

import (
	"context"
	"encoding/json"

	"go-jobboard-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Profile, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) UpdateSummary(ctx context.Context, employeeID, summary string) error {
	return m.Called(ctx, employeeID, summary).Error(0)
}

func (m *MockProfileRepo) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	return m.Called(ctx, employeeID).Error(0)
}

func (m *MockProfileRepo) AppendSectionItem(ctx context.Context, employeeID string, kind domain.SectionKind, item json.RawMessage) error {
	return m.Called(ctx, employeeID, kind, item).Error(0)
}

func (m *MockProfileRepo) ReplaceSectionItem(ctx context.Context, employeeID string, kind domain.SectionKind, itemID uuid.UUID, item json.RawMessage) error {
	return m.Called(ctx, employeeID, kind, itemID, item).Error(0)
}

func (m *MockProfileRepo) PullSectionItem(ctx context.Context, employeeID string, kind domain.SectionKind, itemID uuid.UUID) error {
	return m.Called(ctx, employeeID, kind, itemID).Error(0)
}

func (m *MockProfileRepo) ListSectionItems(ctx context.Context, employeeID string, kind domain.SectionKind) ([]json.RawMessage, error) {
	args := m.Called(ctx, employeeID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

type MockEmployeeDirectory struct {
	mock.Mock
}

func (m *MockEmployeeDirectory) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event domain.Event) error {
	return m.Called(ctx, event).Error(0)
}

func eventOfType(t domain.EventType) interface{} {
	return mock.MatchedBy(func(e domain.Event) bool { return e.Type == t })
}
