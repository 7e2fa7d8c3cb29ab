package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"taxmitra/internal/domain"
	"taxmitra/internal/service"
)

// MockSlabService is a mock implementation of service.SlabService.
type MockSlabService struct {
	mock.Mock
}

func (m *MockSlabService) Create(ctx context.Context, input service.CreateSlabInput) (*domain.TaxSlab, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxSlab), args.Error(1)
}

func (m *MockSlabService) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaxSlab, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxSlab), args.Error(1)
}

func (m *MockSlabService) List(ctx context.Context) ([]domain.TaxSlab, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxSlab), args.Error(1)
}

func (m *MockSlabService) ListActive(ctx context.Context) ([]domain.TaxSlab, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxSlab), args.Error(1)
}

func (m *MockSlabService) GetDefault(ctx context.Context) (*domain.TaxSlab, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxSlab), args.Error(1)
}

func (m *MockSlabService) Update(ctx context.Context, id uuid.UUID, input service.UpdateSlabInput) (*domain.TaxSlab, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxSlab), args.Error(1)
}

func (m *MockSlabService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSlabService) ToggleStatus(ctx context.Context, id uuid.UUID) (*domain.TaxSlab, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxSlab), args.Error(1)
}

func (m *MockSlabService) BulkSeed(ctx context.Context) ([]domain.TaxSlab, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxSlab), args.Error(1)
}
