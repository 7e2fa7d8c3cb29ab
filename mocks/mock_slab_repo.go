package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"taxmitra/internal/domain"
	"taxmitra/internal/port"
)

// MockSlabRepo is a mock implementation of port.SlabRepository.
type MockSlabRepo struct {
	mock.Mock
}

func (m *MockSlabRepo) Create(ctx context.Context, slab *domain.TaxSlab) error {
	args := m.Called(ctx, slab)
	return args.Error(0)
}

func (m *MockSlabRepo) CreateMany(ctx context.Context, slabs []domain.TaxSlab) error {
	args := m.Called(ctx, slabs)
	return args.Error(0)
}

func (m *MockSlabRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaxSlab, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxSlab), args.Error(1)
}

func (m *MockSlabRepo) List(ctx context.Context, filter port.SlabFilter) ([]domain.TaxSlab, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxSlab), args.Error(1)
}

func (m *MockSlabRepo) Update(ctx context.Context, slab *domain.TaxSlab) error {
	args := m.Called(ctx, slab)
	return args.Error(0)
}

func (m *MockSlabRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSlabRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockSlabRepo) ClearDefault(ctx context.Context, exclude uuid.UUID) error {
	args := m.Called(ctx, exclude)
	return args.Error(0)
}
