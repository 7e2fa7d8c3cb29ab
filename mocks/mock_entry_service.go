package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"taxmitra/internal/domain"
	"taxmitra/internal/port"
	"taxmitra/internal/service"
)

// MockEntryService is a mock implementation of service.EntryService.
type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) Create(ctx context.Context, input service.CreateEntryInput) (*domain.TaxEntry, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxEntry), args.Error(1)
}

func (m *MockEntryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaxEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxEntry), args.Error(1)
}

func (m *MockEntryService) List(ctx context.Context, filter port.EntryFilter) ([]domain.TaxEntry, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.TaxEntry), args.Int(1), args.Error(2)
}

func (m *MockEntryService) Update(ctx context.Context, id uuid.UUID, input service.UpdateEntryInput) (*domain.TaxEntry, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxEntry), args.Error(1)
}

func (m *MockEntryService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EntryStatus) (*domain.TaxEntry, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxEntry), args.Error(1)
}

func (m *MockEntryService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
