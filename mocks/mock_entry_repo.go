package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"taxmitra/internal/domain"
	"taxmitra/internal/port"
)

// MockEntryRepo is a mock implementation of port.EntryRepository.
type MockEntryRepo struct {
	mock.Mock
}

func (m *MockEntryRepo) Create(ctx context.Context, entry *domain.TaxEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaxEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxEntry), args.Error(1)
}

func (m *MockEntryRepo) List(ctx context.Context, filter port.EntryFilter) ([]domain.TaxEntry, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.TaxEntry), args.Int(1), args.Error(2)
}

func (m *MockEntryRepo) Update(ctx context.Context, entry *domain.TaxEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
