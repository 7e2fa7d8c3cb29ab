package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taxmitra/internal/domain"
	"taxmitra/internal/port"
	"taxmitra/internal/service"
	"taxmitra/mocks"
)

func floatPtr(v float64) *float64 { return &v }

func TestSlabCreate_MissingFields(t *testing.T) {
	svc := service.NewSlabService(new(mocks.MockSlabRepo))

	_, err := svc.Create(context.Background(), service.CreateSlabInput{Name: "GST 18%"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(context.Background(), service.CreateSlabInput{Rate: floatPtr(18), Category: domain.CategoryStandard})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSlabCreate_RateBounds(t *testing.T) {
	svc := service.NewSlabService(new(mocks.MockSlabRepo))

	_, err := svc.Create(context.Background(), service.CreateSlabInput{
		Name: "Bad", Rate: floatPtr(-1), Category: domain.CategoryStandard,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(context.Background(), service.CreateSlabInput{
		Name: "Bad", Rate: floatPtr(101), Category: domain.CategoryStandard,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSlabCreate_ZeroRateAllowed(t *testing.T) {
	repo := new(mocks.MockSlabRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.TaxSlab")).Return(nil)
	svc := service.NewSlabService(repo)

	slab, err := svc.Create(context.Background(), service.CreateSlabInput{
		Name: "No GST", Rate: floatPtr(0), Category: domain.CategoryExempted,
	})
	require.NoError(t, err)
	assert.Zero(t, slab.Rate)
	// Unset type and status take their defaults.
	assert.Equal(t, domain.SlabTypeRegular, slab.Type)
	assert.Equal(t, domain.SlabStatusActive, slab.Status)
	repo.AssertExpectations(t)
}

func TestSlabCreate_UnknownCategory(t *testing.T) {
	svc := service.NewSlabService(new(mocks.MockSlabRepo))

	_, err := svc.Create(context.Background(), service.CreateSlabInput{
		Name: "Bad", Rate: floatPtr(18), Category: domain.SlabCategory("Imaginary"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSlabCreate_DefaultClearsOthers(t *testing.T) {
	repo := new(mocks.MockSlabRepo)
	repo.On("ClearDefault", mock.Anything, uuid.Nil).Return(nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.TaxSlab")).Return(nil)
	svc := service.NewSlabService(repo)

	slab, err := svc.Create(context.Background(), service.CreateSlabInput{
		Name: "GST 18%", Rate: floatPtr(18), Category: domain.CategoryStandard, IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, slab.IsDefault)
	repo.AssertExpectations(t)
}

func TestSlabCreate_NonDefaultSkipsClear(t *testing.T) {
	repo := new(mocks.MockSlabRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.TaxSlab")).Return(nil)
	svc := service.NewSlabService(repo)

	_, err := svc.Create(context.Background(), service.CreateSlabInput{
		Name: "GST 5%", Rate: floatPtr(5), Category: domain.CategoryEssentialGoods,
	})
	require.NoError(t, err)
	repo.AssertNotCalled(t, "ClearDefault", mock.Anything, mock.Anything)
}

func TestSlabGetDefault_FlaggedDefault(t *testing.T) {
	repo := new(mocks.MockSlabRepo)
	active := domain.SlabStatusActive
	isDefault := true
	repo.On("List", mock.Anything, port.SlabFilter{Status: &active, IsDefault: &isDefault}).
		Return([]domain.TaxSlab{{Name: "GST 18%", Rate: 18, IsDefault: true}}, nil)
	svc := service.NewSlabService(repo)

	slab, err := svc.GetDefault(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "GST 18%", slab.Name)
}

func TestSlabGetDefault_FallsBackToLowestRate(t *testing.T) {
	repo := new(mocks.MockSlabRepo)
	active := domain.SlabStatusActive
	isDefault := true
	repo.On("List", mock.Anything, port.SlabFilter{Status: &active, IsDefault: &isDefault}).
		Return([]domain.TaxSlab{}, nil)
	// Rate-ordered listing puts the lowest rate first.
	repo.On("List", mock.Anything, port.SlabFilter{Status: &active}).
		Return([]domain.TaxSlab{{Name: "GST 5%", Rate: 5}, {Name: "GST 18%", Rate: 18}}, nil)
	svc := service.NewSlabService(repo)

	slab, err := svc.GetDefault(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "GST 5%", slab.Name)
}

func TestSlabGetDefault_NoActiveSlabs(t *testing.T) {
	repo := new(mocks.MockSlabRepo)
	repo.On("List", mock.Anything, mock.AnythingOfType("port.SlabFilter")).
		Return([]domain.TaxSlab{}, nil)
	svc := service.NewSlabService(repo)

	_, err := svc.GetDefault(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSlabUpdate_SetDefaultExcludesTarget(t *testing.T) {
	id := uuid.New()
	repo := new(mocks.MockSlabRepo)
	repo.On("GetByID", mock.Anything, id).
		Return(&domain.TaxSlab{ID: id, Name: "GST 12%", Rate: 12, Status: domain.SlabStatusActive}, nil)
	repo.On("ClearDefault", mock.Anything, id).Return(nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.TaxSlab")).Return(nil)
	svc := service.NewSlabService(repo)

	isDefault := true
	slab, err := svc.Update(context.Background(), id, service.UpdateSlabInput{IsDefault: &isDefault})
	require.NoError(t, err)
	assert.True(t, slab.IsDefault)
	repo.AssertExpectations(t)
}

func TestSlabUpdate_RateBounds(t *testing.T) {
	svc := service.NewSlabService(new(mocks.MockSlabRepo))

	_, err := svc.Update(context.Background(), uuid.New(), service.UpdateSlabInput{Rate: floatPtr(150)})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSlabUpdate_NotFound(t *testing.T) {
	id := uuid.New()
	repo := new(mocks.MockSlabRepo)
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)
	svc := service.NewSlabService(repo)

	name := "Renamed"
	_, err := svc.Update(context.Background(), id, service.UpdateSlabInput{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSlabToggleStatus(t *testing.T) {
	id := uuid.New()
	repo := new(mocks.MockSlabRepo)
	repo.On("GetByID", mock.Anything, id).
		Return(&domain.TaxSlab{ID: id, Status: domain.SlabStatusActive}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.TaxSlab")).Return(nil)
	svc := service.NewSlabService(repo)

	slab, err := svc.ToggleStatus(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.SlabStatusInactive, slab.Status)
}

func TestSlabBulkSeed(t *testing.T) {
	repo := new(mocks.MockSlabRepo)
	repo.On("Count", mock.Anything).Return(0, nil)
	repo.On("CreateMany", mock.Anything, mock.AnythingOfType("[]domain.TaxSlab")).Return(nil)
	svc := service.NewSlabService(repo)

	slabs, err := svc.BulkSeed(context.Background())
	require.NoError(t, err)
	require.Len(t, slabs, 5)

	rates := []float64{0, 5, 12, 18, 28}
	var defaults int
	for i, slab := range slabs {
		assert.Equal(t, rates[i], slab.Rate)
		assert.Equal(t, domain.SlabStatusActive, slab.Status)
		if slab.IsDefault {
			defaults++
			assert.Equal(t, float64(18), slab.Rate)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestSlabBulkSeed_NonEmptyRegistry(t *testing.T) {
	repo := new(mocks.MockSlabRepo)
	repo.On("Count", mock.Anything).Return(3, nil)
	svc := service.NewSlabService(repo)

	_, err := svc.BulkSeed(context.Background())
	assert.ErrorIs(t, err, domain.ErrAlreadySeeded)
	assert.Contains(t, err.Error(), "3")
	repo.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
}

func TestSlabBulkSeed_ConcurrentSeed(t *testing.T) {
	repo := new(mocks.MockSlabRepo)
	repo.On("Count", mock.Anything).Return(0, nil)
	repo.On("CreateMany", mock.Anything, mock.AnythingOfType("[]domain.TaxSlab")).
		Return(domain.ErrDuplicateSlabName)
	svc := service.NewSlabService(repo)

	_, err := svc.BulkSeed(context.Background())
	assert.ErrorIs(t, err, domain.ErrAlreadySeeded)
}
