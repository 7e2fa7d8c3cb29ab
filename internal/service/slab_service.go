package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"taxmitra/internal/domain"
	"taxmitra/internal/port"
)

// CreateSlabInput is the DTO for creating a tax slab. Rate is a pointer so a
// missing rate can be told apart from a legitimate 0% rate.
type CreateSlabInput struct {
	Name        string              `json:"name"`
	Rate        *float64            `json:"rate"`
	Category    domain.SlabCategory `json:"category"`
	HSNCode     string              `json:"hsn_code"`
	Type        domain.SlabType     `json:"type"`
	Description string              `json:"description"`
	Status      domain.SlabStatus   `json:"status"`
	IsDefault   bool                `json:"is_default"`
}

// UpdateSlabInput is the DTO for partially updating a tax slab. Fields left
// nil are not touched.
type UpdateSlabInput struct {
	Name        *string              `json:"name"`
	Rate        *float64             `json:"rate"`
	Category    *domain.SlabCategory `json:"category"`
	HSNCode     *string              `json:"hsn_code"`
	Type        *domain.SlabType     `json:"type"`
	Description *string              `json:"description"`
	Status      *domain.SlabStatus   `json:"status"`
	IsDefault   *bool                `json:"is_default"`
}

// SlabService owns tax slab identity and the single-default invariant.
type SlabService interface {
	Create(ctx context.Context, input CreateSlabInput) (*domain.TaxSlab, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TaxSlab, error)
	List(ctx context.Context) ([]domain.TaxSlab, error)
	ListActive(ctx context.Context) ([]domain.TaxSlab, error)
	GetDefault(ctx context.Context) (*domain.TaxSlab, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateSlabInput) (*domain.TaxSlab, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleStatus(ctx context.Context, id uuid.UUID) (*domain.TaxSlab, error)
	BulkSeed(ctx context.Context) ([]domain.TaxSlab, error)
}

type slabService struct {
	repo port.SlabRepository
}

// NewSlabService creates a new SlabService implementation.
func NewSlabService(repo port.SlabRepository) SlabService {
	return &slabService{repo: repo}
}

func (s *slabService) Create(ctx context.Context, input CreateSlabInput) (*domain.TaxSlab, error) {
	if input.Name == "" || input.Rate == nil || input.Category == "" {
		return nil, fmt.Errorf("%w: name, rate and category are required", domain.ErrValidation)
	}
	if *input.Rate < 0 || *input.Rate > 100 {
		return nil, fmt.Errorf("%w: rate must be between 0 and 100", domain.ErrValidation)
	}
	if !domain.ValidSlabCategories[input.Category] {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, input.Category)
	}
	if input.Type != "" && !domain.ValidSlabTypes[input.Type] {
		return nil, fmt.Errorf("%w: unknown type %q", domain.ErrValidation, input.Type)
	}

	slab := &domain.TaxSlab{
		Name:        input.Name,
		Rate:        *input.Rate,
		Category:    input.Category,
		HSNCode:     input.HSNCode,
		Type:        input.Type,
		Description: input.Description,
		Status:      input.Status,
		IsDefault:   input.IsDefault,
	}
	if slab.Type == "" {
		slab.Type = domain.SlabTypeRegular
	}
	if slab.Status == "" {
		slab.Status = domain.SlabStatusActive
	}

	// Clear-then-set keeps at most one default. Best effort only: two
	// concurrent defaults resolve last-write-wins (see GetDefault fallback).
	if slab.IsDefault {
		if err := s.repo.ClearDefault(ctx, uuid.Nil); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, slab); err != nil {
		return nil, err
	}
	return slab, nil
}

func (s *slabService) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaxSlab, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *slabService) List(ctx context.Context) ([]domain.TaxSlab, error) {
	return s.repo.List(ctx, port.SlabFilter{})
}

func (s *slabService) ListActive(ctx context.Context) ([]domain.TaxSlab, error) {
	active := domain.SlabStatusActive
	return s.repo.List(ctx, port.SlabFilter{Status: &active})
}

// GetDefault returns the active default slab. When no slab is flagged default
// the active slab with the lowest rate stands in, so billing always has a rate
// to pre-select as long as any active slab exists.
func (s *slabService) GetDefault(ctx context.Context) (*domain.TaxSlab, error) {
	active := domain.SlabStatusActive
	isDefault := true

	defaults, err := s.repo.List(ctx, port.SlabFilter{Status: &active, IsDefault: &isDefault})
	if err != nil {
		return nil, err
	}
	if len(defaults) > 0 {
		return &defaults[0], nil
	}

	actives, err := s.repo.List(ctx, port.SlabFilter{Status: &active})
	if err != nil {
		return nil, err
	}
	if len(actives) == 0 {
		return nil, fmt.Errorf("%w: no active tax slabs", domain.ErrNotFound)
	}
	return &actives[0], nil
}

func (s *slabService) Update(ctx context.Context, id uuid.UUID, input UpdateSlabInput) (*domain.TaxSlab, error) {
	if input.Rate != nil && (*input.Rate < 0 || *input.Rate > 100) {
		return nil, fmt.Errorf("%w: rate must be between 0 and 100", domain.ErrValidation)
	}
	if input.Category != nil && !domain.ValidSlabCategories[*input.Category] {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, *input.Category)
	}
	if input.Type != nil && !domain.ValidSlabTypes[*input.Type] {
		return nil, fmt.Errorf("%w: unknown type %q", domain.ErrValidation, *input.Type)
	}

	slab, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		slab.Name = *input.Name
	}
	if input.Rate != nil {
		slab.Rate = *input.Rate
	}
	if input.Category != nil {
		slab.Category = *input.Category
	}
	if input.HSNCode != nil {
		slab.HSNCode = *input.HSNCode
	}
	if input.Type != nil {
		slab.Type = *input.Type
	}
	if input.Description != nil {
		slab.Description = *input.Description
	}
	if input.Status != nil {
		slab.Status = *input.Status
	}
	if input.IsDefault != nil {
		slab.IsDefault = *input.IsDefault
	}

	// The target slab is excluded from the clear so the flag lands on it.
	if input.IsDefault != nil && *input.IsDefault {
		if err := s.repo.ClearDefault(ctx, id); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, slab); err != nil {
		return nil, err
	}
	return slab, nil
}

// Delete removes a slab without checking for entries that reference it.
// Entries keep their frozen totals; later re-aggregation treats the dangling
// reference as a 0% rate.
func (s *slabService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *slabService) ToggleStatus(ctx context.Context, id uuid.UUID) (*domain.TaxSlab, error) {
	slab, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if slab.Status == domain.SlabStatusActive {
		slab.Status = domain.SlabStatusInactive
	} else {
		slab.Status = domain.SlabStatusActive
	}

	if err := s.repo.Update(ctx, slab); err != nil {
		return nil, err
	}
	return slab, nil
}

// starterSlabs is the fixed bulk-seed set for initial setup.
func starterSlabs() []domain.TaxSlab {
	return []domain.TaxSlab{
		{Name: "No GST", Rate: 0, Category: domain.CategoryExempted, Description: "Zero-rated Goods", Type: domain.SlabTypeExempted, Status: domain.SlabStatusActive},
		{Name: "GST 5%", Rate: 5, Category: domain.CategoryEssentialGoods, Description: "Essential items", Type: domain.SlabTypeRegular, Status: domain.SlabStatusActive},
		{Name: "GST 12%", Rate: 12, Category: domain.CategoryStandard, Description: "Standard goods", Type: domain.SlabTypeRegular, Status: domain.SlabStatusActive},
		{Name: "GST 18%", Rate: 18, Category: domain.CategoryStandard, Description: "General goods", Type: domain.SlabTypeRegular, Status: domain.SlabStatusActive, IsDefault: true},
		{Name: "GST 28%", Rate: 28, Category: domain.CategoryLuxury, Description: "Luxury items", Type: domain.SlabTypeRegular, Status: domain.SlabStatusActive},
	}
}

// BulkSeed inserts the five starter slabs, but only into an empty registry.
func (s *slabService) BulkSeed(ctx context.Context) ([]domain.TaxSlab, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: found %d existing tax slabs", domain.ErrAlreadySeeded, count)
	}

	slabs := starterSlabs()
	if err := s.repo.CreateMany(ctx, slabs); err != nil {
		// Another seed may have won the race between Count and CreateMany.
		if errors.Is(err, domain.ErrDuplicateSlabName) {
			return nil, fmt.Errorf("%w: concurrent seed detected", domain.ErrAlreadySeeded)
		}
		return nil, err
	}
	return slabs, nil
}
