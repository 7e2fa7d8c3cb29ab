package port

import (
	"context"

	"github.com/google/uuid"

	"taxmitra/internal/domain"
)

// SlabFilter narrows slab listings.
type SlabFilter struct {
	Status    *domain.SlabStatus
	IsDefault *bool
}

// SlabRepository defines the contract for tax slab data access.
type SlabRepository interface {
	Create(ctx context.Context, slab *domain.TaxSlab) error
	CreateMany(ctx context.Context, slabs []domain.TaxSlab) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TaxSlab, error)
	// List returns slabs matching the filter, ordered by ascending rate.
	List(ctx context.Context, filter SlabFilter) ([]domain.TaxSlab, error)
	Update(ctx context.Context, slab *domain.TaxSlab) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
	// ClearDefault unsets is_default on every slab except the excluded id.
	// Pass uuid.Nil to clear the flag on all slabs.
	ClearDefault(ctx context.Context, exclude uuid.UUID) error
}
