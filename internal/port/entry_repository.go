package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taxmitra/internal/domain"
)

// EntryFilter narrows entry listings. Search matches invoice number, customer
// and GSTIN case-insensitively; From and To bound the entry date inclusively.
type EntryFilter struct {
	Search       string
	GSTReturn    *domain.ReturnType
	Status       *domain.EntryStatus
	IsInterState *bool
	From         *time.Time
	To           *time.Time
	Offset       int
	Limit        int
}

// EntryRepository defines the contract for tax entry data access.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.TaxEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TaxEntry, error)
	// List returns entries matching the filter ordered by descending date,
	// plus the unpaginated total. Limit <= 0 disables pagination.
	List(ctx context.Context, filter EntryFilter) ([]domain.TaxEntry, int, error)
	Update(ctx context.Context, entry *domain.TaxEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}
