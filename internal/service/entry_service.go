package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taxmitra/internal/domain"
	"taxmitra/internal/gst"
	"taxmitra/internal/port"
)

// EntryItemInput is one line item on an entry create/update request. Quantity
// and Price are pointers so missing values fail validation instead of being
// read as zero.
type EntryItemInput struct {
	Name      string    `json:"name"`
	Quantity  *float64  `json:"quantity"`
	Price     *float64  `json:"price"`
	TaxSlabID uuid.UUID `json:"tax_slab_id"`
	HSN       string    `json:"hsn"`
}

// CreateEntryInput is the DTO for recording a tax entry. The derived totals
// are computed here, never accepted from the caller.
type CreateEntryInput struct {
	InvoiceNo    string             `json:"invoice_no"`
	Date         *time.Time         `json:"date"`
	Customer     string             `json:"customer"`
	GSTIN        string             `json:"gstin"`
	Items        []EntryItemInput   `json:"items"`
	IsInterState bool               `json:"is_inter_state"`
	GSTReturn    domain.ReturnType  `json:"gst_return"`
	Status       domain.EntryStatus `json:"status"`
	Notes        string             `json:"notes"`
}

// UpdateEntryInput is the DTO for partially updating an entry. The invoice
// number is fixed at creation and cannot be patched. Supplying Items triggers
// a full recomputation of the derived totals.
type UpdateEntryInput struct {
	Date         *time.Time          `json:"date"`
	Customer     *string             `json:"customer"`
	GSTIN        *string             `json:"gstin"`
	Items        *[]EntryItemInput   `json:"items"`
	IsInterState *bool               `json:"is_inter_state"`
	GSTReturn    *domain.ReturnType  `json:"gst_return"`
	Status       *domain.EntryStatus `json:"status"`
	Notes        *string             `json:"notes"`
}

// EntryService validates and records taxable transactions.
type EntryService interface {
	Create(ctx context.Context, input CreateEntryInput) (*domain.TaxEntry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TaxEntry, error)
	List(ctx context.Context, filter port.EntryFilter) ([]domain.TaxEntry, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateEntryInput) (*domain.TaxEntry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EntryStatus) (*domain.TaxEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type entryService struct {
	entryRepo port.EntryRepository
	slabRepo  port.SlabRepository
}

// NewEntryService creates a new EntryService implementation.
func NewEntryService(entryRepo port.EntryRepository, slabRepo port.SlabRepository) EntryService {
	return &entryService{entryRepo: entryRepo, slabRepo: slabRepo}
}

func (s *entryService) Create(ctx context.Context, input CreateEntryInput) (*domain.TaxEntry, error) {
	if input.InvoiceNo == "" || input.Date == nil || input.Customer == "" || input.GSTReturn == "" {
		return nil, fmt.Errorf("%w: invoice_no, date, customer and gst_return are required", domain.ErrValidation)
	}
	if !domain.ValidReturnTypes[input.GSTReturn] {
		return nil, fmt.Errorf("%w: unknown gst_return %q", domain.ErrValidation, input.GSTReturn)
	}
	if input.Status != "" && !domain.ValidEntryStatuses[input.Status] {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, input.Status)
	}

	items, err := buildItems(input.Items)
	if err != nil {
		return nil, err
	}

	resolve, err := s.rateResolver(ctx)
	if err != nil {
		return nil, err
	}
	totals := gst.ComputeTotals(items, resolve)

	entry := &domain.TaxEntry{
		InvoiceNo:    input.InvoiceNo,
		Date:         *input.Date,
		Customer:     input.Customer,
		GSTIN:        input.GSTIN,
		Items:        items,
		IsInterState: input.IsInterState,
		TaxableValue: totals.TaxableValue,
		TotalTax:     totals.TotalTax,
		TotalAmount:  totals.TotalAmount,
		GSTReturn:    input.GSTReturn,
		Status:       input.Status,
		Notes:        input.Notes,
	}
	if entry.Status == "" {
		entry.Status = domain.EntryStatusDraft
	}

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.populate(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *entryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaxEntry, error) {
	entry, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.populate(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *entryService) List(ctx context.Context, filter port.EntryFilter) ([]domain.TaxEntry, int, error) {
	entries, total, err := s.entryRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if err := s.populateAll(ctx, entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *entryService) Update(ctx context.Context, id uuid.UUID, input UpdateEntryInput) (*domain.TaxEntry, error) {
	if input.GSTReturn != nil && !domain.ValidReturnTypes[*input.GSTReturn] {
		return nil, fmt.Errorf("%w: unknown gst_return %q", domain.ErrValidation, *input.GSTReturn)
	}
	if input.Status != nil && !domain.ValidEntryStatuses[*input.Status] {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *input.Status)
	}

	entry, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Date != nil {
		entry.Date = *input.Date
	}
	if input.Customer != nil {
		entry.Customer = *input.Customer
	}
	if input.GSTIN != nil {
		entry.GSTIN = *input.GSTIN
	}
	if input.IsInterState != nil {
		entry.IsInterState = *input.IsInterState
	}
	if input.GSTReturn != nil {
		entry.GSTReturn = *input.GSTReturn
	}
	if input.Status != nil {
		entry.Status = *input.Status
	}
	if input.Notes != nil {
		entry.Notes = *input.Notes
	}

	// New line items invalidate the frozen totals, so they are recomputed
	// against the slab rates in effect right now.
	if input.Items != nil {
		items, err := buildItems(*input.Items)
		if err != nil {
			return nil, err
		}
		resolve, err := s.rateResolver(ctx)
		if err != nil {
			return nil, err
		}
		totals := gst.ComputeTotals(items, resolve)
		entry.Items = items
		entry.TaxableValue = totals.TaxableValue
		entry.TotalTax = totals.TotalTax
		entry.TotalAmount = totals.TotalAmount
	}

	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.populate(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *entryService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EntryStatus) (*domain.TaxEntry, error) {
	if !domain.ValidEntryStatuses[status] {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}

	entry, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry.Status = status
	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.populate(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *entryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.entryRepo.Delete(ctx, id)
}

// buildItems validates item inputs and converts them to domain line items.
func buildItems(inputs []EntryItemInput) (domain.EntryItems, error) {
	items := make(domain.EntryItems, 0, len(inputs))
	for i, in := range inputs {
		if in.Quantity == nil || in.Price == nil {
			return nil, fmt.Errorf("%w: item %d is missing quantity or price", domain.ErrValidation, i)
		}
		items = append(items, domain.EntryItem{
			Name:      in.Name,
			Quantity:  *in.Quantity,
			Price:     *in.Price,
			TaxSlabID: in.TaxSlabID,
			HSN:       in.HSN,
		})
	}
	return items, nil
}

// rateResolver loads the current slab set once and resolves rates against it.
// Dangling references resolve to 0.
func (s *entryService) rateResolver(ctx context.Context) (gst.RateResolver, error) {
	slabs, err := s.slabRepo.List(ctx, port.SlabFilter{})
	if err != nil {
		return nil, err
	}
	return gst.MapRates(slabs), nil
}

// populate substitutes each item's slab reference with the full slab record,
// mirroring the read-path join used for reporting.
func (s *entryService) populate(ctx context.Context, entry *domain.TaxEntry) error {
	slabs, err := s.slabRepo.List(ctx, port.SlabFilter{})
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]*domain.TaxSlab, len(slabs))
	for i := range slabs {
		byID[slabs[i].ID] = &slabs[i]
	}
	for j := range entry.Items {
		entry.Items[j].Slab = byID[entry.Items[j].TaxSlabID]
	}
	return nil
}

// populateAll resolves slab references for a batch of entries with one slab
// set load.
func (s *entryService) populateAll(ctx context.Context, entries []domain.TaxEntry) error {
	slabs, err := s.slabRepo.List(ctx, port.SlabFilter{})
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]*domain.TaxSlab, len(slabs))
	for i := range slabs {
		byID[slabs[i].ID] = &slabs[i]
	}
	for i := range entries {
		for j := range entries[i].Items {
			entries[i].Items[j].Slab = byID[entries[i].Items[j].TaxSlabID]
		}
	}
	return nil
}
