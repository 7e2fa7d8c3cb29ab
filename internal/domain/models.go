package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaxSlab is a named tax-rate bracket applied to entry line items. At most one
// slab carries IsDefault, and that slab must be active.
type TaxSlab struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	Name        string       `db:"name" json:"name"`
	Rate        float64      `db:"rate" json:"rate"`
	Category    SlabCategory `db:"category" json:"category"`
	HSNCode     string       `db:"hsn_code" json:"hsn_code"`
	Type        SlabType     `db:"type" json:"type"`
	Description string       `db:"description" json:"description"`
	Status      SlabStatus   `db:"status" json:"status"`
	IsDefault   bool         `db:"is_default" json:"is_default"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}

// IsActive reports whether the slab is selectable for billing.
func (s *TaxSlab) IsActive() bool {
	return s.Status == SlabStatusActive
}

// EntryItem is a single line item on a tax entry. The slab reference is a
// non-owning lookup key; the rate in effect was folded into the entry's frozen
// totals at creation time.
type EntryItem struct {
	Name      string    `json:"name"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	TaxSlabID uuid.UUID `json:"tax_slab_id"`
	HSN       string    `json:"hsn"`

	// Slab is filled in by the populate join for read paths; never persisted.
	Slab *TaxSlab `json:"slab,omitempty"`
}

// EntryItems is stored as a single JSONB column on tax_entries.
type EntryItems []EntryItem

// Value implements driver.Valuer for JSONB storage.
func (e EntryItems) Value() (driver.Value, error) {
	if e == nil {
		return "[]", nil
	}
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshaling entry items: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner for JSONB storage.
func (e *EntryItems) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, e)
	case string:
		return json.Unmarshal([]byte(v), e)
	case nil:
		*e = nil
		return nil
	default:
		return fmt.Errorf("unsupported type %T for EntryItems", src)
	}
}

// TaxEntry is one recorded taxable transaction. TaxableValue, TotalTax and
// TotalAmount are derived from the line items and the slab rates resolved at
// creation time; they are never partially computed and are not recomputed when
// a referenced slab later changes.
type TaxEntry struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	InvoiceNo    string      `db:"invoice_no" json:"invoice_no"`
	Date         time.Time   `db:"date" json:"date"`
	Customer     string      `db:"customer" json:"customer"`
	GSTIN        string      `db:"gstin" json:"gstin"`
	Items        EntryItems  `db:"items" json:"items"`
	IsInterState bool        `db:"is_inter_state" json:"is_inter_state"`
	TaxableValue float64     `db:"taxable_value" json:"taxable_value"`
	TotalTax     float64     `db:"total_tax" json:"total_tax"`
	TotalAmount  float64     `db:"total_amount" json:"total_amount"`
	GSTReturn    ReturnType  `db:"gst_return" json:"gst_return"`
	Status       EntryStatus `db:"status" json:"status"`
	Notes        string      `db:"notes" json:"notes"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

// User represents an authenticated API user.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ReturnSummary aggregates a set of entries for one statutory return period.
// Cess is reserved and currently always zero.
type ReturnSummary struct {
	TotalInvoices     int     `json:"total_invoices"`
	TotalTaxableValue float64 `json:"total_taxable_value"`
	TotalTaxAmount    float64 `json:"total_tax_amount"`
	CGST              float64 `json:"cgst"`
	SGST              float64 `json:"sgst"`
	IGST              float64 `json:"igst"`
	Cess              float64 `json:"cess"`
}

// HSNGroup is one row of the HSN-code-wise rollup, keyed by (hsn, rate).
type HSNGroup struct {
	HSN          string  `json:"hsn"`
	Rate         float64 `json:"rate"`
	Quantity     float64 `json:"quantity"`
	TaxableValue float64 `json:"taxable_value"`
	CGST         float64 `json:"cgst"`
	SGST         float64 `json:"sgst"`
	IGST         float64 `json:"igst"`
}

// GSTReturnReport is the derived, never-persisted return document. It is
// regenerated from the source entries on every request.
type GSTReturnReport struct {
	GSTIN       string        `json:"gstin"`
	ReturnType  ReturnType    `json:"return_type"`
	Period      string        `json:"period"`
	Summary     ReturnSummary `json:"summary"`
	HSNSummary  []HSNGroup    `json:"hsn_summary"`
	Invoices    []TaxEntry    `json:"invoices"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// ReturnStat is a per-return-type counter bucket in the dashboard summary.
type ReturnStat struct {
	Count  int     `json:"count"`
	Tax    float64 `json:"tax"`
	Amount float64 `json:"amount"`
}

// TaxSummary is the ad-hoc dashboard summary over an optional date window.
type TaxSummary struct {
	TotalEntries      int                       `json:"total_entries"`
	TotalTaxAmount    float64                   `json:"total_tax_amount"`
	TotalInvoiceValue float64                   `json:"total_invoice_value"`
	AvgTaxRate        float64                   `json:"avg_tax_rate"`
	ReturnStats       map[ReturnType]ReturnStat `json:"return_stats"`
}
