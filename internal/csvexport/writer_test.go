package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxmitra/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 16)
	assert.Equal(t, "Invoice Number", row[0])
	assert.Equal(t, "CGST", row[9])
	assert.Equal(t, "Created At", row[15])
}

func TestWriteEntries_IntraState(t *testing.T) {
	entry := domain.TaxEntry{
		ID:           uuid.New(),
		InvoiceNo:    "INV-001",
		Date:         time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Customer:     "Acme Traders",
		GSTIN:        "29ABCDE1234F1Z5",
		Items: domain.EntryItems{
			{Name: "Widget", Quantity: 2, Price: 100},
			{Name: "Gadget", Quantity: 1, Price: 50},
		},
		IsInterState: false,
		TaxableValue: 250,
		TotalTax:     38.5,
		TotalAmount:  288.5,
		GSTReturn:    domain.ReturnGSTR1,
		Status:       domain.EntryStatusPending,
		Notes:        "January billing",
		CreatedAt:    time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteEntries([]domain.TaxEntry{entry}))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 16)
	assert.Equal(t, "INV-001", row[0])
	assert.Equal(t, "2025-01-15", row[1])
	assert.Equal(t, "Acme Traders", row[2])
	assert.Equal(t, "29ABCDE1234F1Z5", row[3])
	assert.Equal(t, "GSTR-1", row[4])
	assert.Equal(t, "Pending", row[5])
	assert.Equal(t, "Intra-State", row[6])
	assert.Equal(t, "2", row[7])
	assert.Equal(t, "250.00", row[8])
	assert.Equal(t, "19.25", row[9])
	assert.Equal(t, "19.25", row[10])
	assert.Equal(t, "0.00", row[11])
	assert.Equal(t, "38.50", row[12])
	assert.Equal(t, "288.50", row[13])
	assert.Equal(t, "January billing", row[14])
	assert.Equal(t, "2025-01-15T10:30:00Z", row[15])
}

func TestWriteEntries_InterState(t *testing.T) {
	entry := domain.TaxEntry{
		InvoiceNo:    "INV-002",
		Date:         time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Customer:     "Delhi Distributors",
		IsInterState: true,
		TaxableValue: 1000,
		TotalTax:     180,
		TotalAmount:  1180,
		GSTReturn:    domain.ReturnGSTR1,
		Status:       domain.EntryStatusPaid,
		CreatedAt:    time.Now(),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteEntries([]domain.TaxEntry{entry}))
	w.Flush()

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Equal(t, "Inter-State", row[6])
	assert.Equal(t, "0.00", row[9])
	assert.Equal(t, "0.00", row[10])
	assert.Equal(t, "180.00", row[11])
}

func TestWriteEntries_MonetaryFormatting(t *testing.T) {
	entry := domain.TaxEntry{
		InvoiceNo:    "INV-003",
		Date:         time.Now(),
		TaxableValue: 1000,     // whole number
		TotalTax:     99.999,   // rounds to 2 decimal places
		TotalAmount:  1100.1,   // trailing zero
		IsInterState: true,
		CreatedAt:    time.Now(),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteEntries([]domain.TaxEntry{entry}))
	w.Flush()

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Equal(t, "1000.00", row[8])
	assert.Equal(t, "100.00", row[12])
	assert.Equal(t, "1100.10", row[13])
}
