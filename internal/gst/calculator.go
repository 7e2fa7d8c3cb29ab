// Package gst implements the GST computation core: derived entry totals,
// the inter-state vs. intra-state tax split, period return generation with
// HSN-code-wise rollups, and dashboard summaries. Everything here is a pure
// function of its inputs; persistence and transport live elsewhere.
package gst

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"taxmitra/internal/domain"
)

// RateResolver maps a slab reference to its percentage rate. Implementations
// must return 0 for references that no longer resolve, so entries whose slab
// was deleted keep aggregating without error.
type RateResolver func(slabID uuid.UUID) float64

// MapRates builds a RateResolver over a slab set. Unknown ids resolve to 0.
func MapRates(slabs []domain.TaxSlab) RateResolver {
	rates := make(map[uuid.UUID]float64, len(slabs))
	for i := range slabs {
		rates[slabs[i].ID] = slabs[i].Rate
	}
	return func(slabID uuid.UUID) float64 {
		return rates[slabID]
	}
}

// Totals holds the three derived money fields of a tax entry.
type Totals struct {
	TaxableValue float64
	TotalTax     float64
	TotalAmount  float64
}

// ComputeTotals derives the frozen entry totals from line items, resolving
// each item's slab rate through resolve:
//
//	itemValue    = quantity x price
//	itemTax      = itemValue x rate / 100
//	taxableValue = sum(itemValue)
//	totalTax     = sum(itemTax)
//	totalAmount  = taxableValue + totalTax
func ComputeTotals(items []domain.EntryItem, resolve RateResolver) Totals {
	var t Totals
	for i := range items {
		itemValue := items[i].Quantity * items[i].Price
		itemTax := itemValue * resolve(items[i].TaxSlabID) / 100
		t.TaxableValue += itemValue
		t.TotalTax += itemTax
	}
	t.TotalAmount = t.TaxableValue + t.TotalTax
	return t
}

// Split applies the two-way split policy to a tax amount: an inter-state
// transaction reports the whole amount as IGST, an intra-state transaction
// splits it exactly in half between CGST and SGST.
func Split(tax float64, interState bool) (cgst, sgst, igst float64) {
	if interState {
		return 0, 0, tax
	}
	return tax / 2, tax / 2, 0
}

// hsnUnknown is the rollup bucket for line items without an HSN code.
const hsnUnknown = "unknown"

// GenerateReturn aggregates the given entries into a statutory return for a
// (returnType, gstin, month, year) tuple. Entry-level totals use the frozen
// taxable value and total tax stored on each entry; the HSN rollup re-resolves
// item rates through resolve, treating dangling slab references as 0%. Rollup
// rows keep first-seen order so the output is reproducible for a given entry
// set. The result is derived on demand and never persisted.
func GenerateReturn(
	entries []domain.TaxEntry,
	resolve RateResolver,
	returnType domain.ReturnType,
	gstin string,
	month, year int,
) *domain.GSTReturnReport {
	report := &domain.GSTReturnReport{
		GSTIN:       gstin,
		ReturnType:  returnType,
		Period:      fmt.Sprintf("%02d/%d", month, year),
		HSNSummary:  []domain.HSNGroup{},
		Invoices:    entries,
		GeneratedAt: time.Now().UTC(),
	}
	if entries == nil {
		report.Invoices = []domain.TaxEntry{}
	}

	for i := range entries {
		e := &entries[i]
		report.Summary.TotalInvoices++
		report.Summary.TotalTaxableValue += e.TaxableValue
		report.Summary.TotalTaxAmount += e.TotalTax

		cgst, sgst, igst := Split(e.TotalTax, e.IsInterState)
		report.Summary.CGST += cgst
		report.Summary.SGST += sgst
		report.Summary.IGST += igst
	}

	type hsnKey struct {
		hsn  string
		rate float64
	}
	index := make(map[hsnKey]int)

	for i := range entries {
		e := &entries[i]
		for j := range e.Items {
			item := &e.Items[j]
			hsn := item.HSN
			if hsn == "" {
				hsn = hsnUnknown
			}
			rate := resolve(item.TaxSlabID)
			key := hsnKey{hsn: hsn, rate: rate}

			pos, ok := index[key]
			if !ok {
				pos = len(report.HSNSummary)
				index[key] = pos
				report.HSNSummary = append(report.HSNSummary, domain.HSNGroup{HSN: hsn, Rate: rate})
			}

			itemValue := item.Quantity * item.Price
			tax := itemValue * rate / 100
			cgst, sgst, igst := Split(tax, e.IsInterState)

			group := &report.HSNSummary[pos]
			group.Quantity += item.Quantity
			group.TaxableValue += itemValue
			group.CGST += cgst
			group.SGST += sgst
			group.IGST += igst
		}
	}

	return report
}

// Summarize computes the unfiltered dashboard summary over a set of entries:
// overall totals, the average tax rate (0 when there is no invoice value), and
// counters for exactly the five known return types. Entries tagged with an
// unrecognized return type contribute to the overall totals but not to any
// per-type bucket.
func Summarize(entries []domain.TaxEntry) *domain.TaxSummary {
	summary := &domain.TaxSummary{
		TotalEntries: len(entries),
		ReturnStats:  make(map[domain.ReturnType]domain.ReturnStat, len(domain.KnownReturnTypes)),
	}
	for _, rt := range domain.KnownReturnTypes {
		summary.ReturnStats[rt] = domain.ReturnStat{}
	}

	for i := range entries {
		e := &entries[i]
		summary.TotalTaxAmount += e.TotalTax
		summary.TotalInvoiceValue += e.TotalAmount

		stat, known := summary.ReturnStats[e.GSTReturn]
		if !known {
			continue
		}
		stat.Count++
		stat.Tax += e.TotalTax
		stat.Amount += e.TotalAmount
		summary.ReturnStats[e.GSTReturn] = stat
	}

	if summary.TotalInvoiceValue > 0 {
		summary.AvgTaxRate = summary.TotalTaxAmount / summary.TotalInvoiceValue
	}
	return summary
}
