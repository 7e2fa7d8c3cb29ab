package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"taxmitra/internal/domain"
	"taxmitra/internal/gst"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (16 columns).
var columns = []string{
	"Invoice Number",
	"Date",
	"Customer",
	"GSTIN",
	"Return Type",
	"Status",
	"Supply Type",
	"Line Item Count",
	"Taxable Value",
	"CGST",
	"SGST",
	"IGST",
	"Total Tax",
	"Total Amount",
	"Notes",
	"Created At",
}

// Writer wraps csv.Writer for exporting tax entries as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the 16-column header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteEntries converts a batch of tax entries to CSV rows and writes them.
func (w *Writer) WriteEntries(entries []domain.TaxEntry) error {
	for i := range entries {
		row := entryToRow(&entries[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// entryToRow converts a single tax entry to a 16-element string slice. The
// CGST/SGST/IGST split is derived from the entry's frozen total tax and its
// supply type.
func entryToRow(entry *domain.TaxEntry) []string {
	row := make([]string, len(columns))

	cgst, sgst, igst := gst.Split(entry.TotalTax, entry.IsInterState)

	row[0] = entry.InvoiceNo
	row[1] = entry.Date.Format("2006-01-02")
	row[2] = entry.Customer
	row[3] = entry.GSTIN
	row[4] = string(entry.GSTReturn)
	row[5] = string(entry.Status)
	row[6] = supplyType(entry.IsInterState)
	row[7] = strconv.Itoa(len(entry.Items))
	row[8] = formatMoney(entry.TaxableValue)
	row[9] = formatMoney(cgst)
	row[10] = formatMoney(sgst)
	row[11] = formatMoney(igst)
	row[12] = formatMoney(entry.TotalTax)
	row[13] = formatMoney(entry.TotalAmount)
	row[14] = entry.Notes
	row[15] = entry.CreatedAt.Format(time.RFC3339)

	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func supplyType(interState bool) string {
	if interState {
		return "Inter-State"
	}
	return "Intra-State"
}
