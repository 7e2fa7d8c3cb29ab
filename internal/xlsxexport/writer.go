// Package xlsxexport renders generated GST returns as Excel workbooks.
package xlsxexport

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"taxmitra/internal/domain"
	"taxmitra/internal/gst"
)

const (
	sheetSummary  = "Summary"
	sheetHSN      = "HSN Summary"
	sheetInvoices = "Invoices"
)

// RenderReturn renders a return report as an XLSX workbook with three sheets:
// the period summary, the HSN-wise rollup, and the individual invoices.
func RenderReturn(report *domain.GSTReturnReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := writeSummarySheet(f, report); err != nil {
		return nil, err
	}
	if err := writeHSNSheet(f, report.HSNSummary); err != nil {
		return nil, err
	}
	if err := writeInvoicesSheet(f, report.Invoices); err != nil {
		return nil, err
	}

	// Drop the default sheet so Summary opens first.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("deleting default sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, report *domain.GSTReturnReport) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Return Type", string(report.ReturnType)},
		{"GSTIN", report.GSTIN},
		{"Period", report.Period},
		{"Generated At", report.GeneratedAt.Format(time.RFC3339)},
		{},
		{"Total Invoices", report.Summary.TotalInvoices},
		{"Total Taxable Value", report.Summary.TotalTaxableValue},
		{"Total Tax Amount", report.Summary.TotalTaxAmount},
		{"CGST", report.Summary.CGST},
		{"SGST", report.Summary.SGST},
		{"IGST", report.Summary.IGST},
		{"Cess", report.Summary.Cess},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return fmt.Errorf("writing summary row %d: %w", i+1, err)
		}
	}
	return nil
}

func writeHSNSheet(f *excelize.File, groups []domain.HSNGroup) error {
	if _, err := f.NewSheet(sheetHSN); err != nil {
		return fmt.Errorf("creating HSN sheet: %w", err)
	}

	header := []interface{}{"HSN", "Rate (%)", "Quantity", "Taxable Value", "CGST", "SGST", "IGST"}
	if err := f.SetSheetRow(sheetHSN, "A1", &header); err != nil {
		return fmt.Errorf("writing HSN header: %w", err)
	}

	for i, g := range groups {
		row := []interface{}{g.HSN, g.Rate, g.Quantity, g.TaxableValue, g.CGST, g.SGST, g.IGST}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetHSN, cell, &row); err != nil {
			return fmt.Errorf("writing HSN row %d: %w", i+2, err)
		}
	}
	return nil
}

func writeInvoicesSheet(f *excelize.File, invoices []domain.TaxEntry) error {
	if _, err := f.NewSheet(sheetInvoices); err != nil {
		return fmt.Errorf("creating invoices sheet: %w", err)
	}

	header := []interface{}{
		"Invoice Number", "Date", "Customer", "GSTIN", "Supply Type",
		"Taxable Value", "CGST", "SGST", "IGST", "Total Tax", "Total Amount", "Status",
	}
	if err := f.SetSheetRow(sheetInvoices, "A1", &header); err != nil {
		return fmt.Errorf("writing invoice header: %w", err)
	}

	for i := range invoices {
		inv := &invoices[i]
		cgst, sgst, igst := gst.Split(inv.TotalTax, inv.IsInterState)

		supply := "Intra-State"
		if inv.IsInterState {
			supply = "Inter-State"
		}

		row := []interface{}{
			inv.InvoiceNo,
			inv.Date.Format("2006-01-02"),
			inv.Customer,
			inv.GSTIN,
			supply,
			inv.TaxableValue,
			cgst,
			sgst,
			igst,
			inv.TotalTax,
			inv.TotalAmount,
			string(inv.Status),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetInvoices, cell, &row); err != nil {
			return fmt.Errorf("writing invoice row %d: %w", i+2, err)
		}
	}
	return nil
}
