package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"taxmitra/internal/domain"
	"taxmitra/internal/gst"
	"taxmitra/internal/port"
	"taxmitra/internal/xlsxexport"
)

// ExportOptions controls what happens to a generated return workbook besides
// being handed back to the caller.
type ExportOptions struct {
	Archive bool
	EmailTo string
}

// ReturnExport is a rendered return workbook.
type ReturnExport struct {
	Filename string
	Content  []byte
	// Location is the archive URL when the workbook was uploaded to storage.
	Location string
}

// ReportService generates period-bounded statutory returns and dashboard
// summaries. Reports are derived on demand and never persisted.
type ReportService interface {
	GenerateReturn(ctx context.Context, returnType domain.ReturnType, gstin string, month, year int) (*domain.GSTReturnReport, error)
	Summary(ctx context.Context, from, to *time.Time) (*domain.TaxSummary, error)
	ExportReturn(ctx context.Context, returnType domain.ReturnType, gstin string, month, year int, opts ExportOptions) (*ReturnExport, error)
}

type reportService struct {
	entryRepo port.EntryRepository
	slabRepo  port.SlabRepository
	storage   port.ObjectStorage
	email     port.EmailSender
	bucket    string
}

// NewReportService creates a new ReportService implementation. storage may be
// nil when no archive bucket is configured.
func NewReportService(
	entryRepo port.EntryRepository,
	slabRepo port.SlabRepository,
	storage port.ObjectStorage,
	email port.EmailSender,
	bucket string,
) ReportService {
	return &reportService{
		entryRepo: entryRepo,
		slabRepo:  slabRepo,
		storage:   storage,
		email:     email,
		bucket:    bucket,
	}
}

func (s *reportService) GenerateReturn(ctx context.Context, returnType domain.ReturnType, gstin string, month, year int) (*domain.GSTReturnReport, error) {
	if gstin == "" || month == 0 || year == 0 {
		return nil, fmt.Errorf("%w: gstin, month and year are required", domain.ErrValidation)
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", domain.ErrValidation)
	}
	if !domain.ValidReturnTypes[returnType] {
		return nil, fmt.Errorf("%w: unknown return type %q", domain.ErrValidation, returnType)
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	entries, _, err := s.entryRepo.List(ctx, port.EntryFilter{
		GSTReturn: &returnType,
		From:      &from,
		To:        &to,
	})
	if err != nil {
		return nil, err
	}

	slabs, err := s.slabRepo.List(ctx, port.SlabFilter{})
	if err != nil {
		return nil, err
	}
	attachSlabs(entries, slabs)

	return gst.GenerateReturn(entries, gst.MapRates(slabs), returnType, gstin, month, year), nil
}

func (s *reportService) Summary(ctx context.Context, from, to *time.Time) (*domain.TaxSummary, error) {
	entries, _, err := s.entryRepo.List(ctx, port.EntryFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	return gst.Summarize(entries), nil
}

// ExportReturn renders a generated return as an Excel workbook and, when
// requested, archives it to object storage and emails the figures.
func (s *reportService) ExportReturn(ctx context.Context, returnType domain.ReturnType, gstin string, month, year int, opts ExportOptions) (*ReturnExport, error) {
	report, err := s.GenerateReturn(ctx, returnType, gstin, month, year)
	if err != nil {
		return nil, err
	}

	content, err := xlsxexport.RenderReturn(report)
	if err != nil {
		return nil, fmt.Errorf("rendering return workbook: %w", err)
	}

	export := &ReturnExport{
		Filename: exportFilename(report),
		Content:  content,
	}

	if opts.Archive && s.storage != nil {
		out, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.bucket,
			Key:         fmt.Sprintf("returns/%d/%02d/%s", year, month, export.Filename),
			Body:        bytes.NewReader(content),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		})
		if err != nil {
			return nil, err
		}
		export.Location = out.Location
	}

	if opts.EmailTo != "" {
		mail := port.ReturnReportMail{
			To:          opts.EmailTo,
			ReturnType:  report.ReturnType,
			Period:      report.Period,
			Summary:     report.Summary,
			DownloadURL: export.Location,
		}
		if err := s.email.SendReturnReport(ctx, mail); err != nil {
			return nil, err
		}
	}

	return export, nil
}

func exportFilename(report *domain.GSTReturnReport) string {
	rt := strings.ToLower(strings.ReplaceAll(string(report.ReturnType), "-", ""))
	period := strings.ReplaceAll(report.Period, "/", "-")
	return fmt.Sprintf("%s-%s.xlsx", rt, period)
}

// attachSlabs substitutes item slab references with full slab records so the
// exported invoices carry the resolved rate context.
func attachSlabs(entries []domain.TaxEntry, slabs []domain.TaxSlab) {
	byID := make(map[uuid.UUID]*domain.TaxSlab, len(slabs))
	for i := range slabs {
		byID[slabs[i].ID] = &slabs[i]
	}
	for i := range entries {
		for j := range entries[i].Items {
			entries[i].Items[j].Slab = byID[entries[i].Items[j].TaxSlabID]
		}
	}
}
