package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taxmitra/internal/domain"
	"taxmitra/internal/port"
	"taxmitra/internal/service"
	"taxmitra/mocks"
)

func newReportService(entryRepo *mocks.MockEntryRepo, slabRepo *mocks.MockSlabRepo) service.ReportService {
	return service.NewReportService(entryRepo, slabRepo, nil, new(mocks.MockEmailSender), "")
}

func TestReportGenerateReturn_Validation(t *testing.T) {
	svc := newReportService(new(mocks.MockEntryRepo), new(mocks.MockSlabRepo))

	_, err := svc.GenerateReturn(context.Background(), domain.ReturnGSTR1, "", 1, 2025)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.GenerateReturn(context.Background(), domain.ReturnGSTR1, "29ABCDE1234F1Z5", 13, 2025)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.GenerateReturn(context.Background(), domain.ReturnType("GSTR-9"), "29ABCDE1234F1Z5", 1, 2025)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReportGenerateReturn_PeriodWindow(t *testing.T) {
	entryRepo := new(mocks.MockEntryRepo)
	slabRepo := new(mocks.MockSlabRepo)

	var captured port.EntryFilter
	entryRepo.On("List", mock.Anything, mock.AnythingOfType("port.EntryFilter")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(port.EntryFilter)
		}).
		Return([]domain.TaxEntry{}, 0, nil)
	slabRepo.On("List", mock.Anything, port.SlabFilter{}).Return([]domain.TaxSlab{}, nil)

	svc := newReportService(entryRepo, slabRepo)

	report, err := svc.GenerateReturn(context.Background(), domain.ReturnGSTR1, "29ABCDE1234F1Z5", 2, 2024)
	require.NoError(t, err)
	assert.Equal(t, "02/2024", report.Period)

	require.NotNil(t, captured.GSTReturn)
	assert.Equal(t, domain.ReturnGSTR1, *captured.GSTReturn)
	require.NotNil(t, captured.From)
	require.NotNil(t, captured.To)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *captured.From)
	// Leap year February runs through the 29th.
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), *captured.To)
}

func TestReportSummary(t *testing.T) {
	entryRepo := new(mocks.MockEntryRepo)
	slabRepo := new(mocks.MockSlabRepo)
	entryRepo.On("List", mock.Anything, mock.AnythingOfType("port.EntryFilter")).
		Return([]domain.TaxEntry{
			{GSTReturn: domain.ReturnGSTR1, TotalTax: 38.5, TotalAmount: 288.5},
		}, 1, nil)

	svc := newReportService(entryRepo, slabRepo)

	summary, err := svc.Summary(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalEntries)
	assert.InDelta(t, 38.5, summary.TotalTaxAmount, 1e-9)
}

func TestReportExportReturn(t *testing.T) {
	entryRepo := new(mocks.MockEntryRepo)
	slabRepo := new(mocks.MockSlabRepo)
	entryRepo.On("List", mock.Anything, mock.AnythingOfType("port.EntryFilter")).
		Return([]domain.TaxEntry{
			{InvoiceNo: "INV-001", TaxableValue: 250, TotalTax: 38.5, TotalAmount: 288.5},
		}, 1, nil)
	slabRepo.On("List", mock.Anything, port.SlabFilter{}).Return([]domain.TaxSlab{}, nil)

	svc := newReportService(entryRepo, slabRepo)

	export, err := svc.ExportReturn(context.Background(), domain.ReturnGSTR1, "29ABCDE1234F1Z5", 1, 2025, service.ExportOptions{})
	require.NoError(t, err)
	assert.Equal(t, "gstr1-01-2025.xlsx", export.Filename)
	assert.NotEmpty(t, export.Content)
	assert.Empty(t, export.Location)
}

func TestReportExportReturn_ArchiveAndEmail(t *testing.T) {
	entryRepo := new(mocks.MockEntryRepo)
	slabRepo := new(mocks.MockSlabRepo)
	storage := new(mocks.MockObjectStorage)
	email := new(mocks.MockEmailSender)

	entryRepo.On("List", mock.Anything, mock.AnythingOfType("port.EntryFilter")).
		Return([]domain.TaxEntry{}, 0, nil)
	slabRepo.On("List", mock.Anything, port.SlabFilter{}).Return([]domain.TaxSlab{}, nil)

	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "returns-bucket" && in.Key == "returns/2025/01/gstr1-01-2025.xlsx"
	})).Return(&port.UploadOutput{Location: "https://s3.example.com/gstr1-01-2025.xlsx"}, nil)

	email.On("SendReturnReport", mock.Anything, mock.MatchedBy(func(m port.ReturnReportMail) bool {
		return m.To == "accounts@example.com" &&
			m.DownloadURL == "https://s3.example.com/gstr1-01-2025.xlsx"
	})).Return(nil)

	svc := service.NewReportService(entryRepo, slabRepo, storage, email, "returns-bucket")

	export, err := svc.ExportReturn(context.Background(), domain.ReturnGSTR1, "29ABCDE1234F1Z5", 1, 2025, service.ExportOptions{
		Archive: true,
		EmailTo: "accounts@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com/gstr1-01-2025.xlsx", export.Location)
	storage.AssertExpectations(t)
	email.AssertExpectations(t)
}
