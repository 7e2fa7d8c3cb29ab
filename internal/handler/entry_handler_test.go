package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taxmitra/internal/domain"
	"taxmitra/internal/handler"
	"taxmitra/internal/port"
	"taxmitra/internal/service"
	"taxmitra/mocks"
)

func newEntryHandler() (*handler.EntryHandler, *mocks.MockEntryService) {
	mockSvc := new(mocks.MockEntryService)
	h := handler.NewEntryHandler(mockSvc)
	return h, mockSvc
}

func TestEntryHandler_List_Filters(t *testing.T) {
	h, mockSvc := newEntryHandler()

	mockSvc.On("List", mock.Anything, mock.MatchedBy(func(f port.EntryFilter) bool {
		return f.Search == "acme" &&
			f.GSTReturn != nil && *f.GSTReturn == domain.ReturnGSTR1 &&
			f.Status != nil && *f.Status == domain.EntryStatusPaid &&
			f.Limit == 10 && f.Offset == 5
	})).Return([]domain.TaxEntry{}, 0, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet,
		"/api/v1/tax/entries?search=acme&gst_return=GSTR-1&status=Paid&offset=5&limit=10", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestEntryHandler_List_BadDate(t *testing.T) {
	h, _ := newEntryHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/tax/entries?start_date=yesterday", nil)

	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEntryHandler_Create_Success(t *testing.T) {
	h, mockSvc := newEntryHandler()

	expected := &domain.TaxEntry{
		ID:           uuid.New(),
		InvoiceNo:    "INV-001",
		TaxableValue: 250,
		TotalTax:     38.5,
		TotalAmount:  288.5,
	}
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(input service.CreateEntryInput) bool {
		return input.InvoiceNo == "INV-001" && input.Customer == "Acme Traders"
	})).Return(expected, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"invoice_no": "INV-001",
		"date":       "2025-01-15T00:00:00Z",
		"customer":   "Acme Traders",
		"gst_return": "GSTR-1",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/tax/entries", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestEntryHandler_Create_DuplicateInvoice(t *testing.T) {
	h, mockSvc := newEntryHandler()
	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateEntryInput")).
		Return(nil, domain.ErrDuplicateInvoiceNo)

	body, _ := json.Marshal(map[string]interface{}{
		"invoice_no": "INV-001",
		"date":       "2025-01-15T00:00:00Z",
		"customer":   "Acme Traders",
		"gst_return": "GSTR-1",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/tax/entries", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "DUPLICATE_INVOICE", resp.Error.Code)
}

func TestEntryHandler_UpdateStatus(t *testing.T) {
	h, mockSvc := newEntryHandler()
	id := uuid.New()
	mockSvc.On("UpdateStatus", mock.Anything, id, domain.EntryStatusPaid).
		Return(&domain.TaxEntry{ID: id, Status: domain.EntryStatusPaid}, nil)

	body, _ := json.Marshal(map[string]string{"status": "Paid"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/tax/entries/"+id.String()+"/status", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.UpdateStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestEntryHandler_ExportCSV(t *testing.T) {
	h, mockSvc := newEntryHandler()

	entries := []domain.TaxEntry{
		{
			InvoiceNo:    "INV-001",
			Customer:     "Acme Traders",
			TaxableValue: 250,
			TotalTax:     38.5,
			TotalAmount:  288.5,
			GSTReturn:    domain.ReturnGSTR1,
			Status:       domain.EntryStatusPending,
		},
	}
	mockSvc.On("List", mock.Anything, mock.AnythingOfType("port.EntryFilter")).
		Return(entries, 1, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/tax/entries/export", nil)

	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "tax-entries.csv")

	bodyStr := w.Body.String()
	require.True(t, strings.HasPrefix(bodyStr, "\xEF\xBB\xBF"))
	assert.Contains(t, bodyStr, "Invoice Number")
	assert.Contains(t, bodyStr, "INV-001")
	assert.Contains(t, bodyStr, "19.25")
}
