package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"taxmitra/internal/domain"
	"taxmitra/internal/handler"
	"taxmitra/internal/service"
	"taxmitra/mocks"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newSlabHandler() (*handler.SlabHandler, *mocks.MockSlabService) {
	mockSvc := new(mocks.MockSlabService)
	h := handler.NewSlabHandler(mockSvc)
	return h, mockSvc
}

func TestSlabHandler_List(t *testing.T) {
	h, mockSvc := newSlabHandler()
	mockSvc.On("List", mock.Anything).
		Return([]domain.TaxSlab{{Name: "GST 18%", Rate: 18}}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/tax/slabs", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestSlabHandler_Create_Success(t *testing.T) {
	h, mockSvc := newSlabHandler()

	expected := &domain.TaxSlab{ID: uuid.New(), Name: "GST 18%", Rate: 18}
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(input service.CreateSlabInput) bool {
		return input.Name == "GST 18%" && input.Rate != nil && *input.Rate == 18
	})).Return(expected, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"name":     "GST 18%",
		"rate":     18,
		"category": "Standard",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/tax/slabs", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Tax slab created successfully", resp.Message)
	mockSvc.AssertExpectations(t)
}

func TestSlabHandler_Create_ValidationError(t *testing.T) {
	h, mockSvc := newSlabHandler()
	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateSlabInput")).
		Return(nil, domain.ErrValidation)

	body, _ := json.Marshal(map[string]interface{}{"name": "Incomplete"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/tax/slabs", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestSlabHandler_GetByID_InvalidID(t *testing.T) {
	h, _ := newSlabHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/tax/slabs/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_ID", resp.Error.Code)
}

func TestSlabHandler_GetByID_NotFound(t *testing.T) {
	h, mockSvc := newSlabHandler()
	id := uuid.New()
	mockSvc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/tax/slabs/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSlabHandler_BulkSeed_AlreadySeeded(t *testing.T) {
	h, mockSvc := newSlabHandler()
	mockSvc.On("BulkSeed", mock.Anything).Return(nil, domain.ErrAlreadySeeded)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/tax/slabs/bulk-create", nil)

	h.BulkSeed(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ALREADY_SEEDED", resp.Error.Code)
}
