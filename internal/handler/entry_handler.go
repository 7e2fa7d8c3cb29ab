package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taxmitra/internal/csvexport"
	"taxmitra/internal/domain"
	"taxmitra/internal/port"
	"taxmitra/internal/service"
)

// EntryHandler handles tax entry endpoints.
type EntryHandler struct {
	entryService service.EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryService service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// UpdateEntryStatusRequest is the body for status updates.
type UpdateEntryStatusRequest struct {
	Status domain.EntryStatus `json:"status" binding:"required"`
}

// entryFilterFromQuery parses the shared listing filters.
func entryFilterFromQuery(c *gin.Context) (port.EntryFilter, error) {
	var filter port.EntryFilter

	filter.Search = c.Query("search")
	if v := c.Query("gst_return"); v != "" {
		rt := domain.ReturnType(v)
		filter.GSTReturn = &rt
	}
	if v := c.Query("status"); v != "" {
		st := domain.EntryStatus(v)
		filter.Status = &st
	}
	if v := c.Query("is_inter_state"); v != "" {
		inter := v == "true"
		filter.IsInterState = &inter
	}
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			t, err = time.Parse("2006-01-02", v)
		}
		if err != nil {
			return filter, fmt.Errorf("invalid start_date %q", v)
		}
		filter.From = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			t, err = time.Parse("2006-01-02", v)
		}
		if err != nil {
			return filter, fmt.Errorf("invalid end_date %q", v)
		}
		filter.To = &t
	}
	return filter, nil
}

// List handles GET /api/v1/tax/entries
// @Summary List tax entries
// @Description List entries with optional search, return-type, status, inter-state and date filters
// @Tags entries
// @Produce json
// @Param search query string false "Match against invoice number, customer or GSTIN"
// @Param gst_return query string false "Return type filter"
// @Param status query string false "Status filter"
// @Param is_inter_state query bool false "Inter-state filter"
// @Param start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.TaxEntry,meta=PagMeta}
// @Security BearerAuth
// @Router /tax/entries [get]
func (h *EntryHandler) List(c *gin.Context) {
	filter, err := entryFilterFromQuery(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	entries, total, err := h.entryService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, entries, PagMeta{Total: total, Offset: filter.Offset, Limit: filter.Limit})
}

// GetByID handles GET /api/v1/tax/entries/:id
// @Summary Get a tax entry
// @Tags entries
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} APIResponse{data=domain.TaxEntry}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /tax/entries/{id} [get]
func (h *EntryHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid entry id")
		return
	}

	entry, err := h.entryService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entry)
}

// Create handles POST /api/v1/tax/entries
// @Summary Record a tax entry
// @Description Validates line items against the slab registry and computes the derived totals
// @Tags entries
// @Accept json
// @Produce json
// @Param request body service.CreateEntryInput true "Entry details"
// @Success 201 {object} APIResponse{data=domain.TaxEntry}
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse "Duplicate invoice number"
// @Security BearerAuth
// @Router /tax/entries [post]
func (h *EntryHandler) Create(c *gin.Context) {
	var input service.CreateEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	entry, err := h.entryService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, entry, "Tax entry created successfully")
}

// Update handles PUT /api/v1/tax/entries/:id
// @Summary Update a tax entry
// @Description Partial update; supplying items recomputes the derived totals
// @Tags entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param request body service.UpdateEntryInput true "Fields to update"
// @Success 200 {object} APIResponse{data=domain.TaxEntry}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /tax/entries/{id} [put]
func (h *EntryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid entry id")
		return
	}

	var input service.UpdateEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	entry, err := h.entryService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOKMessage(c, entry, "Tax entry updated successfully")
}

// UpdateStatus handles PATCH /api/v1/tax/entries/:id/status
// @Summary Update an entry's status
// @Tags entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param request body UpdateEntryStatusRequest true "New status"
// @Success 200 {object} APIResponse{data=domain.TaxEntry}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /tax/entries/{id}/status [patch]
func (h *EntryHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid entry id")
		return
	}

	var req UpdateEntryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	entry, err := h.entryService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOKMessage(c, entry, "Status updated successfully")
}

// Delete handles DELETE /api/v1/tax/entries/:id
// @Summary Delete a tax entry
// @Tags entries
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /tax/entries/{id} [delete]
func (h *EntryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid entry id")
		return
	}

	if err := h.entryService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOKMessage(c, nil, "Tax entry deleted successfully")
}

// ExportCSV handles GET /api/v1/tax/entries/export
// @Summary Export tax entries as CSV
// @Description Streams the filtered entry set as a CSV file with the tax split per entry
// @Tags entries
// @Produce text/csv
// @Param search query string false "Match against invoice number, customer or GSTIN"
// @Param gst_return query string false "Return type filter"
// @Param status query string false "Status filter"
// @Param is_inter_state query bool false "Inter-state filter"
// @Param start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {string} string "CSV content"
// @Security BearerAuth
// @Router /tax/entries/export [get]
func (h *EntryHandler) ExportCSV(c *gin.Context) {
	filter, err := entryFilterFromQuery(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	entries, _, err := h.entryService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="tax-entries.csv"`)
	c.Writer.Write(csvexport.BOM)

	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, err)
		return
	}
	if err := w.WriteEntries(entries); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
}
