package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taxmitra/internal/service"
)

// SlabHandler handles tax slab endpoints.
type SlabHandler struct {
	slabService service.SlabService
}

// NewSlabHandler creates a new SlabHandler.
func NewSlabHandler(slabService service.SlabService) *SlabHandler {
	return &SlabHandler{slabService: slabService}
}

// List handles GET /api/v1/tax/slabs
// @Summary List tax slabs
// @Description List all tax slabs ordered by rate
// @Tags slabs
// @Produce json
// @Success 200 {object} APIResponse{data=[]domain.TaxSlab}
// @Security BearerAuth
// @Router /tax/slabs [get]
func (h *SlabHandler) List(c *gin.Context) {
	slabs, err := h.slabService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, slabs)
}

// ListActive handles GET /api/v1/tax/slabs/active/list
// @Summary List active tax slabs
// @Description List active slabs only, for billing dropdowns
// @Tags slabs
// @Produce json
// @Success 200 {object} APIResponse{data=[]domain.TaxSlab}
// @Security BearerAuth
// @Router /tax/slabs/active/list [get]
func (h *SlabHandler) ListActive(c *gin.Context) {
	slabs, err := h.slabService.ListActive(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, slabs)
}

// GetDefault handles GET /api/v1/tax/slabs/default/get
// @Summary Get the default tax slab
// @Description Returns the active default slab, falling back to the lowest-rate active slab
// @Tags slabs
// @Produce json
// @Success 200 {object} APIResponse{data=domain.TaxSlab}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /tax/slabs/default/get [get]
func (h *SlabHandler) GetDefault(c *gin.Context) {
	slab, err := h.slabService.GetDefault(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, slab)
}

// GetByID handles GET /api/v1/tax/slabs/:id
// @Summary Get a tax slab
// @Tags slabs
// @Produce json
// @Param id path string true "Slab ID"
// @Success 200 {object} APIResponse{data=domain.TaxSlab}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /tax/slabs/{id} [get]
func (h *SlabHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid slab id")
		return
	}

	slab, err := h.slabService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, slab)
}

// Create handles POST /api/v1/tax/slabs
// @Summary Create a tax slab
// @Description Create a slab; setting is_default clears the flag on all other slabs
// @Tags slabs
// @Accept json
// @Produce json
// @Param request body service.CreateSlabInput true "Slab details"
// @Success 201 {object} APIResponse{data=domain.TaxSlab}
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Security BearerAuth
// @Router /tax/slabs [post]
func (h *SlabHandler) Create(c *gin.Context) {
	var input service.CreateSlabInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	slab, err := h.slabService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, slab, "Tax slab created successfully")
}

// BulkSeed handles POST /api/v1/tax/slabs/bulk-create
// @Summary Seed the starter tax slabs
// @Description Insert the five standard GST slabs into an empty registry
// @Tags slabs
// @Produce json
// @Success 201 {object} APIResponse{data=[]domain.TaxSlab}
// @Failure 409 {object} APIResponse "Registry is not empty"
// @Security BearerAuth
// @Router /tax/slabs/bulk-create [post]
func (h *SlabHandler) BulkSeed(c *gin.Context) {
	slabs, err := h.slabService.BulkSeed(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, slabs, "Default tax slabs created successfully")
}

// Update handles PUT /api/v1/tax/slabs/:id
// @Summary Update a tax slab
// @Description Partial update; only supplied fields change
// @Tags slabs
// @Accept json
// @Produce json
// @Param id path string true "Slab ID"
// @Param request body service.UpdateSlabInput true "Fields to update"
// @Success 200 {object} APIResponse{data=domain.TaxSlab}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /tax/slabs/{id} [put]
func (h *SlabHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid slab id")
		return
	}

	var input service.UpdateSlabInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	slab, err := h.slabService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOKMessage(c, slab, "Tax slab updated successfully")
}

// Delete handles DELETE /api/v1/tax/slabs/:id
// @Summary Delete a tax slab
// @Description Deletes unconditionally; entries keep a dangling reference
// @Tags slabs
// @Produce json
// @Param id path string true "Slab ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /tax/slabs/{id} [delete]
func (h *SlabHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid slab id")
		return
	}

	if err := h.slabService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOKMessage(c, nil, "Tax slab deleted successfully")
}

// ToggleStatus handles PATCH /api/v1/tax/slabs/:id/toggle-status
// @Summary Toggle a slab between active and inactive
// @Tags slabs
// @Produce json
// @Param id path string true "Slab ID"
// @Success 200 {object} APIResponse{data=domain.TaxSlab}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /tax/slabs/{id}/toggle-status [patch]
func (h *SlabHandler) ToggleStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid slab id")
		return
	}

	slab, err := h.slabService.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOKMessage(c, slab, "Tax slab status updated")
}
