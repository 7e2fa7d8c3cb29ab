package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taxmitra/internal/domain"
	"taxmitra/internal/service"
)

// ReportHandler handles return generation and summary endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GenerateReturnRequest is the body for return generation.
type GenerateReturnRequest struct {
	GSTIN string `json:"gstin" binding:"required"`
	Month int    `json:"month" binding:"required"`
	Year  int    `json:"year" binding:"required"`
}

// ExportReturnRequest is the body for return export.
type ExportReturnRequest struct {
	GSTIN   string `json:"gstin" binding:"required"`
	Month   int    `json:"month" binding:"required"`
	Year    int    `json:"year" binding:"required"`
	Archive bool   `json:"archive"`
	EmailTo string `json:"email_to"`
}

// GenerateGSTR1 handles POST /api/v1/tax/reports/gstr1
// @Summary Generate a GSTR-1 return
// @Description Aggregates the filing period's entries into a GSTR-1 report with an HSN rollup
// @Tags reports
// @Accept json
// @Produce json
// @Param request body GenerateReturnRequest true "Filing period"
// @Success 200 {object} APIResponse{data=domain.GSTReturnReport}
// @Failure 400 {object} APIResponse
// @Security BearerAuth
// @Router /tax/reports/gstr1 [post]
func (h *ReportHandler) GenerateGSTR1(c *gin.Context) {
	h.generateReturn(c, domain.ReturnGSTR1)
}

// GenerateGSTR2 handles POST /api/v1/tax/reports/gstr2
// @Summary Generate a GSTR-2 return
// @Description Aggregates the filing period's entries into a GSTR-2 report with an HSN rollup
// @Tags reports
// @Accept json
// @Produce json
// @Param request body GenerateReturnRequest true "Filing period"
// @Success 200 {object} APIResponse{data=domain.GSTReturnReport}
// @Failure 400 {object} APIResponse
// @Security BearerAuth
// @Router /tax/reports/gstr2 [post]
func (h *ReportHandler) GenerateGSTR2(c *gin.Context) {
	h.generateReturn(c, domain.ReturnGSTR2)
}

func (h *ReportHandler) generateReturn(c *gin.Context, returnType domain.ReturnType) {
	var req GenerateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	report, err := h.reportService.GenerateReturn(c.Request.Context(), returnType, req.GSTIN, req.Month, req.Year)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOKMessage(c, report, fmt.Sprintf("%s report generated successfully", returnType))
}

// ExportGSTR1 handles POST /api/v1/tax/reports/gstr1/export
// @Summary Export a GSTR-1 return as an Excel workbook
// @Description Renders the return as XLSX; optionally archives it to object storage and emails the figures
// @Tags reports
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param request body ExportReturnRequest true "Filing period and delivery options"
// @Success 200 {string} string "Workbook content"
// @Failure 400 {object} APIResponse
// @Security BearerAuth
// @Router /tax/reports/gstr1/export [post]
func (h *ReportHandler) ExportGSTR1(c *gin.Context) {
	var req ExportReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	export, err := h.reportService.ExportReturn(c.Request.Context(),
		domain.ReturnGSTR1, req.GSTIN, req.Month, req.Year,
		service.ExportOptions{Archive: req.Archive, EmailTo: req.EmailTo})
	if err != nil {
		HandleError(c, err)
		return
	}

	if export.Location != "" {
		c.Header("X-Archive-Location", export.Location)
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, export.Filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.Content)
}

// Summary handles GET /api/v1/tax/summary
// @Summary Dashboard tax summary
// @Description Aggregate totals and per-return-type statistics, optionally bounded by dates
// @Tags reports
// @Produce json
// @Param start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} APIResponse{data=domain.TaxSummary}
// @Security BearerAuth
// @Router /tax/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	var from, to *time.Time
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", fmt.Sprintf("invalid start_date %q", v))
			return
		}
		from = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", fmt.Sprintf("invalid end_date %q", v))
			return
		}
		to = &t
	}

	summary, err := h.reportService.Summary(c.Request.Context(), from, to)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, summary)
}
