package handler

import (
	"fmt"
	"net/http"

	"schoolcash/internal/apierror"
	"schoolcash/internal/dto"
	"schoolcash/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Generate godoc
// @Summary      Transaction report for a date range
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        from query string true "YYYY-MM-DD, inclusive"
// @Param        to   query string true "YYYY-MM-DD, inclusive"
// @Param        type query string false "all | income | expense" default(all)
// @Success      200 {object} dto.ReportResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reports [get]
func (h *ReportHandler) Generate(c *gin.Context) {
	filter := filterFromQuery(c)
	resp, err := h.reports.Generate(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export godoc
// @Summary      Download the report as a PDF
// @Tags         reports
// @Security     BearerAuth
// @Produce      application/pdf
// @Param        from query string true "YYYY-MM-DD, inclusive"
// @Param        to   query string true "YYYY-MM-DD, inclusive"
// @Param        type query string false "all | income | expense" default(all)
// @Success      200 {file} binary
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reports/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	filter := filterFromQuery(c)
	pdfBytes, err := h.reports.ExportPDF(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	filename := fmt.Sprintf("report_%s_%s.pdf", filter.From, filter.To)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func filterFromQuery(c *gin.Context) dto.ReportFilter {
	return dto.ReportFilter{
		From: c.Query("from"),
		To:   c.Query("to"),
		Type: c.DefaultQuery("type", "all"),
	}
}
