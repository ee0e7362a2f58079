package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/printdesk/daybook-api/internal/application/service"
	"github.com/printdesk/daybook-api/internal/presentation/http/dto/response"
)

// ReportHandler handles revenue report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Daily handles the seven-day revenue report
func (h *ReportHandler) Daily(c *gin.Context) {
	report, err := h.reportService.DailyReport(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily report generated successfully", report)
}

// Monthly handles the twelve-month revenue report for a year
func (h *ReportHandler) Monthly(c *gin.Context) {
	year, err := h.reportYear(c)
	if err != nil {
		response.BadRequest(c, "Invalid year parameter")
		return
	}

	report, err := h.reportService.MonthlyReport(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Monthly report generated successfully", report)
}

// ExportDaily handles the seven-day report spreadsheet download
func (h *ReportHandler) ExportDaily(c *gin.Context) {
	data, err := h.reportService.ExportDailyXLSX(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	sendXLSX(c, fmt.Sprintf("daily-report-%s.xlsx", time.Now().Format("2006-01-02")), data)
}

// ExportMonthly handles the twelve-month report spreadsheet download
func (h *ReportHandler) ExportMonthly(c *gin.Context) {
	year, err := h.reportYear(c)
	if err != nil {
		response.BadRequest(c, "Invalid year parameter")
		return
	}

	data, err := h.reportService.ExportMonthlyXLSX(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}

	sendXLSX(c, fmt.Sprintf("monthly-report-%d.xlsx", year), data)
}

func (h *ReportHandler) reportYear(c *gin.Context) (int, error) {
	yearStr := c.Query("year")
	if yearStr == "" {
		return time.Now().Year(), nil
	}
	return strconv.Atoi(yearStr)
}

func sendXLSX(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
