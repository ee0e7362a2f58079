package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/printdesk/daybook-api/internal/application/service"
	"github.com/printdesk/daybook-api/internal/presentation/http/dto/response"
)

// DaySheetHandler handles day sheet and printer HTTP requests
type DaySheetHandler struct {
	daySheetService *service.DaySheetService
}

// NewDaySheetHandler creates a new day sheet handler
func NewDaySheetHandler(daySheetService *service.DaySheetService) *DaySheetHandler {
	return &DaySheetHandler{daySheetService: daySheetService}
}

// Get handles fetching today's day sheet
func (h *DaySheetHandler) Get(c *gin.Context) {
	sheet, err := h.daySheetService.TodaySheet(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Day sheet generated successfully", sheet)
}

// Print handles printing today's day sheet
func (h *DaySheetHandler) Print(c *gin.Context) {
	sheet, err := h.daySheetService.PrintToday(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Day sheet printed successfully", sheet)
}

// PrinterStatus handles the printer connectivity check
func (h *DaySheetHandler) PrinterStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved successfully", h.daySheetService.Status())
}
