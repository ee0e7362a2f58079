package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/printdesk/daybook-api/internal/application/service"
	"github.com/printdesk/daybook-api/internal/domain/enum"
	"github.com/printdesk/daybook-api/internal/domain/repository"
	"github.com/printdesk/daybook-api/internal/presentation/http/dto/request"
	"github.com/printdesk/daybook-api/internal/presentation/http/dto/response"
	"github.com/printdesk/daybook-api/pkg/pagination"
)

// LedgerHandler handles day-book transaction HTTP requests
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// List handles listing transactions with optional filters
func (h *LedgerHandler) List(c *gin.Context) {
	var filter request.TransactionFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.TransactionFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search: filter.Search,
	}

	if filter.PaymentMethod != "" {
		method := enum.PaymentMethod(filter.PaymentMethod)
		params.PaymentMethod = &method
	}
	if filter.ServiceType != "" {
		serviceType := enum.ServiceType(filter.ServiceType)
		params.ServiceType = &serviceType
	}
	if filter.StartDate != "" {
		if start, err := time.ParseInLocation("2006-01-02", filter.StartDate, time.Local); err == nil {
			params.StartDate = &start
		}
	}
	if filter.EndDate != "" {
		if end, err := time.ParseInLocation("2006-01-02", filter.EndDate, time.Local); err == nil {
			params.EndDate = &end
		}
	}

	result, err := h.ledgerService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// Create handles recording a single-service transaction
func (h *LedgerHandler) Create(c *gin.Context) {
	var req request.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	tx, err := h.ledgerService.RecordTransaction(c.Request.Context(), &service.RecordTransactionInput{
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		ServiceID:     serviceID,
		Quantity:      req.Quantity,
		Discount:      req.Discount,
		Notes:         req.Notes,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction recorded successfully", tx)
}

// CreateMulti handles recording a multi-service transaction
func (h *LedgerHandler) CreateMulti(c *gin.Context) {
	var req request.RecordMultiTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items := make([]service.MultiServiceItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		serviceID, err := uuid.Parse(item.ServiceID)
		if err != nil {
			response.BadRequest(c, "Invalid service ID: "+item.ServiceID)
			return
		}
		items = append(items, service.MultiServiceItemInput{
			ServiceID: serviceID,
			Quantity:  item.Quantity,
		})
	}

	tx, err := h.ledgerService.RecordMultiTransaction(c.Request.Context(), &service.RecordMultiTransactionInput{
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		Items:         items,
		Discount:      req.Discount,
		Notes:         req.Notes,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction recorded successfully", tx)
}

// Delete handles removing a transaction
func (h *LedgerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.ledgerService.DeleteTransaction(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Today handles fetching the current day's transactions and totals
func (h *LedgerHandler) Today(c *gin.Context) {
	summary, err := h.ledgerService.Today(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Today's transactions retrieved successfully", summary)
}
