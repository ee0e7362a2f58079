package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/daybook-api/internal/domain/entity"
	"github.com/printdesk/daybook-api/internal/domain/enum"
	"github.com/printdesk/daybook-api/internal/domain/repository"
	infraRepo "github.com/printdesk/daybook-api/internal/infrastructure/repository"
	"github.com/printdesk/daybook-api/pkg/apperror"
	"github.com/printdesk/daybook-api/pkg/pagination"
)

// LedgerService records and removes day-book transactions. Transactions are
// stamped with the server clock at recording time and are immutable afterwards;
// the only mutation is a full delete.
type LedgerService struct {
	txRepo      repository.TransactionRepository
	serviceRepo repository.ServiceRepository
	now         func() time.Time
}

// NewLedgerService creates a new ledger service
func NewLedgerService(txRepo repository.TransactionRepository, serviceRepo repository.ServiceRepository) *LedgerService {
	return &LedgerService{
		txRepo:      txRepo,
		serviceRepo: serviceRepo,
		now:         time.Now,
	}
}

// RecordTransactionInput represents a single-service sale
type RecordTransactionInput struct {
	PaymentMethod enum.PaymentMethod
	ServiceID     uuid.UUID
	Quantity      int
	Discount      float64 // rupees
	Notes         string
	CustomerName  string
	CustomerPhone string
}

// MultiServiceItemInput is one service line of a multi-service sale
type MultiServiceItemInput struct {
	ServiceID uuid.UUID
	Quantity  int
}

// RecordMultiTransactionInput represents a multi-service sale
type RecordMultiTransactionInput struct {
	PaymentMethod enum.PaymentMethod
	Items         []MultiServiceItemInput
	Discount      float64 // rupees
	Notes         string
	CustomerName  string
	CustomerPhone string
}

// RecordTransaction records a single-service sale. The gross cost is
// quantity times the catalog price snapshotted now; the payable amount is
// floored at zero when the discount exceeds the gross.
func (s *LedgerService) RecordTransaction(ctx context.Context, input *RecordTransactionInput) (*entity.Transaction, error) {
	userID, ok := infraRepo.GetUserID(ctx)
	if !ok {
		return nil, apperror.ErrIdentityRequired
	}

	if fieldErrs := validateSale(input.PaymentMethod, input.Discount, []MultiServiceItemInput{{ServiceID: input.ServiceID, Quantity: input.Quantity}}); len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	svc, err := s.serviceRepo.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, apperror.NewPersistenceError("load service", err)
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service")
	}

	cost := svc.Price * int64(input.Quantity)
	discount := toPaise(input.Discount)
	now := s.now()

	tx := &entity.Transaction{
		UserID:        userID,
		TxDate:        dateOnly(now),
		TxTime:        now.Format("15:04:05"),
		PaymentMethod: input.PaymentMethod,
		Quantity:      input.Quantity,
		Cost:          cost,
		Discount:      discount,
		FinalCost:     entity.FinalCostFor(cost, discount),
		ServiceID:     &svc.ID,
		ServiceType:   &svc.ServiceType,
		Notes:         optional(input.Notes),
		CustomerName:  optional(input.CustomerName),
		CustomerPhone: optional(input.CustomerPhone),
	}

	if err := s.txRepo.CreateWithItems(ctx, tx, nil); err != nil {
		return nil, apperror.NewPersistenceError("record transaction", err)
	}

	return tx, nil
}

// RecordMultiTransaction records a sale composed of several services. Line
// totals use the catalog prices snapshotted now; the first item's service is
// kept on the header for single-service compatible reporting and a textual
// summary of all lines is recorded in the notes. Header and items are written
// as one atomic unit.
func (s *LedgerService) RecordMultiTransaction(ctx context.Context, input *RecordMultiTransactionInput) (*entity.Transaction, error) {
	userID, ok := infraRepo.GetUserID(ctx)
	if !ok {
		return nil, apperror.ErrIdentityRequired
	}

	if fieldErrs := validateSale(input.PaymentMethod, input.Discount, input.Items); len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	serviceIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		serviceIDs[i] = item.ServiceID
	}

	services, err := s.serviceRepo.GetByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, apperror.NewPersistenceError("load services", err)
	}
	serviceMap := make(map[uuid.UUID]*entity.Service, len(services))
	for i := range services {
		serviceMap[services[i].ID] = &services[i]
	}

	var cost int64
	var totalQuantity int
	var summaryParts []string
	items := make([]entity.TransactionItem, 0, len(input.Items))

	for _, item := range input.Items {
		svc, exists := serviceMap[item.ServiceID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Service %s", item.ServiceID))
		}

		lineTotal := svc.Price * int64(item.Quantity)
		cost += lineTotal
		totalQuantity += item.Quantity
		summaryParts = append(summaryParts, fmt.Sprintf("%s (%dx)", svc.Name, item.Quantity))

		items = append(items, entity.TransactionItem{
			ServiceID: svc.ID,
			Quantity:  item.Quantity,
			UnitCost:  svc.Price,
			Total:     lineTotal,
		})
	}

	discount := toPaise(input.Discount)
	now := s.now()

	notes := "Multi-service: " + strings.Join(summaryParts, ", ")
	if input.Notes != "" {
		notes += " | Notes: " + input.Notes
	}

	primary := serviceMap[input.Items[0].ServiceID]
	tx := &entity.Transaction{
		UserID:        userID,
		TxDate:        dateOnly(now),
		TxTime:        now.Format("15:04:05"),
		PaymentMethod: input.PaymentMethod,
		Quantity:      totalQuantity,
		Cost:          cost,
		Discount:      discount,
		FinalCost:     entity.FinalCostFor(cost, discount),
		ServiceID:     &primary.ID,
		ServiceType:   &primary.ServiceType,
		Notes:         &notes,
		CustomerName:  optional(input.CustomerName),
		CustomerPhone: optional(input.CustomerPhone),
		MultiService:  true,
	}

	if err := s.txRepo.CreateWithItems(ctx, tx, items); err != nil {
		return nil, apperror.NewPersistenceError("record multi-service transaction", err)
	}

	return tx, nil
}

// DeleteTransaction removes a transaction and its line items. Deleting an id
// that no longer exists succeeds quietly so a stale delete never alarms the
// operator.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	if _, ok := infraRepo.GetUserID(ctx); !ok {
		return apperror.ErrIdentityRequired
	}

	if err := s.txRepo.Delete(ctx, id); err != nil {
		return apperror.NewPersistenceError("delete transaction", err)
	}
	return nil
}

// ListTransactions lists transactions newest first with optional filters
func (s *LedgerService) ListTransactions(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	txs, total, err := s.txRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewPersistenceError("list transactions", err)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(txs, pag), nil
}

// TodaySummary carries the current day's transactions and running totals
type TodaySummary struct {
	Transactions []entity.Transaction `json:"transactions"`
	TotalRevenue float64              `json:"total_revenue"`
	TotalPages   int                  `json:"total_pages"`
	Count        int                  `json:"count"`
}

// Today returns the current day's transactions with footer totals
func (s *LedgerService) Today(ctx context.Context) (*TodaySummary, error) {
	txs, err := s.txRepo.ListByDate(ctx, s.now())
	if err != nil {
		return nil, apperror.NewPersistenceError("list today's transactions", err)
	}

	summary := &TodaySummary{Transactions: txs, Count: len(txs)}
	var revenue int64
	for _, tx := range txs {
		revenue += tx.FinalCost
		summary.TotalPages += tx.Quantity
	}
	summary.TotalRevenue = float64(revenue) / 100

	return summary, nil
}

// validateSale checks the caller-supplied parts of a sale before any
// persistence call is made.
func validateSale(method enum.PaymentMethod, discount float64, items []MultiServiceItemInput) []apperror.FieldError {
	var fieldErrs []apperror.FieldError

	if !method.Valid() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "payment_method", Message: "must be Cash or PhonePe"})
	}
	if discount < 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "discount", Message: "must not be negative"})
	}
	if len(items) == 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "items", Message: "at least one service is required"})
	}
	for i, item := range items {
		if item.Quantity <= 0 {
			fieldErrs = append(fieldErrs, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "must be a positive integer",
			})
		}
		if item.ServiceID == uuid.Nil {
			fieldErrs = append(fieldErrs, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].service_id", i),
				Message: "service is required",
			})
		}
	}

	return fieldErrs
}

// toPaise converts a rupee amount to paise, rounding to the nearest paisa.
func toPaise(rupees float64) int64 {
	return int64(math.Round(rupees * 100))
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// dateOnly truncates a timestamp to midnight in its own location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
