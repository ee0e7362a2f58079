package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/daybook-api/internal/domain/entity"
	"github.com/printdesk/daybook-api/internal/domain/enum"
	"github.com/printdesk/daybook-api/pkg/pagination"
)

// TransactionFilterParams holds the filters for listing transactions
type TransactionFilterParams struct {
	Pagination    *pagination.PaginationParams
	PaymentMethod *enum.PaymentMethod
	ServiceType   *enum.ServiceType
	StartDate     *time.Time
	EndDate       *time.Time
	Search        string
}

// TransactionRepository defines day-book persistence operations
type TransactionRepository interface {
	// CreateWithItems persists the transaction header and its line items as a
	// single atomic unit. Either everything is written or nothing is.
	CreateWithItems(ctx context.Context, tx *entity.Transaction, items []entity.TransactionItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	// List returns transactions newest first by (tx_date, tx_time)
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
	// ListByDate returns all of a day's transactions newest first
	ListByDate(ctx context.Context, date time.Time) ([]entity.Transaction, error)
	// Delete removes a transaction and its items. Deleting an id that does
	// not exist is a no-op, not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
