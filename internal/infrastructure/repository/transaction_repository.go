package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/daybook-api/internal/domain/entity"
	domainRepo "github.com/printdesk/daybook-api/internal/domain/repository"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new day-book repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

// CreateWithItems writes the header and its line items inside one database
// transaction. A failure on either side rolls everything back, so a partially
// written multi-service sale can never surface in listings or reports.
func (r *transactionRepository) CreateWithItems(ctx context.Context, tx *entity.Transaction, items []entity.TransactionItem) error {
	return r.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		if err := dbtx.Create(tx).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].TransactionID = tx.ID
		}
		if err := dbtx.Create(&items).Error; err != nil {
			return err
		}
		tx.Items = items
		return nil
	})
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var tx entity.Transaction
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		Preload("Service").
		Preload("Items.Service").
		First(&tx, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var txs []entity.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Transaction{}).Scopes(OwnerScope(ctx))

	if params.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *params.PaymentMethod)
	}
	if params.ServiceType != nil {
		query = query.Where("service_type = ?", *params.ServiceType)
	}
	if params.StartDate != nil {
		query = query.Where("tx_date >= ?", dateOnly(*params.StartDate))
	}
	if params.EndDate != nil {
		query = query.Where("tx_date < ?", dateOnly(*params.EndDate).AddDate(0, 0, 1))
	}
	if params.Search != "" {
		query = query.Where("customer_name LIKE ? OR notes LIKE ?", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Service").
		Preload("Items.Service").
		Order("tx_date DESC, tx_time DESC").
		Find(&txs).Error

	return txs, total, err
}

func (r *transactionRepository) ListByDate(ctx context.Context, date time.Time) ([]entity.Transaction, error) {
	day := dateOnly(date)

	var txs []entity.Transaction
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		Where("tx_date >= ? AND tx_date < ?", day, day.AddDate(0, 0, 1)).
		Preload("Service").
		Preload("Items.Service").
		Order("tx_time DESC").
		Find(&txs).Error
	return txs, err
}

// Delete removes the header and its items together. The header delete is
// owner-scoped and the item delete only runs when a header row was actually
// removed, so an id belonging to another operator (or no one) touches nothing.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		res := dbtx.Scopes(OwnerScope(ctx)).Delete(&entity.Transaction{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return dbtx.Delete(&entity.TransactionItem{}, "transaction_id = ?", id).Error
	})
}

// dateOnly truncates a timestamp to midnight in its own location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
