package repository

import (
	"context"
	"time"

	domainRepo "github.com/printdesk/daybook-api/internal/domain/repository"
	"github.com/printdesk/daybook-api/pkg/apperror"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report roll-up repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

// TotalsByPaymentMethod sums final_cost per payment method for [from, to).
func (r *reportRepository) TotalsByPaymentMethod(ctx context.Context, from, to time.Time) ([]domainRepo.GroupedTotal, error) {
	userID, ok := GetUserID(ctx)
	if !ok {
		return nil, apperror.ErrIdentityRequired
	}

	var results []domainRepo.GroupedTotal
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			payment_method AS key,
			COALESCE(SUM(final_cost), 0) AS total,
			COUNT(*) AS count
		FROM transactions
		WHERE user_id = ?
		AND deleted_at IS NULL
		AND tx_date >= ? AND tx_date < ?
		GROUP BY payment_method
	`, userID, from, to).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

// TotalsByServiceType sums final_cost per service category for [from, to).
func (r *reportRepository) TotalsByServiceType(ctx context.Context, from, to time.Time) ([]domainRepo.GroupedTotal, error) {
	userID, ok := GetUserID(ctx)
	if !ok {
		return nil, apperror.ErrIdentityRequired
	}

	var results []domainRepo.GroupedTotal
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(service_type, 'xerox') AS key,
			COALESCE(SUM(final_cost), 0) AS total,
			COUNT(*) AS count
		FROM transactions
		WHERE user_id = ?
		AND deleted_at IS NULL
		AND tx_date >= ? AND tx_date < ?
		GROUP BY service_type
	`, userID, from, to).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

// WindowTotal returns the summed final cost and row count for [from, to).
func (r *reportRepository) WindowTotal(ctx context.Context, from, to time.Time) (int64, int64, error) {
	userID, ok := GetUserID(ctx)
	if !ok {
		return 0, 0, apperror.ErrIdentityRequired
	}

	var row struct {
		Total int64
		Count int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(final_cost), 0) AS total,
			COUNT(*) AS count
		FROM transactions
		WHERE user_id = ?
		AND deleted_at IS NULL
		AND tx_date >= ? AND tx_date < ?
	`, userID, from, to).Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}

	return row.Total, row.Count, nil
}
