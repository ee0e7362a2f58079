package repository

import (
	"context"
	"time"
)

// GroupedTotal is one (dimension value, summed final cost) pair for a window.
// Key carries the payment method or service type the row was grouped on.
type GroupedTotal struct {
	Key   string
	Total int64
	Count int64
}

// ReportRepository derives revenue roll-ups from the transactions table.
// All sums are over final_cost in paise; windows are half-open [from, to).
type ReportRepository interface {
	TotalsByPaymentMethod(ctx context.Context, from, to time.Time) ([]GroupedTotal, error)
	TotalsByServiceType(ctx context.Context, from, to time.Time) ([]GroupedTotal, error)
	// WindowTotal returns the summed final cost and transaction count for a window
	WindowTotal(ctx context.Context, from, to time.Time) (total int64, count int64, err error)
}
