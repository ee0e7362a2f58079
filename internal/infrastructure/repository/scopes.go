package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

// UserIDKey is the context key carrying the authenticated operator's ID.
// Ledger rows belong to the operator who recorded them; the identity travels
// explicitly in the context instead of ambient global state.
const UserIDKey ctxKey = "user_id"

// OwnerScope returns a GORM scope that filters rows by the owning operator.
// If the identity is missing from the context the scope matches nothing,
// preventing accidental cross-account reads.
func OwnerScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where("user_id = ?", userID)
	}
}

// WithUser adds the operator ID to the context
func WithUser(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID extracts the operator ID from the context
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
