package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/daybook-api/internal/domain/entity"
	"github.com/printdesk/daybook-api/internal/domain/enum"
	infraRepo "github.com/printdesk/daybook-api/internal/infrastructure/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database and migrates the schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Service{},
		&entity.Transaction{},
		&entity.TransactionItem{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// newTestUser creates an operator account and returns a context carrying
// their identity.
func newTestUser(t *testing.T, db *gorm.DB) (uuid.UUID, context.Context) {
	t.Helper()

	user := &entity.User{
		FirstName: "Ravi",
		Email:     fmt.Sprintf("ravi-%s@example.com", uuid.New().String()[:8]),
		Password:  "not-a-real-hash",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user.ID, infraRepo.WithUser(context.Background(), user.ID)
}

// newTestService seeds one catalog entry with a price in rupees.
func newTestService(t *testing.T, db *gorm.DB, serviceType enum.ServiceType, name string, priceRupees float64) *entity.Service {
	t.Helper()

	svc := &entity.Service{
		ServiceType: serviceType,
		Name:        name,
	}
	svc.SetPriceFromDecimal(priceRupees)
	if err := db.Create(svc).Error; err != nil {
		t.Fatalf("failed to create test service: %v", err)
	}
	return svc
}

// fixedClock returns a clock function pinned to the given instant.
func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
