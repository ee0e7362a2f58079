package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/daybook-api/internal/domain/entity"
	"github.com/printdesk/daybook-api/internal/domain/enum"
	"github.com/printdesk/daybook-api/internal/domain/repository"
	infraRepo "github.com/printdesk/daybook-api/internal/infrastructure/repository"
	"github.com/printdesk/daybook-api/pkg/apperror"
	"gorm.io/gorm"
)

func newLedgerService(t *testing.T, db *gorm.DB, at time.Time) *LedgerService {
	t.Helper()

	svc := NewLedgerService(
		infraRepo.NewTransactionRepository(db),
		infraRepo.NewServiceRepository(db),
	)
	svc.now = fixedClock(at)
	return svc
}

func TestRecordTransaction(t *testing.T) {
	db := newTestDB(t)
	userID, ctx := newTestUser(t, db)
	xerox := newTestService(t, db, enum.ServiceTypeXerox, "Xerox B/W A4", 2.00)

	at := time.Date(2026, 8, 24, 14, 30, 5, 0, time.Local)
	ledger := newLedgerService(t, db, at)

	tx, err := ledger.RecordTransaction(ctx, &RecordTransactionInput{
		PaymentMethod: enum.PaymentMethodCash,
		ServiceID:     xerox.ID,
		Quantity:      10,
		Discount:      5.00,
		CustomerName:  "Kumar",
	})
	if err != nil {
		t.Fatalf("RecordTransaction failed: %v", err)
	}

	if tx.Cost != 2000 {
		t.Errorf("cost = %d paise, want 2000", tx.Cost)
	}
	if tx.FinalCost != 1500 {
		t.Errorf("final cost = %d paise, want 1500", tx.FinalCost)
	}
	if tx.UserID != userID {
		t.Errorf("user id = %s, want %s", tx.UserID, userID)
	}
	if tx.TxTime != "14:30:05" {
		t.Errorf("tx time = %q, want 14:30:05", tx.TxTime)
	}
	if got := tx.TxDate.Format("2006-01-02"); got != "2026-08-24" {
		t.Errorf("tx date = %q, want 2026-08-24", got)
	}
	if tx.ServiceType == nil || *tx.ServiceType != enum.ServiceTypeXerox {
		t.Errorf("service type = %v, want xerox", tx.ServiceType)
	}
	if tx.MultiService {
		t.Error("single-service transaction flagged as multi-service")
	}
}

func TestRecordTransactionDiscountExceedsGross(t *testing.T) {
	db := newTestDB(t)
	_, ctx := newTestUser(t, db)
	xerox := newTestService(t, db, enum.ServiceTypeXerox, "Xerox B/W A4", 2.00)
	ledger := newLedgerService(t, db, time.Now())

	tx, err := ledger.RecordTransaction(ctx, &RecordTransactionInput{
		PaymentMethod: enum.PaymentMethodCash,
		ServiceID:     xerox.ID,
		Quantity:      3,
		Discount:      100.00,
	})
	if err != nil {
		t.Fatalf("RecordTransaction failed: %v", err)
	}

	if tx.FinalCost != 0 {
		t.Errorf("final cost = %d paise, want 0 when discount exceeds gross", tx.FinalCost)
	}
	if tx.Cost != 600 {
		t.Errorf("gross cost = %d paise, want 600 to stay unchanged", tx.Cost)
	}
	if tx.Discount != 10000 {
		t.Errorf("recorded discount = %d paise, want 10000", tx.Discount)
	}
}

func TestRecordTransactionValidation(t *testing.T) {
	db := newTestDB(t)
	_, ctx := newTestUser(t, db)
	xerox := newTestService(t, db, enum.ServiceTypeXerox, "Xerox B/W A4", 2.00)
	ledger := newLedgerService(t, db, time.Now())

	cases := []struct {
		name  string
		input RecordTransactionInput
	}{
		{"zero quantity", RecordTransactionInput{PaymentMethod: enum.PaymentMethodCash, ServiceID: xerox.ID, Quantity: 0}},
		{"negative quantity", RecordTransactionInput{PaymentMethod: enum.PaymentMethodCash, ServiceID: xerox.ID, Quantity: -2}},
		{"negative discount", RecordTransactionInput{PaymentMethod: enum.PaymentMethodCash, ServiceID: xerox.ID, Quantity: 1, Discount: -1}},
		{"bad payment method", RecordTransactionInput{PaymentMethod: "Cheque", ServiceID: xerox.ID, Quantity: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.RecordTransaction(ctx, &tc.input)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			appErr := apperror.GetAppError(err)
			if appErr.Code != 422 {
				t.Errorf("status = %d, want 422", appErr.Code)
			}
		})
	}
}

func TestRecordTransactionUnknownService(t *testing.T) {
	db := newTestDB(t)
	_, ctx := newTestUser(t, db)
	ledger := newLedgerService(t, db, time.Now())

	_, err := ledger.RecordTransaction(ctx, &RecordTransactionInput{
		PaymentMethod: enum.PaymentMethodCash,
		ServiceID:     uuid.New(),
		Quantity:      1,
	})
	if err == nil {
		t.Fatal("expected not found error, got nil")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 404 {
		t.Errorf("status = %d, want 404", appErr.Code)
	}
}

func TestRecordTransactionRequiresIdentity(t *testing.T) {
	db := newTestDB(t)
	xerox := newTestService(t, db, enum.ServiceTypeXerox, "Xerox B/W A4", 2.00)
	ledger := newLedgerService(t, db, time.Now())

	_, err := ledger.RecordTransaction(context.Background(), &RecordTransactionInput{
		PaymentMethod: enum.PaymentMethodCash,
		ServiceID:     xerox.ID,
		Quantity:      1,
	})
	if err == nil {
		t.Fatal("expected identity error, got nil")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 401 {
		t.Errorf("status = %d, want 401", appErr.Code)
	}
}

func TestRecordMultiTransaction(t *testing.T) {
	db := newTestDB(t)
	_, ctx := newTestUser(t, db)
	xerox := newTestService(t, db, enum.ServiceTypeXerox, "Xerox B/W A4", 2.00)
	lamination := newTestService(t, db, enum.ServiceTypeLamination, "Lamination", 20.00)
	ledger := newLedgerService(t, db, time.Now())

	tx, err := ledger.RecordMultiTransaction(ctx, &RecordMultiTransactionInput{
		PaymentMethod: enum.PaymentMethodPhonePe,
		Items: []MultiServiceItemInput{
			{ServiceID: xerox.ID, Quantity: 10},
			{ServiceID: lamination.ID, Quantity: 2},
		},
		Discount: 10.00,
	})
	if err != nil {
		t.Fatalf("RecordMultiTransaction failed: %v", err)
	}

	// 10 x Rs 2 + 2 x Rs 20 = Rs 60, less Rs 10 discount
	if tx.Cost != 6000 {
		t.Errorf("cost = %d paise, want 6000", tx.Cost)
	}
	if tx.FinalCost != 5000 {
		t.Errorf("final cost = %d paise, want 5000", tx.FinalCost)
	}
	if tx.Quantity != 12 {
		t.Errorf("total quantity = %d, want 12", tx.Quantity)
	}
	if !tx.MultiService {
		t.Error("multi-service transaction not flagged")
	}

	// The first item's service becomes the header service
	if tx.ServiceID == nil || *tx.ServiceID != xerox.ID {
		t.Errorf("header service = %v, want first item's service %s", tx.ServiceID, xerox.ID)
	}
	if tx.ServiceType == nil || *tx.ServiceType != enum.ServiceTypeXerox {
		t.Errorf("header service type = %v, want xerox", tx.ServiceType)
	}

	if tx.Notes == nil {
		t.Fatal("multi-service transaction missing notes summary")
	}
	want := "Multi-service: Xerox B/W A4 (10x), Lamination (2x)"
	if *tx.Notes != want {
		t.Errorf("notes = %q, want %q", *tx.Notes, want)
	}

	if len(tx.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(tx.Items))
	}
	if tx.Items[0].UnitCost != 200 || tx.Items[0].Total != 2000 {
		t.Errorf("first item snapshot = %d/%d paise, want 200/2000", tx.Items[0].UnitCost, tx.Items[0].Total)
	}
	if tx.Items[1].UnitCost != 2000 || tx.Items[1].Total != 4000 {
		t.Errorf("second item snapshot = %d/%d paise, want 2000/4000", tx.Items[1].UnitCost, tx.Items[1].Total)
	}
}

func TestRecordMultiTransactionAppendsOperatorNotes(t *testing.T) {
	db := newTestDB(t)
	_, ctx := newTestUser(t, db)
	xerox := newTestService(t, db, enum.ServiceTypeXerox, "Xerox B/W A4", 2.00)
	ledger := newLedgerService(t, db, time.Now())

	tx, err := ledger.RecordMultiTransaction(ctx, &RecordMultiTransactionInput{
		PaymentMethod: enum.PaymentMethodCash,
		Items:         []MultiServiceItemInput{{ServiceID: xerox.ID, Quantity: 5}},
		Notes:         "urgent order",
	})
	if err != nil {
		t.Fatalf("RecordMultiTransaction failed: %v", err)
	}

	if tx.Notes == nil || !strings.HasSuffix(*tx.Notes, " | Notes: urgent order") {
		t.Errorf("notes = %v, want operator notes appended after summary", tx.Notes)
	}
}

func TestRecordMultiTransactionUnknownServiceWritesNothing(t *testing.T) {
	db := newTestDB(t)
	_, ctx := newTestUser(t, db)
	xerox := newTestService(t, db, enum.ServiceTypeXerox, "Xerox B/W A4", 2.00)
	ledger := newLedgerService(t, db, time.Now())

	_, err := ledger.RecordMultiTransaction(ctx, &RecordMultiTransactionInput{
		PaymentMethod: enum.PaymentMethodCash,
		Items: []MultiServiceItemInput{
			{ServiceID: xerox.ID, Quantity: 1},
			{ServiceID: uuid.New(), Quantity: 1},
		},
	})
	if err == nil {
		t.Fatal("expected not found error, got nil")
	}

	var count int64
	db.Model(&entity.Transaction{}).Count(&count)
	if count != 0 {
		t.Errorf("transactions written = %d, want 0 after failed multi-service sale", count)
	}
}

func TestPriceSnapshotImmuneToCatalogChanges(t *testing.T) {
	db := newTestDB(t)
	_, ctx := newTestUser(t, db)
	xerox := newTestService(t, db, enum.ServiceTypeXerox, "Xerox B/W A4", 2.00)
	ledger := newLedgerService(t, db, time.Now())

	tx, err := ledger.RecordTransaction(ctx, &RecordTransactionInput{
		PaymentMethod: enum.PaymentMethodCash,
		ServiceID:     xerox.ID,
		Quantity:      10,
	})
	if err != nil {
		t.Fatalf("RecordTransaction failed: %v", err)
	}

	// Double the catalog price after the sale
	xerox.SetPriceFromDecimal(4.00)
	if err := db.Save(xerox).Error; err != nil {
		t.Fatalf("failed to update service price: %v", err)
	}

	var reloaded entity.Transaction
	if err := db.First(&reloaded, "id = ?", tx.ID).Error; err != nil {
		t.Fatalf("failed to reload transaction: %v", err)
	}
	if reloaded.Cost != 2000 || reloaded.FinalCost != 2000 {
		t.Errorf("recorded amounts = %d/%d paise, want 2000/2000 unaffected by price change", reloaded.Cost, reloaded.FinalCost)
	}
}

func TestDeleteTransaction(t *testing.T) {
	db := newTestDB(t)
	_, ctx := newTestUser(t, db)
	xerox := newTestService(t, db, enum.ServiceTypeXerox, "Xerox B/W A4", 2.00)
	lamination := newTestService(t, db, enum.ServiceTypeLamination, "Lamination", 20.00)
	ledger := newLedgerService(t, db, time.Now())

	tx, err := ledger.RecordMultiTransaction(ctx, &RecordMultiTransactionInput{
		PaymentMethod: enum.PaymentMethodCash,
		Items: []MultiServiceItemInput{
			{ServiceID: xerox.ID, Quantity: 2},
			{ServiceID: lamination.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("RecordMultiTransaction failed: %v", err)
	}

	if err := ledger.DeleteTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("DeleteTransaction failed: %v", err)
	}

	var txCount, itemCount int64
	db.Model(&entity.Transaction{}).Count(&txCount)
	db.Model(&entity.TransactionItem{}).Count(&itemCount)
	if txCount != 0 || itemCount != 0 {
		t.Errorf("rows after delete = %d transactions, %d items, want 0/0", txCount, itemCount)
	}

	// Deleting again succeeds quietly
	if err := ledger.DeleteTransaction(ctx, tx.ID); err != nil {
		t.Errorf("repeat delete returned error: %v", err)
	}
	if err := ledger.DeleteTransaction(ctx, uuid.New()); err != nil {
		t.Errorf("delete of unknown id returned error: %v", err)
	}
}

func TestDeleteTransactionOtherOwnerLeavesSaleIntact(t *testing.T) {
	db := newTestDB(t)
	_, ctxA := newTestUser(t, db)
	_, ctxB := newTestUser(t, db)
	xerox := newTestService(t, db, enum.ServiceTypeXerox, "Xerox B/W A4", 2.00)
	lamination := newTestService(t, db, enum.ServiceTypeLamination, "Lamination", 20.00)
	ledger := newLedgerService(t, db, time.Now())

	tx, err := ledger.RecordMultiTransaction(ctxA, &RecordMultiTransactionInput{
		PaymentMethod: enum.PaymentMethodCash,
		Items: []MultiServiceItemInput{
			{ServiceID: xerox.ID, Quantity: 2},
			{ServiceID: lamination.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("RecordMultiTransaction failed: %v", err)
	}

	// Another operator deleting this id must touch neither header nor items
	if err := ledger.DeleteTransaction(ctxB, tx.ID); err != nil {
		t.Fatalf("DeleteTransaction failed: %v", err)
	}

	var txCount, itemCount int64
	db.Model(&entity.Transaction{}).Count(&txCount)
	db.Model(&entity.TransactionItem{}).Count(&itemCount)
	if txCount != 1 || itemCount != 2 {
		t.Errorf("rows after foreign delete = %d transactions, %d items, want 1/2", txCount, itemCount)
	}

	// The owner can still delete the whole sale
	if err := ledger.DeleteTransaction(ctxA, tx.ID); err != nil {
		t.Fatalf("DeleteTransaction failed: %v", err)
	}
	db.Model(&entity.Transaction{}).Count(&txCount)
	db.Model(&entity.TransactionItem{}).Count(&itemCount)
	if txCount != 0 || itemCount != 0 {
		t.Errorf("rows after owner delete = %d transactions, %d items, want 0/0", txCount, itemCount)
	}
}

func TestRecordTransactionRoundsDiscountToPaise(t *testing.T) {
	db := newTestDB(t)
	_, ctx := newTestUser(t, db)
	xerox := newTestService(t, db, enum.ServiceTypeXerox, "Xerox B/W A4", 2.00)
	ledger := newLedgerService(t, db, time.Now())

	tx, err := ledger.RecordTransaction(ctx, &RecordTransactionInput{
		PaymentMethod: enum.PaymentMethodCash,
		ServiceID:     xerox.ID,
		Quantity:      10,
		Discount:      19.99,
	})
	if err != nil {
		t.Fatalf("RecordTransaction failed: %v", err)
	}

	if tx.Discount != 1999 {
		t.Errorf("discount = %d paise, want 1999", tx.Discount)
	}
	if tx.FinalCost != 1 {
		t.Errorf("final cost = %d paise, want 1", tx.FinalCost)
	}
}

func TestToday(t *testing.T) {
	db := newTestDB(t)
	_, ctx := newTestUser(t, db)
	xerox := newTestService(t, db, enum.ServiceTypeXerox, "Xerox B/W A4", 2.00)

	at := time.Date(2026, 8, 24, 10, 0, 0, 0, time.Local)
	ledger := newLedgerService(t, db, at)

	if _, err := ledger.RecordTransaction(ctx, &RecordTransactionInput{
		PaymentMethod: enum.PaymentMethodCash, ServiceID: xerox.ID, Quantity: 10, Discount: 5,
	}); err != nil {
		t.Fatalf("RecordTransaction failed: %v", err)
	}
	if _, err := ledger.RecordTransaction(ctx, &RecordTransactionInput{
		PaymentMethod: enum.PaymentMethodPhonePe, ServiceID: xerox.ID, Quantity: 5,
	}); err != nil {
		t.Fatalf("RecordTransaction failed: %v", err)
	}

	// A sale on the previous day must not appear
	ledger.now = fixedClock(at.AddDate(0, 0, -1))
	if _, err := ledger.RecordTransaction(ctx, &RecordTransactionInput{
		PaymentMethod: enum.PaymentMethodCash, ServiceID: xerox.ID, Quantity: 100,
	}); err != nil {
		t.Fatalf("RecordTransaction failed: %v", err)
	}
	ledger.now = fixedClock(at)

	summary, err := ledger.Today(ctx)
	if err != nil {
		t.Fatalf("Today failed: %v", err)
	}

	if summary.Count != 2 {
		t.Errorf("count = %d, want 2", summary.Count)
	}
	// Rs 15 + Rs 10
	if summary.TotalRevenue != 25.00 {
		t.Errorf("total revenue = %.2f, want 25.00", summary.TotalRevenue)
	}
	if summary.TotalPages != 15 {
		t.Errorf("total pages = %d, want 15", summary.TotalPages)
	}
}

func TestListTransactionsScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	_, ctxA := newTestUser(t, db)
	_, ctxB := newTestUser(t, db)
	xerox := newTestService(t, db, enum.ServiceTypeXerox, "Xerox B/W A4", 2.00)
	ledger := newLedgerService(t, db, time.Now())

	if _, err := ledger.RecordTransaction(ctxA, &RecordTransactionInput{
		PaymentMethod: enum.PaymentMethodCash, ServiceID: xerox.ID, Quantity: 1,
	}); err != nil {
		t.Fatalf("RecordTransaction failed: %v", err)
	}

	result, err := ledger.ListTransactions(ctxB, &repository.TransactionFilterParams{})
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(result.Items) != 0 {
		t.Errorf("other operator sees %d transactions, want 0", len(result.Items))
	}

	result, err = ledger.ListTransactions(ctxA, &repository.TransactionFilterParams{})
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(result.Items) != 1 {
		t.Errorf("owner sees %d transactions, want 1", len(result.Items))
	}
}
