package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/daybook-api/internal/config"
	"github.com/printdesk/daybook-api/internal/domain/entity"
	"github.com/printdesk/daybook-api/internal/domain/enum"
	infraRepo "github.com/printdesk/daybook-api/internal/infrastructure/repository"
	"github.com/printdesk/daybook-api/pkg/apperror"
	"gorm.io/gorm"
)

type capturePrinter struct {
	printed   [][]byte
	failWith  error
	connected bool
}

func (p *capturePrinter) Print(data []byte) error {
	if p.failWith != nil {
		return p.failWith
	}
	p.printed = append(p.printed, data)
	return nil
}

func (p *capturePrinter) Close() error      { return nil }
func (p *capturePrinter) IsConnected() bool { return p.connected }

var testShop = config.ShopConfig{
	Name:    "Sri Balaji Xerox",
	Address: "12 Market Road",
	Phone:   "98765 43210",
}

func newDaySheetService(t *testing.T, db *gorm.DB, device *capturePrinter, at time.Time) *DaySheetService {
	t.Helper()

	svc := NewDaySheetService(
		infraRepo.NewTransactionRepository(db),
		infraRepo.NewUserRepository(db),
		device,
		testShop,
		32,
	)
	svc.now = fixedClock(at)
	return svc
}

func sampleTransactions() []entity.Transaction {
	xerox := enum.ServiceTypeXerox
	return []entity.Transaction{
		{
			TxTime:        "14:05:00",
			PaymentMethod: enum.PaymentMethodPhonePe,
			Quantity:      2,
			Cost:          4000,
			Discount:      0,
			FinalCost:     4000,
			MultiService:  true,
		},
		{
			TxTime:        "10:30:00",
			PaymentMethod: enum.PaymentMethodCash,
			Quantity:      10,
			Cost:          2000,
			Discount:      500,
			FinalCost:     1500,
			ServiceType:   &xerox,
		},
	}
}

func TestBuildDaySheet(t *testing.T) {
	date := time.Date(2026, 8, 24, 18, 0, 0, 0, time.Local)
	sheet := BuildDaySheet(testShop, date, "Ravi", sampleTransactions())

	if sheet.Header.ShopName != "Sri Balaji Xerox" {
		t.Errorf("shop name = %q", sheet.Header.ShopName)
	}
	if sheet.Date != "2026-08-24" {
		t.Errorf("date = %q, want 2026-08-24", sheet.Date)
	}
	if sheet.Operator != "Ravi" {
		t.Errorf("operator = %q, want Ravi", sheet.Operator)
	}
	if len(sheet.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(sheet.Rows))
	}

	if sheet.CashTotal != 15.00 {
		t.Errorf("cash total = %.2f, want 15.00", sheet.CashTotal)
	}
	if sheet.PhonePeTotal != 40.00 {
		t.Errorf("phonepe total = %.2f, want 40.00", sheet.PhonePeTotal)
	}
	if sheet.TotalRevenue != 55.00 {
		t.Errorf("total revenue = %.2f, want 55.00", sheet.TotalRevenue)
	}
	if sheet.TotalPages != 12 {
		t.Errorf("total pages = %d, want 12", sheet.TotalPages)
	}
	if sheet.Count != 2 {
		t.Errorf("count = %d, want 2", sheet.Count)
	}

	if sheet.Rows[0].Service != "Multi-service" {
		t.Errorf("multi-service row label = %q", sheet.Rows[0].Service)
	}
	if sheet.Rows[1].Service != "Xerox" {
		t.Errorf("typed row label = %q, want Xerox", sheet.Rows[1].Service)
	}
}

func TestBuildDaySheetEmptyDay(t *testing.T) {
	sheet := BuildDaySheet(testShop, time.Now(), "", nil)

	if sheet.Count != 0 || sheet.TotalRevenue != 0 {
		t.Errorf("empty day sheet = %d rows / %.2f revenue, want 0/0", sheet.Count, sheet.TotalRevenue)
	}
	if sheet.Rows == nil {
		t.Error("rows should be an empty slice, not nil")
	}
}

func TestFormatDaySheetDeterministic(t *testing.T) {
	date := time.Date(2026, 8, 24, 18, 0, 0, 0, time.Local)
	sheet := BuildDaySheet(testShop, date, "Ravi", sampleTransactions())

	first := FormatDaySheet(sheet, 32)
	second := FormatDaySheet(sheet, 32)

	if !bytes.Equal(first, second) {
		t.Error("rendering the same sheet twice produced different bytes")
	}
	if !bytes.Contains(first, []byte("Sri Balaji Xerox")) {
		t.Error("rendered sheet missing shop name")
	}
	if !bytes.Contains(first, []byte("DAY SHEET")) {
		t.Error("rendered sheet missing title")
	}
	if !bytes.Contains(first, []byte("Rs55.00")) {
		t.Error("rendered sheet missing grand total")
	}
	// Ends with feed lines and a partial cut
	if !bytes.HasSuffix(first, []byte{0x1D, 'V', 0x01}) {
		t.Error("rendered sheet does not end with a partial cut")
	}
}

func TestPrintToday(t *testing.T) {
	db := newTestDB(t)
	_, ctx := newTestUser(t, db)
	xerox := newTestService(t, db, enum.ServiceTypeXerox, "Xerox B/W A4", 2.00)

	at := time.Date(2026, 8, 24, 12, 0, 0, 0, time.Local)
	ledger := newLedgerService(t, db, at)
	if _, err := ledger.RecordTransaction(ctx, &RecordTransactionInput{
		PaymentMethod: enum.PaymentMethodCash, ServiceID: xerox.ID, Quantity: 10,
	}); err != nil {
		t.Fatalf("RecordTransaction failed: %v", err)
	}

	device := &capturePrinter{connected: true}
	sheets := newDaySheetService(t, db, device, at)

	sheet, err := sheets.PrintToday(ctx)
	if err != nil {
		t.Fatalf("PrintToday failed: %v", err)
	}
	if sheet.Count != 1 {
		t.Errorf("sheet count = %d, want 1", sheet.Count)
	}
	if sheet.Operator != "Ravi" {
		t.Errorf("operator = %q, want Ravi", sheet.Operator)
	}
	if len(device.printed) != 1 {
		t.Fatalf("print jobs = %d, want 1", len(device.printed))
	}
	if !bytes.Contains(device.printed[0], []byte("Sri Balaji Xerox")) {
		t.Error("printed data missing shop header")
	}
}

type failingUserRepo struct {
	err error
}

func (r *failingUserRepo) Create(ctx context.Context, user *entity.User) error { return r.err }
func (r *failingUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return nil, r.err
}
func (r *failingUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, r.err
}
func (r *failingUserRepo) Update(ctx context.Context, user *entity.User) error { return r.err }

func TestTodaySheetOperatorLookupFailure(t *testing.T) {
	db := newTestDB(t)
	_, ctx := newTestUser(t, db)

	sheets := NewDaySheetService(
		infraRepo.NewTransactionRepository(db),
		&failingUserRepo{err: errors.New("connection reset")},
		&capturePrinter{},
		testShop,
		32,
	)

	_, err := sheets.TodaySheet(ctx)
	if err == nil {
		t.Fatal("expected operator lookup error, got nil")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 500 {
		t.Errorf("status = %d, want 500", appErr.Code)
	}
}

func TestPrintTodayPrinterFailure(t *testing.T) {
	db := newTestDB(t)
	_, ctx := newTestUser(t, db)

	device := &capturePrinter{failWith: errors.New("device not ready")}
	sheets := newDaySheetService(t, db, device, time.Now())

	_, err := sheets.PrintToday(ctx)
	if err == nil {
		t.Fatal("expected printer error, got nil")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 503 {
		t.Errorf("status = %d, want 503", appErr.Code)
	}
}

func TestPrinterStatus(t *testing.T) {
	db := newTestDB(t)

	sheets := newDaySheetService(t, db, &capturePrinter{connected: true}, time.Now())
	if !sheets.Status().Connected {
		t.Error("status = disconnected, want connected")
	}

	sheets = newDaySheetService(t, db, &capturePrinter{}, time.Now())
	if sheets.Status().Connected {
		t.Error("status = connected, want disconnected")
	}
}
