package service

import (
	"context"
	"fmt"
	"time"

	"github.com/printdesk/daybook-api/internal/config"
	"github.com/printdesk/daybook-api/internal/domain/entity"
	"github.com/printdesk/daybook-api/internal/domain/enum"
	"github.com/printdesk/daybook-api/internal/domain/repository"
	infraRepo "github.com/printdesk/daybook-api/internal/infrastructure/repository"
	"github.com/printdesk/daybook-api/pkg/apperror"
	"github.com/printdesk/daybook-api/pkg/printer"
)

// DaySheetService composes and prints the end-of-day summary sheet. The sheet
// is never stored: it is rebuilt from the day's transactions on every request,
// so reprinting after corrections always reflects current state.
type DaySheetService struct {
	txRepo   repository.TransactionRepository
	userRepo repository.UserRepository
	device   printer.Printer
	shop     config.ShopConfig
	width    int
	now      func() time.Time
}

// NewDaySheetService creates a new day sheet service
func NewDaySheetService(txRepo repository.TransactionRepository, userRepo repository.UserRepository, device printer.Printer, shop config.ShopConfig, width int) *DaySheetService {
	if width <= 0 {
		width = printer.DefaultWidth
	}
	return &DaySheetService{
		txRepo:   txRepo,
		userRepo: userRepo,
		device:   device,
		shop:     shop,
		width:    width,
		now:      time.Now,
	}
}

// TodaySheet builds the day sheet for the current day
func (s *DaySheetService) TodaySheet(ctx context.Context) (*entity.DaySheet, error) {
	userID, ok := infraRepo.GetUserID(ctx)
	if !ok {
		return nil, apperror.ErrIdentityRequired
	}

	txs, err := s.txRepo.ListByDate(ctx, s.now())
	if err != nil {
		return nil, apperror.NewPersistenceError("list today's transactions", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.NewPersistenceError("load operator", err)
	}
	operator := ""
	if user != nil {
		operator = user.FullName()
	}

	return BuildDaySheet(s.shop, s.now(), operator, txs), nil
}

// PrintToday renders today's sheet to ESC/POS and pushes it to the configured
// printer. The rendered sheet is returned so the caller can show what was
// printed.
func (s *DaySheetService) PrintToday(ctx context.Context) (*entity.DaySheet, error) {
	sheet, err := s.TodaySheet(ctx)
	if err != nil {
		return nil, err
	}

	data := FormatDaySheet(sheet, s.width)
	if err := s.device.Print(data); err != nil {
		return nil, apperror.NewAppError(503, "Printer unavailable: "+err.Error())
	}

	return sheet, nil
}

// PrinterStatus reports whether the configured printer is reachable
type PrinterStatus struct {
	Connected bool `json:"connected"`
}

// Status checks the configured printer's connectivity
func (s *DaySheetService) Status() PrinterStatus {
	return PrinterStatus{Connected: s.device.IsConnected()}
}

// BuildDaySheet composes a day sheet from a day's transactions. It is a pure
// transformation: the same inputs always produce the same sheet.
func BuildDaySheet(shop config.ShopConfig, date time.Time, operator string, txs []entity.Transaction) *entity.DaySheet {
	sheet := &entity.DaySheet{
		Header: entity.DaySheetHeader{
			ShopName: shop.Name,
			Address:  shop.Address,
			Phone:    shop.Phone,
		},
		Date:     date.Format("2006-01-02"),
		Operator: operator,
		Rows:     make([]entity.DaySheetRow, 0, len(txs)),
	}

	var cash, phonePe int64
	for _, tx := range txs {
		sheet.Rows = append(sheet.Rows, entity.DaySheetRow{
			Time:          tx.TxTime,
			Service:       serviceLabel(&tx),
			Quantity:      tx.Quantity,
			PaymentMethod: tx.PaymentMethod.String(),
			Cost:          float64(tx.Cost) / 100,
			Discount:      float64(tx.Discount) / 100,
			FinalCost:     float64(tx.FinalCost) / 100,
		})

		switch tx.PaymentMethod {
		case enum.PaymentMethodCash:
			cash += tx.FinalCost
		case enum.PaymentMethodPhonePe:
			phonePe += tx.FinalCost
		}
		sheet.TotalPages += tx.Quantity
	}

	sheet.CashTotal = float64(cash) / 100
	sheet.PhonePeTotal = float64(phonePe) / 100
	sheet.TotalRevenue = float64(cash+phonePe) / 100
	sheet.Count = len(txs)

	return sheet
}

func serviceLabel(tx *entity.Transaction) string {
	if tx.MultiService {
		return "Multi-service"
	}
	if tx.Service != nil {
		return tx.Service.Name
	}
	if tx.ServiceType != nil {
		return tx.ServiceType.Label()
	}
	return "Service"
}

// FormatDaySheet renders a day sheet as an ESC/POS byte stream for the given
// character width. Rendering is deterministic.
func FormatDaySheet(sheet *entity.DaySheet, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(sheet.Header.ShopName).
		SetFontSize(printer.FontNormal).
		SetBold(false)
	if sheet.Header.Address != "" {
		doc.Text(sheet.Header.Address)
	}
	if sheet.Header.Phone != "" {
		doc.Text("Ph: " + sheet.Header.Phone)
	}

	doc.LineFeed().
		SetBold(true).
		Text("DAY SHEET").
		SetBold(false).
		SetAlign(printer.AlignLeft).
		Separator('-').
		KeyValue("Date", sheet.Date)
	if sheet.Operator != "" {
		doc.KeyValue("Operator", sheet.Operator)
	}
	doc.Separator('-')

	// Time | Service | Qty | Amount
	colWidths := []int{6, width - 6 - 4 - 8, -4, -8}
	doc.Columns(colWidths, "Time", "Service", "Qty", "Amount").
		Separator('-')

	for _, row := range sheet.Rows {
		t := row.Time
		if len(t) >= 5 {
			t = t[:5] // HH:MM
		}
		doc.Columns(colWidths, t, row.Service, fmt.Sprintf("%d", row.Quantity), formatAmount(row.FinalCost))
		if row.Discount > 0 {
			doc.Columns(colWidths, "", "  less disc", "", "-"+formatAmount(row.Discount))
		}
	}

	doc.Separator('-').
		KeyValue("Cash", formatAmount(sheet.CashTotal)).
		KeyValue("PhonePe", formatAmount(sheet.PhonePeTotal)).
		Separator('=').
		SetBold(true).
		KeyValue("TOTAL", formatAmount(sheet.TotalRevenue)).
		SetBold(false).
		KeyValue("Transactions", fmt.Sprintf("%d", sheet.Count)).
		KeyValue("Pages/Units", fmt.Sprintf("%d", sheet.TotalPages)).
		FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

func formatAmount(rupees float64) string {
	return fmt.Sprintf("Rs%.2f", rupees)
}
