package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/printdesk/daybook-api/internal/domain/enum"
	"github.com/printdesk/daybook-api/internal/domain/repository"
	"github.com/printdesk/daybook-api/pkg/apperror"
	"github.com/xuri/excelize/v2"
)

// ReportBucket is one row of a revenue report: a day or a month with its
// revenue split by payment method and by service category. Amounts are held
// in paise and serialized as rupees.
type ReportBucket struct {
	Label    string
	ByMethod map[enum.PaymentMethod]int64
	ByType   map[enum.ServiceType]int64
	Total    int64
	Count    int64
}

// MarshalJSON converts the paise amounts to rupees for API responses
func (b ReportBucket) MarshalJSON() ([]byte, error) {
	byMethod := make(map[string]float64, len(b.ByMethod))
	for method, total := range b.ByMethod {
		byMethod[method.String()] = float64(total) / 100
	}
	byType := make(map[string]float64, len(b.ByType))
	for serviceType, total := range b.ByType {
		byType[serviceType.String()] = float64(total) / 100
	}

	return json.Marshal(&struct {
		Label    string             `json:"label"`
		ByMethod map[string]float64 `json:"by_method"`
		ByType   map[string]float64 `json:"by_type"`
		Total    float64            `json:"total"`
		Count    int64              `json:"count"`
	}{
		Label:    b.Label,
		ByMethod: byMethod,
		ByType:   byType,
		Total:    float64(b.Total) / 100,
		Count:    b.Count,
	})
}

// ReportSummary aggregates a report's buckets into headline figures
type ReportSummary struct {
	TotalRevenue       int64
	TransactionCount   int64
	AverageTransaction int64
}

// MarshalJSON converts the paise amounts to rupees for API responses
func (s ReportSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		TotalRevenue       float64 `json:"total_revenue"`
		TransactionCount   int64   `json:"transaction_count"`
		AverageTransaction float64 `json:"average_transaction"`
	}{
		TotalRevenue:       float64(s.TotalRevenue) / 100,
		TransactionCount:   s.TransactionCount,
		AverageTransaction: float64(s.AverageTransaction) / 100,
	})
}

// Report is a complete revenue report: ordered buckets plus the summary
type Report struct {
	Buckets []ReportBucket `json:"buckets"`
	Summary ReportSummary  `json:"summary"`
}

// ReportService computes revenue roll-ups from recorded transactions. Reports
// are always derived fresh; nothing here is cached or stored.
type ReportService struct {
	reportRepo repository.ReportRepository
	now        func() time.Time
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		now:        time.Now,
	}
}

// DailyReport returns one bucket per day for the last seven days including
// today, oldest first. Days without transactions appear as zero buckets.
func (s *ReportService) DailyReport(ctx context.Context) (*Report, error) {
	today := dateOnly(s.now())

	buckets := make([]ReportBucket, 0, 7)
	for offset := 6; offset >= 0; offset-- {
		day := today.AddDate(0, 0, -offset)

		bucket, err := s.bucketFor(ctx, day.Format("2006-01-02"), day, day.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, *bucket)
	}

	return &Report{Buckets: buckets, Summary: Summarize(buckets)}, nil
}

// MonthlyReport returns one bucket per calendar month of the given year,
// January through December. Months without transactions appear as zero
// buckets.
func (s *ReportService) MonthlyReport(ctx context.Context, year int) (*Report, error) {
	if year < 2000 || year > 2100 {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Invalid report year: %d", year))
	}

	loc := s.now().Location()

	buckets := make([]ReportBucket, 0, 12)
	for month := time.January; month <= time.December; month++ {
		from := time.Date(year, month, 1, 0, 0, 0, 0, loc)
		to := from.AddDate(0, 1, 0)

		bucket, err := s.bucketFor(ctx, from.Format("Jan 2006"), from, to)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, *bucket)
	}

	return &Report{Buckets: buckets, Summary: Summarize(buckets)}, nil
}

// bucketFor builds one zero-filled bucket for the window [from, to).
func (s *ReportService) bucketFor(ctx context.Context, label string, from, to time.Time) (*ReportBucket, error) {
	bucket := &ReportBucket{
		Label:    label,
		ByMethod: make(map[enum.PaymentMethod]int64, len(enum.AllPaymentMethods)),
		ByType:   make(map[enum.ServiceType]int64, len(enum.AllServiceTypes)),
	}
	for _, method := range enum.AllPaymentMethods {
		bucket.ByMethod[method] = 0
	}
	for _, serviceType := range enum.AllServiceTypes {
		bucket.ByType[serviceType] = 0
	}

	total, count, err := s.reportRepo.WindowTotal(ctx, from, to)
	if err != nil {
		return nil, reportError("report window total", err)
	}
	bucket.Total = total
	bucket.Count = count

	methodTotals, err := s.reportRepo.TotalsByPaymentMethod(ctx, from, to)
	if err != nil {
		return nil, reportError("report totals by payment method", err)
	}
	for _, row := range methodTotals {
		bucket.ByMethod[enum.PaymentMethod(row.Key)] = row.Total
	}

	typeTotals, err := s.reportRepo.TotalsByServiceType(ctx, from, to)
	if err != nil {
		return nil, reportError("report totals by service type", err)
	}
	for _, row := range typeTotals {
		bucket.ByType[enum.ServiceType(row.Key)] = row.Total
	}

	return bucket, nil
}

// reportError keeps repository-side application errors (missing identity)
// intact and wraps everything else as a storage failure.
func reportError(op string, err error) error {
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewPersistenceError(op, err)
}

// Summarize rolls a report's buckets up into headline figures. The average is
// zero when there are no transactions.
func Summarize(buckets []ReportBucket) ReportSummary {
	var summary ReportSummary
	for _, bucket := range buckets {
		summary.TotalRevenue += bucket.Total
		summary.TransactionCount += bucket.Count
	}
	if summary.TransactionCount > 0 {
		summary.AverageTransaction = summary.TotalRevenue / summary.TransactionCount
	}
	return summary
}

// ExportDailyXLSX writes the seven-day report as a spreadsheet
func (s *ReportService) ExportDailyXLSX(ctx context.Context) ([]byte, error) {
	report, err := s.DailyReport(ctx)
	if err != nil {
		return nil, err
	}
	return exportReportXLSX("Daily Report", "Date", report)
}

// ExportMonthlyXLSX writes the twelve-month report as a spreadsheet
func (s *ReportService) ExportMonthlyXLSX(ctx context.Context, year int) ([]byte, error) {
	report, err := s.MonthlyReport(ctx, year)
	if err != nil {
		return nil, err
	}
	return exportReportXLSX("Monthly Report", "Month", report)
}

func exportReportXLSX(sheet, labelHeader string, report *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{labelHeader}
	for _, method := range enum.AllPaymentMethods {
		headers = append(headers, method.String())
	}
	for _, serviceType := range enum.AllServiceTypes {
		headers = append(headers, serviceType.Label())
	}
	headers = append(headers, "Total", "Transactions")

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(sheet, "A1", lastCell, headerStyle)
	}

	for row, bucket := range report.Buckets {
		values := []interface{}{bucket.Label}
		for _, method := range enum.AllPaymentMethods {
			values = append(values, float64(bucket.ByMethod[method])/100)
		}
		for _, serviceType := range enum.AllServiceTypes {
			values = append(values, float64(bucket.ByType[serviceType])/100)
		}
		values = append(values, float64(bucket.Total)/100, bucket.Count)

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	summaryRow := len(report.Buckets) + 3
	labelCell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	f.SetCellValue(sheet, labelCell, "Total Revenue")
	valueCell, _ := excelize.CoordinatesToCellName(2, summaryRow)
	f.SetCellValue(sheet, valueCell, float64(report.Summary.TotalRevenue)/100)

	labelCell, _ = excelize.CoordinatesToCellName(1, summaryRow+1)
	f.SetCellValue(sheet, labelCell, "Transactions")
	valueCell, _ = excelize.CoordinatesToCellName(2, summaryRow+1)
	f.SetCellValue(sheet, valueCell, report.Summary.TransactionCount)

	f.SetColWidth(sheet, "A", "A", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
