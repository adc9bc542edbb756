// Package export renders daily reports as spreadsheets.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"sales-crm/internal/models"
	"sales-crm/internal/views"
)

// ContentType is the MIME type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var reportHeader = []string{"Report ID", "Date", "Sales Representative", "New Customers", "Completed Deals", "Revenue", "Notes"}

// Filename is the download name for the reports of a date.
func Filename(day time.Time) string {
	return fmt.Sprintf("daily_reports_%s.xlsx", day.Format("2006-01-02"))
}

// DailyReportsXLSX writes one row per report and a totals row underneath.
func DailyReportsXLSX(day time.Time, reports []models.DailyReport, users []models.User) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Reports " + day.Format("2006-01-02")
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	for c, v := range reportHeader {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return nil, err
		}
	}

	var totals models.DailyReport
	for i, r := range reports {
		values := []any{
			r.ID,
			r.ReportDate.Format("2006-01-02"),
			views.UserName(users, r.SalesRepresentativeID),
			r.NewCustomersCount,
			r.CompletedDealsCount,
			r.TotalRevenueFromCompletedDeals,
			r.DailyNotes,
		}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return nil, err
		}
		totals.NewCustomersCount += r.NewCustomersCount
		totals.CompletedDealsCount += r.CompletedDealsCount
		totals.TotalRevenueFromCompletedDeals += r.TotalRevenueFromCompletedDeals
	}
	totalRow := len(reports) + 2
	if err := setRow(f, sheet, totalRow, []any{"Total", "", "", totals.NewCustomersCount, totals.CompletedDealsCount, totals.TotalRevenueFromCompletedDeals, ""}); err != nil {
		return nil, err
	}

	_ = f.SetColWidth(sheet, "A", "A", 38)
	_ = f.SetColWidth(sheet, "B", "B", 12)
	_ = f.SetColWidth(sheet, "C", "C", 24)
	_ = f.SetColWidth(sheet, "D", "E", 16)
	_ = f.SetColWidth(sheet, "F", "F", 14)
	_ = f.SetColWidth(sheet, "G", "G", 40)

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	if err == nil {
		_ = f.SetCellStyle(sheet, "A1", "G1", bold)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err == nil {
		_ = f.SetCellStyle(sheet, "F2", fmt.Sprintf("F%d", totalRow), money)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, _ := excelize.CoordinatesToCellName(1, row)
	return f.SetSheetRow(sheet, cell, &values)
}
