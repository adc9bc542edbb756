package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sales-crm/internal/models"
)

func TestDailyReportsXLSX(t *testing.T) {
	day := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	users := []models.User{{ID: "rep-1", Name: "Rana"}, {ID: "rep-2", Name: "Omar"}}
	reports := []models.DailyReport{
		{ID: "r1", ReportDate: day, SalesRepresentativeID: "rep-1", NewCustomersCount: 2, CompletedDealsCount: 2, TotalRevenueFromCompletedDeals: 350, DailyNotes: "steady"},
		{ID: "r2", ReportDate: day, SalesRepresentativeID: "gone", NewCustomersCount: 1, CompletedDealsCount: 0},
	}

	data, err := DailyReportsXLSX(day, reports, users)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Reports 2024-03-14"}, f.GetSheetList())
	rows, err := f.GetRows("Reports 2024-03-14")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, reportHeader, rows[0])
	assert.Equal(t, "Rana", rows[1][2])
	assert.Equal(t, "steady", rows[1][6])
	assert.Equal(t, "Unassigned", rows[2][2])
	assert.Equal(t, "Total", rows[3][0])
	assert.Equal(t, "3", rows[3][3])
	assert.Equal(t, "2", rows[3][4])

	revenue, err := f.GetCellValue("Reports 2024-03-14", "F4", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "350", revenue)

	assert.Equal(t, "daily_reports_2024-03-14.xlsx", Filename(day))
}

func TestEmptyWorkbookHasTotals(t *testing.T) {
	data, err := DailyReportsXLSX(time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), nil, nil)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Reports 2024-03-14")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.GreaterOrEqual(t, len(rows[1]), 5)
	assert.Equal(t, []string{"Total", "", "", "0", "0"}, rows[1][:5])
}
