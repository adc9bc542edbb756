package crm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-crm/internal/convert"
	"sales-crm/internal/models"
)

func seedReportDay(t *testing.T, f *fixture, day time.Time) {
	t.Helper()
	at := func(h int) time.Time { return day.Add(time.Duration(h) * time.Hour) }
	customer := func(name string, firstContact time.Time, rep string) string {
		return f.insert(t, models.CollectionCustomers, convert.CustomerRow(models.Customer{
			Name: name, PhoneNumber: "1", CreatedByUserID: rep, AssignedSalesRepID: rep,
			FirstContactDate: firstContact, LastUpdateDate: firstContact,
		}))
	}
	deal := func(customerID string, status models.DealStatus, value float64, updated time.Time, rep string) {
		f.insert(t, models.CollectionDeals, convert.DealRow(models.Deal{
			CustomerID: customerID, Service: "s", LeadSource: "l", DealDetails: "d",
			SalesRepresentativeID: rep, Status: status, DealValue: value,
			CreationDate: updated, LastUpdateDate: updated,
		}))
	}

	c1 := customer("morning", at(9), f.rep1.ID)
	c2 := customer("evening", at(23), f.rep1.ID)
	customer("day before", at(-1), f.rep1.ID)
	customer("someone else's", at(10), f.rep2.ID)

	deal(c1, models.DealStatusCompleted, 100, at(11), f.rep1.ID)
	deal(c2, models.DealStatusCompleted, 250, at(12), f.rep1.ID)
	deal(c2, models.DealStatusCompleted, 999, at(24), f.rep1.ID)
	deal(c1, models.DealStatusFollowUp2, 500, at(13), f.rep1.ID)
	deal(c1, models.DealStatusCompleted, 40, at(14), f.rep2.ID)
}

func TestGenerateDailyReport(t *testing.T) {
	f := newFixture(t)
	day := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	seedReportDay(t, f, day)
	ctx := context.Background()

	mgr := f.session(t, f.manager)
	report, err := mgr.GenerateDailyReport(ctx, models.ReportRequest{SalesRepresentativeID: f.rep1.ID, Date: day.Add(15 * time.Hour), Notes: "steady"})
	require.NoError(t, err)
	assert.Equal(t, 2, report.NewCustomersCount)
	assert.Equal(t, 2, report.CompletedDealsCount)
	assert.Equal(t, 350.0, report.TotalRevenueFromCompletedDeals)
	assert.Equal(t, "steady", report.DailyNotes)
	assert.True(t, report.ReportDate.Equal(day))

	again, err := mgr.GenerateDailyReport(ctx, models.ReportRequest{SalesRepresentativeID: f.rep1.ID, Date: day})
	require.NoError(t, err)
	assert.NotEqual(t, report.ID, again.ID, "regenerating stores another report")
	assert.Len(t, f.reloaded(t).DailyReports, 2)

	listed, err := mgr.ReportsForDate(day)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
	none, err := mgr.ReportsForDate(day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, none)

	details, err := mgr.ReportDetails(report.ID)
	require.NoError(t, err)
	assert.Len(t, details.NewCustomers, 2)
	assert.Len(t, details.CompletedDeals, 2)
	_, err = mgr.ReportDetails("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	totals, err := mgr.OverallTotals()
	require.NoError(t, err)
	assert.Equal(t, models.OverallTotals{TotalCustomers: 4, TotalDeals: 5, CompletedDeals: 4, TotalRevenue: 1389}, totals)
}

func TestRepresentativeReportsOnThemself(t *testing.T) {
	f := newFixture(t)
	day := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	seedReportDay(t, f, day)

	rep := f.session(t, f.rep2)
	report, err := rep.GenerateDailyReport(context.Background(), models.ReportRequest{SalesRepresentativeID: f.rep1.ID, Date: day})
	require.NoError(t, err)
	assert.Equal(t, f.rep2.ID, report.SalesRepresentativeID)
	assert.Equal(t, 1, report.NewCustomersCount)
	assert.Equal(t, 40.0, report.TotalRevenueFromCompletedDeals)

	_, err = rep.ReportsForDate(day)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = rep.RepPerformances()
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestReportDefaultsToTodayAndFirstRepresentative(t *testing.T) {
	f := newFixture(t)
	mgr := f.session(t, f.manager)
	_, err := mgr.AddCustomer(context.Background(), models.CustomerForm{Name: "Acme", PhoneNumber: "1", AssignedSalesRepID: f.rep1.ID})
	require.NoError(t, err)

	report, err := mgr.GenerateDailyReport(context.Background(), models.ReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, f.rep1.ID, report.SalesRepresentativeID)
	assert.Equal(t, "2024-03-15", convert.FormatDate(report.ReportDate))
	assert.Equal(t, 1, report.NewCustomersCount)
}
