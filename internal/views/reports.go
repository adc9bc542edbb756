package views

import (
	"time"

	"sales-crm/internal/models"
)

// ReportWindow is the half-open day [start, end) for the calendar date of day
// (its own year, month and day) in loc.
func ReportWindow(day time.Time, loc *time.Location) (start, end time.Time) {
	y, m, d := day.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// ComputeDailyReport aggregates a representative's day. The result carries no id;
// the caller persists it.
func ComputeDailyReport(repID string, day time.Time, notes string, customers []models.Customer, deals []models.Deal, loc *time.Location) models.DailyReport {
	start, end := ReportWindow(day, loc)
	newCustomers, completed := windowRecords(repID, start, end, customers, deals)

	report := models.DailyReport{
		ReportDate:            start,
		SalesRepresentativeID: repID,
		NewCustomersCount:     len(newCustomers),
		CompletedDealsCount:   len(completed),
		DailyNotes:            notes,
	}
	for _, d := range completed {
		report.TotalRevenueFromCompletedDeals += d.DealValue
	}
	return report
}

func windowRecords(repID string, start, end time.Time, customers []models.Customer, deals []models.Deal) ([]models.Customer, []models.Deal) {
	var newCustomers []models.Customer
	for _, c := range customers {
		if c.AssignedSalesRepID == repID && inWindow(c.FirstContactDate, start, end) {
			newCustomers = append(newCustomers, c)
		}
	}
	var completed []models.Deal
	for _, d := range deals {
		if d.SalesRepresentativeID == repID && d.Status == models.DealStatusCompleted && inWindow(d.LastUpdateDate, start, end) {
			completed = append(completed, d)
		}
	}
	return newCustomers, completed
}

// ReportsForDate returns the reports dated on day's calendar date.
func ReportsForDate(reports []models.DailyReport, day time.Time) []models.DailyReport {
	y, m, d := day.Date()
	var out []models.DailyReport
	for _, r := range reports {
		ry, rm, rd := r.ReportDate.Date()
		if ry == y && rm == m && rd == d {
			out = append(out, r)
		}
	}
	return out
}

// ReportDetails lists the customers and deals inside a stored report's window,
// as they are now.
func ReportDetails(report models.DailyReport, customers []models.Customer, deals []models.Deal, loc *time.Location) models.ReportDetails {
	start, end := ReportWindow(report.ReportDate, loc)
	newCustomers, completed := windowRecords(report.SalesRepresentativeID, start, end, customers, deals)
	return models.ReportDetails{
		Report:         report,
		WindowStart:    start,
		WindowEnd:      end,
		NewCustomers:   newCustomers,
		CompletedDeals: completed,
	}
}

// ReportRep picks whose report to generate: a representative always reports on
// themself; an elevated role uses the requested rep or else the first representative.
// It returns "" when there is nobody to report on.
func ReportRep(viewer *models.User, requested string, users []models.User) string {
	if viewer == nil {
		return ""
	}
	if viewer.Role == models.RoleSalesRepresentative {
		return viewer.ID
	}
	if requested != "" {
		return requested
	}
	if reps := SalesReps(users); len(reps) > 0 {
		return reps[0].ID
	}
	return ""
}
