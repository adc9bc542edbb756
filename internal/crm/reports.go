package crm

import (
	"context"
	"time"

	"sales-crm/internal/convert"
	"sales-crm/internal/models"
	"sales-crm/internal/views"
)

// GenerateDailyReport counts a representative's new customers and completed
// deals for the requested calendar date and stores the result. Generating the
// same report twice stores two reports.
func (s *Service) GenerateDailyReport(ctx context.Context, req models.ReportRequest) (models.DailyReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	viewer, err := s.requireUser()
	if err != nil {
		return models.DailyReport{}, err
	}
	snap := s.state.Snapshot()
	repID := views.ReportRep(viewer, req.SalesRepresentativeID, snap.Users)
	if repID == "" {
		return models.DailyReport{}, s.reject(invalid("salesRepresentativeId", "no sales representative to report on"))
	}

	day := req.Date
	if day.IsZero() {
		day = s.clock()
	}
	report := views.ComputeDailyReport(repID, day, req.Notes, snap.Customers, snap.Deals, s.loc)

	row, err := s.store.Insert(ctx, models.CollectionDailyReports, convert.DailyReportRow(report))
	if err != nil {
		return models.DailyReport{}, s.fail("failed to generate report", err)
	}
	stored, err := convert.DailyReport(row)
	if err != nil {
		return models.DailyReport{}, s.fail("failed to generate report", err)
	}
	if err := s.state.Append(stored); err != nil {
		return models.DailyReport{}, err
	}
	s.succeed()
	s.log.Info("daily report %s for %s on %s: %d new customers, %d completed deals, revenue %.2f",
		stored.ID, repID, convert.FormatDate(report.ReportDate), stored.NewCustomersCount,
		stored.CompletedDealsCount, stored.TotalRevenueFromCompletedDeals)
	return stored, nil
}

// ReportsForDate lists the stored reports of a calendar date. Elevated roles only.
func (s *Service) ReportsForDate(day time.Time) ([]models.DailyReport, error) {
	if _, err := s.requireElevated(); err != nil {
		return nil, err
	}
	return views.ReportsForDate(s.state.Snapshot().DailyReports, day), nil
}

// ReportDetails lists the records inside a stored report's window.
func (s *Service) ReportDetails(id string) (models.ReportDetails, error) {
	if _, err := s.requireElevated(); err != nil {
		return models.ReportDetails{}, err
	}
	snap := s.state.Snapshot()
	for _, r := range snap.DailyReports {
		if r.ID == id {
			return views.ReportDetails(r, snap.Customers, snap.Deals, s.loc), nil
		}
	}
	return models.ReportDetails{}, ErrNotFound
}

func (s *Service) OverallTotals() (models.OverallTotals, error) {
	if _, err := s.requireElevated(); err != nil {
		return models.OverallTotals{}, err
	}
	snap := s.state.Snapshot()
	return views.OverallTotals(snap.Customers, snap.Deals), nil
}

func (s *Service) RepPerformances() ([]models.RepPerformance, error) {
	if _, err := s.requireElevated(); err != nil {
		return nil, err
	}
	snap := s.state.Snapshot()
	return views.RepPerformances(snap.Users, snap.Customers, snap.Deals), nil
}
