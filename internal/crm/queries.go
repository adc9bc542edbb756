package crm

import (
	"sales-crm/internal/models"
	"sales-crm/internal/views"
)

// Snapshot returns a copy of the session's state.
func (s *Service) Snapshot() models.Snapshot {
	return s.state.Snapshot()
}

// CurrentUser returns the logged-in user, or nil.
func (s *Service) CurrentUser() *models.User {
	return s.state.CurrentUser()
}

func (s *Service) Customers(f models.CustomerFilters) []models.Customer {
	snap := s.state.Snapshot()
	return views.VisibleCustomers(snap.CurrentUser, snap.Customers, f)
}

func (s *Service) Deals(f models.DealFilters) []models.Deal {
	snap := s.state.Snapshot()
	return views.VisibleDeals(snap.CurrentUser, snap.Deals, snap.Customers, f)
}

// Tasks lists the visible persisted tasks ordered by due date.
func (s *Service) Tasks(f models.TaskFilters) []models.Task {
	snap := s.state.Snapshot()
	return views.VisibleTasks(snap.CurrentUser, snap.Tasks, f, s.clock())
}

func (s *Service) Activities() []models.Activity {
	snap := s.state.Snapshot()
	return views.VisibleActivities(snap.CurrentUser, snap.Activities, snap.Customers)
}

// TodaysTasks derives the current user's follow-ups for today.
func (s *Service) TodaysTasks() []models.SyntheticTask {
	snap := s.state.Snapshot()
	return views.TodaysTasks(snap.CurrentUser, snap.Customers, s.clock())
}

func (s *Service) Dashboard() models.DashboardStats {
	snap := s.state.Snapshot()
	return views.DashboardStats(snap.CurrentUser, snap.Customers, snap.Deals, snap.Tasks, s.clock())
}

// TaskStats counts the tasks that f selects.
func (s *Service) TaskStats(f models.TaskFilters) models.TaskStats {
	return views.TaskStats(s.Tasks(f), s.clock())
}

// LatestDealStatus labels the newest deal of a customer the viewer can see.
func (s *Service) LatestDealStatus(customerID string) string {
	snap := s.state.Snapshot()
	return views.LatestDealStatus(customerID, views.VisibleDeals(snap.CurrentUser, snap.Deals, snap.Customers, models.DealFilters{}))
}

// Users lists every user. Elevated roles only.
func (s *Service) Users() ([]models.User, error) {
	if _, err := s.requireElevated(); err != nil {
		return nil, err
	}
	return s.state.Snapshot().Users, nil
}

// SalesReps lists the representatives, for assignment pickers.
func (s *Service) SalesReps() ([]models.User, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, err
	}
	return views.SalesReps(s.state.Snapshot().Users), nil
}

func (s *Service) UserStats() (models.UserStats, error) {
	if _, err := s.requireElevated(); err != nil {
		return models.UserStats{}, err
	}
	return views.UserStats(s.state.Snapshot().Users), nil
}

// UserName resolves a user id to a display name.
func (s *Service) UserName(id string) string {
	return views.UserName(s.state.Snapshot().Users, id)
}
