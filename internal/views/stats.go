package views

import (
	"time"

	"sales-crm/internal/models"
)

// DashboardStats summarises what the viewer may see: a representative's own
// records, or everything for elevated roles.
func DashboardStats(viewer *models.User, customers []models.Customer, deals []models.Deal, tasks []models.Task, now time.Time) models.DashboardStats {
	var st models.DashboardStats
	if viewer == nil {
		return st
	}
	for _, c := range customers {
		if !representative(viewer) || c.AssignedSalesRepID == viewer.ID {
			st.TotalCustomers++
		}
	}
	for _, d := range deals {
		if representative(viewer) && d.SalesRepresentativeID != viewer.ID {
			continue
		}
		st.TotalDeals++
		if d.Status == models.DealStatusCompleted {
			st.CompletedDeals++
			st.TotalRevenue += d.DealValue
		}
	}
	for _, t := range tasks {
		if representative(viewer) && t.AssignedToUserID != viewer.ID {
			continue
		}
		if t.TaskStatus == models.TaskStatusPending {
			st.PendingTasks++
		}
		if IsOverdue(t, now) {
			st.OverdueTasks++
		}
	}
	return st
}

// TaskStats counts an already filtered list. Overdue tasks are also counted as pending.
func TaskStats(tasks []models.Task, now time.Time) models.TaskStats {
	var st models.TaskStats
	for _, t := range tasks {
		switch t.TaskStatus {
		case models.TaskStatusPending:
			st.Pending++
		case models.TaskStatusCompleted:
			st.Completed++
		}
		if IsOverdue(t, now) {
			st.Overdue++
		}
	}
	return st
}

// OverallTotals covers every customer and deal regardless of owner.
func OverallTotals(customers []models.Customer, deals []models.Deal) models.OverallTotals {
	st := models.OverallTotals{TotalCustomers: len(customers), TotalDeals: len(deals)}
	for _, d := range deals {
		if d.Status == models.DealStatusCompleted {
			st.CompletedDeals++
			st.TotalRevenue += d.DealValue
		}
	}
	return st
}

// RepPerformances gives all-time figures per representative, in user order.
func RepPerformances(users []models.User, customers []models.Customer, deals []models.Deal) []models.RepPerformance {
	reps := SalesReps(users)
	out := make([]models.RepPerformance, 0, len(reps))
	for _, rep := range reps {
		p := models.RepPerformance{Rep: rep}
		for _, c := range customers {
			if c.AssignedSalesRepID == rep.ID {
				p.Customers++
			}
		}
		for _, d := range deals {
			if d.SalesRepresentativeID != rep.ID {
				continue
			}
			p.Deals++
			if d.Status == models.DealStatusCompleted {
				p.CompletedDeals++
				p.Revenue += d.DealValue
			}
		}
		out = append(out, p)
	}
	return out
}

func UserStats(users []models.User) models.UserStats {
	var st models.UserStats
	for _, u := range users {
		switch u.Role {
		case models.RoleSalesRepresentative:
			st.Representatives++
		case models.RoleSalesManager:
			st.Managers++
		}
		if u.IsActive {
			st.Active++
		}
	}
	return st
}
