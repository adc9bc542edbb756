// Package views derives what a user sees from a loaded snapshot: role scope,
// list filters, today's follow-ups, status styles, statistics and daily reports.
// Every function is pure; the current instant is always passed in.
package views

import (
	"sort"
	"strings"
	"time"

	"sales-crm/internal/models"
)

// representative reports whether lists must be narrowed to records the viewer owns.
func representative(viewer *models.User) bool {
	return viewer.Role == models.RoleSalesRepresentative
}

// VisibleCustomers applies role scope, then the search, rep and status filters.
// A nil viewer sees nothing. The rep filter only applies to elevated roles.
func VisibleCustomers(viewer *models.User, customers []models.Customer, f models.CustomerFilters) []models.Customer {
	if viewer == nil {
		return nil
	}
	search := strings.ToLower(f.Search)
	out := make([]models.Customer, 0, len(customers))
	for _, c := range customers {
		if representative(viewer) && c.AssignedSalesRepID != viewer.ID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) && !strings.Contains(c.PhoneNumber, f.Search) {
			continue
		}
		if f.AssignedSalesRep != "" && !representative(viewer) && c.AssignedSalesRepID != f.AssignedSalesRep {
			continue
		}
		if f.CustomerStatus != "" && string(c.CustomerStatus) != f.CustomerStatus {
			continue
		}
		out = append(out, c)
	}
	return out
}

// VisibleDeals applies role scope, then search over customer name, service and
// details, and the status, service and rep filters.
func VisibleDeals(viewer *models.User, deals []models.Deal, customers []models.Customer, f models.DealFilters) []models.Deal {
	if viewer == nil {
		return nil
	}
	var names map[string]string
	search := strings.ToLower(f.Search)
	if search != "" {
		names = make(map[string]string, len(customers))
		for _, c := range customers {
			names[c.ID] = strings.ToLower(c.Name)
		}
	}
	out := make([]models.Deal, 0, len(deals))
	for _, d := range deals {
		if representative(viewer) && d.SalesRepresentativeID != viewer.ID {
			continue
		}
		if search != "" {
			name, known := names[d.CustomerID]
			hit := (known && strings.Contains(name, search)) ||
				strings.Contains(strings.ToLower(d.Service), search) ||
				strings.Contains(strings.ToLower(d.DealDetails), search)
			if !hit {
				continue
			}
		}
		if f.Status != "" && string(d.Status) != f.Status {
			continue
		}
		if f.Service != "" && d.Service != f.Service {
			continue
		}
		if f.SalesRep != "" && !representative(viewer) && d.SalesRepresentativeID != f.SalesRep {
			continue
		}
		out = append(out, d)
	}
	return out
}

// VisibleTasks applies role scope and filters and sorts by due date, earliest first.
// The "overdue" status filter matches the derived state.
func VisibleTasks(viewer *models.User, tasks []models.Task, f models.TaskFilters, now time.Time) []models.Task {
	if viewer == nil {
		return nil
	}
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if representative(viewer) && t.AssignedToUserID != viewer.ID {
			continue
		}
		if f.Status != "" {
			if models.TaskStatus(f.Status) == models.TaskStatusOverdue {
				if !IsOverdue(t, now) {
					continue
				}
			} else if string(t.TaskStatus) != f.Status {
				continue
			}
		}
		if f.Type != "" && string(t.TaskType) != f.Type {
			continue
		}
		if f.AssignedTo != "" && !representative(viewer) && t.AssignedToUserID != f.AssignedTo {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

// VisibleActivities returns the activities a viewer may read, newest first.
// Representatives see what they recorded and anything logged on their customers.
func VisibleActivities(viewer *models.User, activities []models.Activity, customers []models.Customer) []models.Activity {
	if viewer == nil {
		return nil
	}
	own := make(map[string]bool)
	if representative(viewer) {
		for _, c := range customers {
			if c.AssignedSalesRepID == viewer.ID {
				own[c.ID] = true
			}
		}
	}
	out := make([]models.Activity, 0, len(activities))
	for _, a := range activities {
		if representative(viewer) && a.RecordedByUserID != viewer.ID && (a.CustomerID == nil || !own[*a.CustomerID]) {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ActivityDate.After(out[j].ActivityDate)
	})
	return out
}

// IsOverdue reports whether a pending task is past due at now.
func IsOverdue(t models.Task, now time.Time) bool {
	return t.TaskStatus == models.TaskStatusPending && t.DueDate.Before(now)
}

// SalesReps lists the users with the representative role, in load order.
func SalesReps(users []models.User) []models.User {
	var out []models.User
	for _, u := range users {
		if u.Role == models.RoleSalesRepresentative {
			out = append(out, u)
		}
	}
	return out
}

// UserName resolves a display name, or "Unassigned" when the id is unknown.
func UserName(users []models.User, id string) string {
	for _, u := range users {
		if u.ID == id && u.Name != "" {
			return u.Name
		}
	}
	return "Unassigned"
}

// Section is a navigable area of the application.
type Section string

const (
	SectionDashboard Section = "dashboard"
	SectionCustomers Section = "customers"
	SectionDeals     Section = "deals"
	SectionTasks     Section = "tasks"
	SectionReports   Section = "reports"
	SectionUsers     Section = "users"
)

// CanAccess reports whether a role may open a section.
// Reports and user management are for elevated roles only.
func CanAccess(role models.Role, s Section) bool {
	switch s {
	case SectionDashboard, SectionCustomers, SectionDeals, SectionTasks:
		return role.Valid()
	case SectionReports, SectionUsers:
		return role.Elevated()
	default:
		return false
	}
}

// Sections lists what a role may open, in menu order.
func Sections(role models.Role) []Section {
	all := []Section{SectionDashboard, SectionCustomers, SectionDeals, SectionTasks, SectionReports, SectionUsers}
	var out []Section
	for _, s := range all {
		if CanAccess(role, s) {
			out = append(out, s)
		}
	}
	return out
}
