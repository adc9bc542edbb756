package views

import (
	"time"

	"sales-crm/internal/models"
)

// InactivityDays is how many calendar days without an update raise a follow-up.
const InactivityDays = 10

// startOfDay is midnight of t's calendar date in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	return startOfDay(a, loc).Equal(startOfDay(b, loc))
}

// TodaysTasks surfaces the customers the viewer should follow up with today.
// Calendar dates are taken in now's location. A customer qualifies when it is
// assigned to the viewer, not completed, and one of these holds:
//   - first contact was exactly the previous calendar day
//   - its reminder falls on today
//   - its last update is InactivityDays or more calendar days back
//
// Each customer appears once, in input order. The items are never persisted.
func TodaysTasks(viewer *models.User, customers []models.Customer, now time.Time) []models.SyntheticTask {
	if viewer == nil {
		return nil
	}
	loc := now.Location()
	today := startOfDay(now, loc)
	yesterday := today.AddDate(0, 0, -1)
	inactiveBy := today.AddDate(0, 0, -InactivityDays)

	seen := make(map[string]bool)
	var out []models.SyntheticTask
	for _, c := range customers {
		if c.AssignedSalesRepID != viewer.ID || c.CustomerStatus == models.CustomerStatusCompleted {
			continue
		}
		newCustomer := startOfDay(c.FirstContactDate, loc).Equal(yesterday)
		reminder := c.ReminderDate != nil && sameDay(*c.ReminderDate, now, loc)
		inactive := !startOfDay(c.LastUpdateDate, loc).After(inactiveBy)
		if !newCustomer && !reminder && !inactive {
			continue
		}
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, models.SyntheticTask{
			ID:               c.ID,
			CustomerID:       c.ID,
			TaskDescription:  "follow up with customer " + c.Name,
			AssignedToUserID: c.AssignedSalesRepID,
			TaskStatus:       models.TaskStatusPending,
			DueDate:          today,
		})
	}
	return out
}
