package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-crm/internal/models"
)

// quiet is a customer of rep1 that triggers nothing on its own.
func quiet(id string) models.Customer {
	return models.Customer{
		ID:                 id,
		Name:               "Customer " + id,
		CustomerStatus:     models.CustomerStatusFollowUp,
		AssignedSalesRepID: rep1.ID,
		FirstContactDate:   daysAgo(5),
		LastUpdateDate:     daysAgo(2),
	}
}

func surfaced(viewer *models.User, cs []models.Customer, at time.Time) []string {
	return ids(TodaysTasks(viewer, cs, at), func(s models.SyntheticTask) string { return s.CustomerID })
}

func TestInactivityBoundary(t *testing.T) {
	ten := quiet("ten")
	ten.LastUpdateDate = daysAgo(10)
	nine := quiet("nine")
	nine.LastUpdateDate = daysAgo(9)
	long := quiet("long")
	long.LastUpdateDate = daysAgo(40)

	assert.Equal(t, []string{"ten", "long"}, surfaced(rep1, []models.Customer{ten, nine, long}, now))
}

func TestInactivityUsesCalendarDays(t *testing.T) {
	// Updated late in the evening ten calendar days ago still counts as ten days,
	// even though fewer than 240 hours have passed.
	c := quiet("c")
	c.LastUpdateDate = time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, []string{"c"}, surfaced(rep1, []models.Customer{c}, time.Date(2024, 3, 15, 0, 1, 0, 0, time.UTC)))
}

func TestNewCustomerTrigger(t *testing.T) {
	yesterday := quiet("yesterday")
	yesterday.FirstContactDate = time.Date(2024, 3, 14, 23, 50, 0, 0, time.UTC)
	twoDays := quiet("two")
	twoDays.FirstContactDate = daysAgo(2)
	today := quiet("today")
	today.FirstContactDate = now.Add(-time.Hour)

	assert.Equal(t, []string{"yesterday"}, surfaced(rep1, []models.Customer{yesterday, twoDays, today}, now))
}

func TestReminderTrigger(t *testing.T) {
	due := quiet("due")
	r := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	due.ReminderDate = &r
	tomorrow := quiet("tomorrow")
	r2 := r.AddDate(0, 0, 1)
	tomorrow.ReminderDate = &r2

	assert.Equal(t, []string{"due"}, surfaced(rep1, []models.Customer{due, tomorrow, quiet("none")}, now))
}

func TestTodaysTasksScopeAndCompleted(t *testing.T) {
	mine := quiet("mine")
	mine.LastUpdateDate = daysAgo(11)
	done := mine
	done.ID = "done"
	done.CustomerStatus = models.CustomerStatusCompleted
	theirs := mine
	theirs.ID = "theirs"
	theirs.AssignedSalesRepID = rep2.ID

	cs := []models.Customer{mine, done, theirs}
	assert.Equal(t, []string{"mine"}, surfaced(rep1, cs, now))
	assert.Equal(t, []string{"theirs"}, surfaced(rep2, cs, now))
	assert.Empty(t, surfaced(manager, cs, now))
	assert.Empty(t, TodaysTasks(nil, cs, now))
}

func TestTodaysTasksDedupAndShape(t *testing.T) {
	c := quiet("all")
	c.FirstContactDate = daysAgo(1)
	r := now
	c.ReminderDate = &r
	c.LastUpdateDate = daysAgo(12)

	got := TodaysTasks(rep1, []models.Customer{c}, now)
	require.Len(t, got, 1)
	assert.Equal(t, models.SyntheticTask{
		ID:               "all",
		CustomerID:       "all",
		TaskDescription:  "follow up with customer Customer all",
		AssignedToUserID: rep1.ID,
		TaskStatus:       models.TaskStatusPending,
		DueDate:          time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}, got[0])
}

func TestTodaysTasksIdempotentWithinDay(t *testing.T) {
	a := quiet("a")
	a.LastUpdateDate = daysAgo(10)
	b := quiet("b")
	b.FirstContactDate = daysAgo(1)
	cs := []models.Customer{a, b, quiet("c")}

	first := TodaysTasks(rep1, cs, now)
	assert.Equal(t, first, TodaysTasks(rep1, cs, now))
	assert.Equal(t, first, TodaysTasks(rep1, cs, time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)))
}

func TestTodaysTasksFollowNowLocation(t *testing.T) {
	riyadh := time.FixedZone("AST", 3*3600)
	// 22:30 UTC on the 13th is already the 14th in Riyadh.
	c := quiet("c")
	c.FirstContactDate = time.Date(2024, 3, 13, 22, 30, 0, 0, time.UTC)

	localNow := time.Date(2024, 3, 15, 9, 0, 0, 0, riyadh)
	assert.Equal(t, []string{"c"}, surfaced(rep1, []models.Customer{c}, localNow))
	assert.Empty(t, surfaced(rep1, []models.Customer{c}, localNow.In(time.UTC)), "UTC calendar sees two days")
}
