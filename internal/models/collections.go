package models

// Collection names a record collection at the persistence boundary.
type Collection string

const (
	CollectionUsers        Collection = "users"
	CollectionCustomers    Collection = "customers"
	CollectionDeals        Collection = "deals"
	CollectionActivities   Collection = "activities"
	CollectionTasks        Collection = "tasks"
	CollectionDailyReports Collection = "daily_reports"
)

// Collections lists the six collections in load order.
var Collections = []Collection{
	CollectionUsers,
	CollectionCustomers,
	CollectionDeals,
	CollectionActivities,
	CollectionTasks,
	CollectionDailyReports,
}

func (c Collection) Valid() bool {
	for _, known := range Collections {
		if c == known {
			return true
		}
	}
	return false
}

// Snapshot is everything a session has loaded plus its session flags.
type Snapshot struct {
	CurrentUser  *User         `json:"currentUser"`
	Customers    []Customer    `json:"customers"`
	Deals        []Deal        `json:"deals"`
	Activities   []Activity    `json:"activities"`
	Tasks        []Task        `json:"tasks"`
	DailyReports []DailyReport `json:"dailyReports"`
	Users        []User        `json:"users"`
	Loading      bool          `json:"loading"`
	Error        string        `json:"error,omitempty"`
}

// PartialSnapshot carries the collections to replace. Nil fields are left untouched.
type PartialSnapshot struct {
	Customers    *[]Customer
	Deals        *[]Deal
	Activities   *[]Activity
	Tasks        *[]Task
	DailyReports *[]DailyReport
	Users        *[]User
}
