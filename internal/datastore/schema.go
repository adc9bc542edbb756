package datastore

import (
	"fmt"
	"strconv"

	"sales-crm/internal/models"
)

// Dialect selects placeholder syntax for the underlying SQL engine.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// DialectFor maps a database driver name onto its dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "pgx":
		return DialectPostgres, nil
	default:
		return 0, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func (d Dialect) placeholder(n int) string {
	if d == DialectPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func (d Dialect) String() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// columns whitelists the column names of each collection.
var columns = map[models.Collection][]string{
	models.CollectionUsers: {
		"id", "username", "role", "name", "email", "created_at",
		"last_login_date", "created_by_user_id", "is_active",
	},
	models.CollectionCustomers: {
		"id", "name", "phone_number", "customer_status", "first_contact_date",
		"last_update_date", "reminder_date", "created_by_user_id", "assigned_sales_rep_id",
	},
	models.CollectionDeals: {
		"id", "customer_id", "service", "lead_source", "sales_representative_id",
		"status", "deal_details", "deal_value", "creation_date", "last_update_date",
	},
	models.CollectionActivities: {
		"id", "customer_id", "deal_id", "activity_date", "activity_details",
		"activity_type", "recorded_by_user_id",
	},
	models.CollectionTasks: {
		"id", "customer_id", "deal_id", "assigned_to_user_id", "task_description",
		"due_date", "task_status", "task_type", "creation_date", "completed_date", "created_by_user_id",
	},
	models.CollectionDailyReports: {
		"id", "report_date", "sales_representative_id", "new_customers_count",
		"completed_deals_count", "total_revenue_from_completed_deals", "daily_notes",
	},
}

// timestampDefaults are filled with the insert instant when the caller omits them.
var timestampDefaults = map[models.Collection][]string{
	models.CollectionUsers:      {"created_at"},
	models.CollectionCustomers:  {"first_contact_date", "last_update_date"},
	models.CollectionDeals:      {"creation_date", "last_update_date"},
	models.CollectionActivities: {"activity_date"},
	models.CollectionTasks:      {"creation_date"},
}

func hasColumn(coll models.Collection, name string) bool {
	for _, c := range columns[coll] {
		if c == name {
			return true
		}
	}
	return false
}

// Columns returns the column names of a collection.
func Columns(coll models.Collection) []string {
	return append([]string(nil), columns[coll]...)
}
