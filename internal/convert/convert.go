// Package convert is the single translation point between snake_case store rows
// and the camelCase domain model. Missing enum columns take their defaults here.
package convert

import (
	"sales-crm/internal/datastore"
	"sales-crm/internal/models"
)

func User(row datastore.Row) (models.User, error) {
	r := reader{row: row}
	u := models.User{
		ID:              r.str("id"),
		Username:        r.str("username"),
		Role:            models.Role(r.str("role")),
		Name:            r.str("name"),
		Email:           r.str("email"),
		CreatedAt:       r.instant("created_at"),
		CreatedByUserID: r.optStr("created_by_user_id"),
		IsActive:        r.boolean("is_active", true),
	}
	if last := r.optTime("last_login_date"); last != nil {
		u.LastLoginDate = *last
	} else {
		u.LastLoginDate = u.CreatedAt
	}
	return u, r.err
}

func Customer(row datastore.Row) (models.Customer, error) {
	r := reader{row: row}
	c := models.Customer{
		ID:                 r.str("id"),
		Name:               r.str("name"),
		PhoneNumber:        r.str("phone_number"),
		CustomerStatus:     models.CustomerStatus(r.str("customer_status")),
		FirstContactDate:   r.instant("first_contact_date"),
		LastUpdateDate:     r.instant("last_update_date"),
		ReminderDate:       r.optTime("reminder_date"),
		CreatedByUserID:    r.str("created_by_user_id"),
		AssignedSalesRepID: r.str("assigned_sales_rep_id"),
	}
	if c.CustomerStatus == "" {
		c.CustomerStatus = models.CustomerStatusNewClient
	}
	return c, r.err
}

func Deal(row datastore.Row) (models.Deal, error) {
	r := reader{row: row}
	d := models.Deal{
		ID:                    r.str("id"),
		CustomerID:            r.str("customer_id"),
		Service:               r.str("service"),
		LeadSource:            r.str("lead_source"),
		SalesRepresentativeID: r.str("sales_representative_id"),
		Status:                models.DealStatus(r.str("status")),
		DealDetails:           r.str("deal_details"),
		DealValue:             r.number("deal_value"),
		CreationDate:          r.instant("creation_date"),
		LastUpdateDate:        r.instant("last_update_date"),
	}
	if d.Status == "" {
		d.Status = models.DealStatusFollowUp1
	}
	return d, r.err
}

func Activity(row datastore.Row) (models.Activity, error) {
	r := reader{row: row}
	return models.Activity{
		ID:               r.str("id"),
		CustomerID:       r.optStr("customer_id"),
		DealID:           r.optStr("deal_id"),
		ActivityDate:     r.instant("activity_date"),
		ActivityDetails:  r.str("activity_details"),
		ActivityType:     models.ActivityType(r.str("activity_type")),
		RecordedByUserID: r.str("recorded_by_user_id"),
	}, r.err
}

func Task(row datastore.Row) (models.Task, error) {
	r := reader{row: row}
	t := models.Task{
		ID:               r.str("id"),
		CustomerID:       r.optStr("customer_id"),
		DealID:           r.optStr("deal_id"),
		AssignedToUserID: r.str("assigned_to_user_id"),
		TaskDescription:  r.str("task_description"),
		DueDate:          r.instant("due_date"),
		TaskStatus:       models.TaskStatus(r.str("task_status")),
		TaskType:         models.TaskType(r.str("task_type")),
		CreationDate:     r.instant("creation_date"),
		CompletedDate:    r.optTime("completed_date"),
		CreatedByUserID:  r.str("created_by_user_id"),
	}
	// Older rows persisted the derived overdue state; it is recomputed on read.
	if t.TaskStatus == "" || t.TaskStatus == models.TaskStatusOverdue {
		t.TaskStatus = models.TaskStatusPending
	}
	return t, r.err
}

func DailyReport(row datastore.Row) (models.DailyReport, error) {
	r := reader{row: row}
	return models.DailyReport{
		ID:                             r.str("id"),
		ReportDate:                     r.instant("report_date"),
		SalesRepresentativeID:          r.str("sales_representative_id"),
		NewCustomersCount:              r.integer("new_customers_count"),
		CompletedDealsCount:            r.integer("completed_deals_count"),
		TotalRevenueFromCompletedDeals: r.number("total_revenue_from_completed_deals"),
		DailyNotes:                     r.str("daily_notes"),
	}, r.err
}

// All converts every row with fn, stopping at the first malformed one.
func All[T any](rows []datastore.Row, fn func(datastore.Row) (T, error)) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		v, err := fn(row)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
